package models

import "time"

// Color - RGB тройка для слоя карты
type Color [3]int

// MarkerInfo - данные всплывающей карточки маркера
type MarkerInfo struct {
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Severity    Severity  `json:"severity,omitempty"`
}

// Marker - проекция инцидента для отрисовки на карте
type Marker struct {
	ID       string     `json:"id"`
	Position Position   `json:"position"`
	Icon     string     `json:"icon"`
	Size     int        `json:"size"`
	Color    Color      `json:"color"`
	Info     MarkerInfo `json:"info"`
}

// AssetMarker - проекция средства безопасности для отрисовки на карте
type AssetMarker struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Icon     string   `json:"icon"`
	Size     int      `json:"size"`
	Label    string   `json:"label"`
}
