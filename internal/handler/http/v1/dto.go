package v1

import (
	"time"

	"github.com/shenikar/emergency_map/internal/models"
)

// EmergencyResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type EmergencyResponse struct {
	ID          string          `json:"id"`
	Location    models.Position `json:"location" swaggertype:"array,number"`
	Radius      float64         `json:"radius"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    string          `json:"severity,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Contacted   bool            `json:"contacted"`
	ContactedAt *time.Time      `json:"contacted_at,omitempty"`
}

// TimelineEventResponse DTO для события ленты
// @Description DTO для события ленты
type TimelineEventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	TimeAgo     string    `json:"time_ago"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity,omitempty"`
	ImgURL      string    `json:"imgUrl,omitempty"`
}

// AppendEventRequest DTO для добавления события в ленту
// @Description DTO для добавления события в ленту
type AppendEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Type        string `json:"type" validate:"required,oneof=notification update alert action"`
	Severity    string `json:"severity,omitempty" validate:"omitempty,oneof=low medium high"`
	ImgURL      string `json:"imgUrl,omitempty" validate:"omitempty,max=2048"`
}

// OverviewResponse DTO для сводки по инциденту
// @Description DTO для сводки по инциденту
type OverviewResponse struct {
	Emergency      EmergencyResponse `json:"emergency"`
	Contacted      bool              `json:"contacted"`
	ContactedAt    *time.Time        `json:"contacted_at,omitempty"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	StartedAgo     string            `json:"started_ago,omitempty"`
	LastUpdatedAt  *time.Time        `json:"last_updated_at,omitempty"`
	LastUpdatedAgo string            `json:"last_updated_ago,omitempty"`
	EventCount     int               `json:"event_count"`
}

// RouteRequest DTO для построения маршрута между двумя точками [lon, lat]
// @Description DTO для построения маршрута между двумя точками [lon, lat]
type RouteRequest struct {
	Start []float64 `json:"start" validate:"required,len=2"`
	End   []float64 `json:"end" validate:"required,len=2"`
}

// RouteSummary DTO для панели маршрута
// @Description DTO для панели маршрута
type RouteSummary struct {
	Minutes       int     `json:"minutes"`
	DistanceKm    float64 `json:"distance_km"`
	DistanceMiles float64 `json:"distance_miles"`
}

// RouteResponse DTO для ответа с маршрутом; available=false, если маршрут не найден
// @Description DTO для ответа с маршрутом
type RouteResponse struct {
	Available bool                      `json:"available"`
	Duration  float64                   `json:"duration,omitempty"`
	Distance  float64                   `json:"distance,omitempty"`
	Summary   *RouteSummary             `json:"summary,omitempty"`
	Route     *models.FeatureCollection `json:"route,omitempty"`
}

// UserLocationResponse DTO для положения пользователя
// @Description DTO для положения пользователя
type UserLocationResponse struct {
	Location models.Position `json:"location" swaggertype:"array,number"`
}
