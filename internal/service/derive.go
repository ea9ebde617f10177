package service

import (
	"time"

	"github.com/shenikar/emergency_map/internal/models"
)

const (
	MarkerSize      = 30
	AssetMarkerSize = 48
)

var severityColors = map[models.Severity]models.Color{
	models.SeverityHigh:   {255, 0, 0},
	models.SeverityMedium: {255, 165, 0},
	models.SeverityLow:    {0, 128, 0},
}

// SeverityColor возвращает цвет слоя для уровня; неизвестный или пустой уровень считается high
func SeverityColor(severity models.Severity) models.Color {
	if c, ok := severityColors[severity]; ok {
		return c
	}
	return severityColors[models.SeverityHigh]
}

// EmergencyIconURL - путь к иконке инцидента, его ожидает клиентская карта
func EmergencyIconURL(emergencyType string) string {
	return "/assets/" + emergencyType + ".png"
}

// AssetIconURL возвращает иконку средства безопасности по его типу
func AssetIconURL(assetType string) string {
	switch assetType {
	case models.AssetTypeFireExtinguisher:
		return "/assets/fire-ext.png"
	case models.AssetTypeFirstAid:
		return "/assets/first-aid.png"
	default:
		return "/assets/safety.png"
	}
}

// ToMarkers строит маркеры в том же порядке, что и инциденты.
// В info.timestamp попадает now, а не время создания инцидента.
func ToMarkers(emergencies []models.Emergency, now time.Time) []models.Marker {
	markers := make([]models.Marker, 0, len(emergencies))
	for _, e := range emergencies {
		markers = append(markers, models.Marker{
			ID:       e.ID,
			Position: e.Location,
			Icon:     EmergencyIconURL(e.Type),
			Size:     MarkerSize,
			Color:    SeverityColor(e.Severity),
			Info: models.MarkerInfo{
				Title:       e.Title,
				Type:        e.Type,
				Description: e.Description,
				Timestamp:   now,
				Severity:    e.Severity,
			},
		})
	}
	return markers
}

// ToAssetMarkers строит маркеры средств безопасности
func ToAssetMarkers(assets []models.SafetyAsset) []models.AssetMarker {
	markers := make([]models.AssetMarker, 0, len(assets))
	for _, a := range assets {
		markers = append(markers, models.AssetMarker{
			ID:       a.ID,
			Position: a.Location,
			Icon:     AssetIconURL(a.Type),
			Size:     AssetMarkerSize,
			Label:    a.Title,
		})
	}
	return markers
}
