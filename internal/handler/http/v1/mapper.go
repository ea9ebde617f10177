package v1

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shenikar/emergency_map/internal/models"
)

const metersPerMile = 1609.34

// ModelToEmergencyResponse преобразует доменную модель в DTO для ответа
func ModelToEmergencyResponse(model models.Emergency) EmergencyResponse {
	return EmergencyResponse{
		ID:          model.ID,
		Location:    model.Location,
		Radius:      model.Radius,
		Type:        model.Type,
		Title:       model.Title,
		Description: model.Description,
		Severity:    string(model.Severity),
		Timestamp:   model.Timestamp,
		Contacted:   model.Contacted(),
		ContactedAt: model.ContactedAt,
	}
}

// ModelsToEmergencyResponses преобразует слайс моделей в слайс DTO
func ModelsToEmergencyResponses(models []models.Emergency) []EmergencyResponse {
	responses := make([]EmergencyResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToEmergencyResponse(model)
	}
	return responses
}

// ModelToTimelineEventResponse добавляет к событию время в человекочитаемом виде относительно now
func ModelToTimelineEventResponse(model models.TimelineEvent, now time.Time) TimelineEventResponse {
	return TimelineEventResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Timestamp:   model.Timestamp,
		TimeAgo:     humanize.RelTime(model.Timestamp, now, "ago", "from now"),
		Type:        string(model.Type),
		Severity:    string(model.Severity),
		ImgURL:      model.ImgURL,
	}
}

func ModelsToTimelineEventResponses(events []models.TimelineEvent, now time.Time) []TimelineEventResponse {
	responses := make([]TimelineEventResponse, len(events))
	for i, e := range events {
		responses[i] = ModelToTimelineEventResponse(e, now)
	}
	return responses
}

// DTOToNewTimelineEvent преобразует запрос в доменную модель нового события
func DTOToNewTimelineEvent(dto AppendEventRequest) models.NewTimelineEvent {
	return models.NewTimelineEvent{
		Title:       dto.Title,
		Description: dto.Description,
		Type:        models.EventType(dto.Type),
		Severity:    models.Severity(dto.Severity),
		ImgURL:      dto.ImgURL,
	}
}

func ModelToOverviewResponse(model *models.EmergencyOverview, now time.Time) OverviewResponse {
	resp := OverviewResponse{
		Emergency:     ModelToEmergencyResponse(model.Emergency),
		Contacted:     model.Contacted,
		ContactedAt:   model.ContactedAt,
		StartedAt:     model.StartedAt,
		LastUpdatedAt: model.LastUpdatedAt,
		EventCount:    model.EventCount,
	}
	if model.StartedAt != nil {
		resp.StartedAgo = humanize.RelTime(*model.StartedAt, now, "ago", "from now")
	}
	if model.LastUpdatedAt != nil {
		resp.LastUpdatedAgo = humanize.RelTime(*model.LastUpdatedAt, now, "ago", "from now")
	}
	return resp
}

// ModelToRouteResponse преобразует маршрут в DTO; nil означает, что маршрута нет
func ModelToRouteResponse(route *models.RouteResult) RouteResponse {
	if route == nil {
		return RouteResponse{Available: false}
	}
	collection := route.Route
	return RouteResponse{
		Available: true,
		Duration:  route.Duration,
		Distance:  route.Distance,
		Summary: &RouteSummary{
			Minutes:       int(math.Round(route.Duration / 60)),
			DistanceKm:    route.Distance / 1000,
			DistanceMiles: route.Distance / metersPerMile,
		},
		Route: &collection,
	}
}

// DTOToPositions преобразует точки запроса маршрута; длина уже проверена валидатором
func DTOToPositions(dto RouteRequest) (models.Position, models.Position) {
	return models.NewPosition(dto.Start[0], dto.Start[1]), models.NewPosition(dto.End[0], dto.End[1])
}
