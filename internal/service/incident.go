package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/emergency_map/internal/metrics"
	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/webhook"
	"github.com/sirupsen/logrus"
)

const (
	contactEventTitle = "911 Called"
)

// IncidentRepository определяет контракт хранилища инцидентов и их лент событий
type IncidentRepository interface {
	ListEmergencies(ctx context.Context) ([]models.Emergency, error)
	GetByID(ctx context.Context, id string) (*models.Emergency, error)
	GetTimeline(ctx context.Context, emergencyID string) ([]models.TimelineEvent, error)
	AppendEvent(ctx context.Context, emergencyID string, event models.NewTimelineEvent) ([]models.TimelineEvent, error)
	MarkContacted(ctx context.Context, emergencyID string, at time.Time) error
	UserLocation(ctx context.Context) (models.Position, error)
}

// AssetRepository определяет контракт индекса средств безопасности
type AssetRepository interface {
	GetAssets(ctx context.Context, emergencyID string) ([]models.SafetyAsset, error)
}

// IncidentService определяет контракт для бизнес-логики работы с инцидентами
type IncidentService interface {
	ListEmergencies(ctx context.Context) ([]models.Emergency, error)
	GetEmergency(ctx context.Context, id string) (*models.Emergency, error)
	GetTimeline(ctx context.Context, emergencyID string) ([]models.TimelineEvent, error)
	AppendEvent(ctx context.Context, emergencyID string, event models.NewTimelineEvent) ([]models.TimelineEvent, error)
	ContactEmergencyServices(ctx context.Context, emergencyID string) ([]models.TimelineEvent, error)
	GetOverview(ctx context.Context, emergencyID string) (*models.EmergencyOverview, error)
	GetAssets(ctx context.Context, emergencyID string) ([]models.SafetyAsset, error)
	GetUserLocation(ctx context.Context) (models.Position, error)
}

type incidentService struct {
	repo      IncidentRepository
	assets    AssetRepository
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	now       func() time.Time
}

// NewIncidentService создает сервис; publisher может быть nil, тогда уведомления не отправляются
func NewIncidentService(repo IncidentRepository, assets AssetRepository, logger *logrus.Logger, publisher webhook.WebhookPublisher) IncidentService {
	return &incidentService{
		repo:      repo,
		assets:    assets,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListEmergencies возвращает все инциденты в порядке загрузки
func (s *incidentService) ListEmergencies(ctx context.Context) ([]models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListEmergencies",
	})
	log.Debug("Listing emergencies")

	emergencies, err := s.repo.ListEmergencies(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list emergencies from repository")
		return nil, fmt.Errorf("service: could not list emergencies: %w", err)
	}

	log.WithField("count", len(emergencies)).Debug("Emergencies listed successfully")
	return emergencies, nil
}

// GetEmergency получает инцидент по ID
func (s *incidentService) GetEmergency(ctx context.Context, id string) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "GetEmergency",
		"emergency_id": id,
	})

	emergency, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrEmergencyNotFound) {
			log.Debug("Emergency not found")
		} else {
			log.WithError(err).Error("Failed to get emergency from repository")
		}
		return nil, fmt.Errorf("service: could not get emergency: %w", err)
	}
	return emergency, nil
}

// GetTimeline возвращает ленту событий; для неизвестного ID - пустой список
func (s *incidentService) GetTimeline(ctx context.Context, emergencyID string) ([]models.TimelineEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "GetTimeline",
		"emergency_id": emergencyID,
	})

	events, err := s.repo.GetTimeline(ctx, emergencyID)
	if err != nil {
		log.WithError(err).Error("Failed to get timeline from repository")
		return nil, fmt.Errorf("service: could not get timeline: %w", err)
	}

	log.WithField("count", len(events)).Debug("Timeline fetched successfully")
	return events, nil
}

// AppendEvent добавляет событие в начало ленты и возвращает обновленную ленту
func (s *incidentService) AppendEvent(ctx context.Context, emergencyID string, event models.NewTimelineEvent) ([]models.TimelineEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "AppendEvent",
		"emergency_id": emergencyID,
		"event_type":   event.Type,
	})

	if err := event.Validate(); err != nil {
		log.WithError(err).Warn("Rejected invalid timeline event")
		return nil, fmt.Errorf("service: could not append event: %w", err)
	}

	events, err := s.repo.AppendEvent(ctx, emergencyID, event)
	if err != nil {
		log.WithError(err).Error("Failed to append event in repository")
		return nil, fmt.Errorf("service: could not append event: %w", err)
	}
	if len(events) == 0 {
		log.Info("Emergency is unknown, event was not appended")
		return events, nil
	}

	metrics.TimelineEventsTotal.WithLabelValues(string(event.Type)).Inc()
	log.WithField("event_id", events[0].ID).Info("Timeline event appended")
	s.notify(ctx, log, emergencyID, events[0])
	return events, nil
}

// ContactEmergencyServices фиксирует вызов экстренных служб событием в ленте и отметкой на инциденте
func (s *incidentService) ContactEmergencyServices(ctx context.Context, emergencyID string) ([]models.TimelineEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "ContactEmergencyServices",
		"emergency_id": emergencyID,
	})

	emergency, err := s.repo.GetByID(ctx, emergencyID)
	if err != nil {
		log.WithError(err).Warn("Attempted to contact services for a non-existent emergency")
		return nil, fmt.Errorf("service: could not contact emergency services: %w", err)
	}

	events, err := s.AppendEvent(ctx, emergencyID, models.NewTimelineEvent{
		Title:       contactEventTitle,
		Description: fmt.Sprintf("Emergency services contacted about %s incident.", emergency.Type),
		Type:        models.EventTypeAction,
		Severity:    models.SeverityHigh,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkContacted(ctx, emergencyID, s.now()); err != nil {
		log.WithError(err).Error("Failed to mark emergency as contacted")
		return nil, fmt.Errorf("service: could not mark emergency as contacted: %w", err)
	}

	log.Info("Emergency services contacted")
	return events, nil
}

// GetOverview собирает сводку по инциденту: статус вызова служб, начало и последнее обновление
func (s *incidentService) GetOverview(ctx context.Context, emergencyID string) (*models.EmergencyOverview, error) {
	emergency, err := s.GetEmergency(ctx, emergencyID)
	if err != nil {
		return nil, err
	}

	events, err := s.GetTimeline(ctx, emergencyID)
	if err != nil {
		return nil, err
	}

	return models.NewEmergencyOverview(*emergency, events), nil
}

// GetAssets возвращает средства безопасности рядом с инцидентом
func (s *incidentService) GetAssets(ctx context.Context, emergencyID string) ([]models.SafetyAsset, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "GetAssets",
		"emergency_id": emergencyID,
	})

	assets, err := s.assets.GetAssets(ctx, emergencyID)
	if err != nil {
		log.WithError(err).Error("Failed to get safety assets")
		return nil, fmt.Errorf("service: could not get safety assets: %w", err)
	}
	return assets, nil
}

// GetUserLocation возвращает (симулированное) положение пользователя
func (s *incidentService) GetUserLocation(ctx context.Context) (models.Position, error) {
	pos, err := s.repo.UserLocation(ctx)
	if err != nil {
		return models.Position{}, fmt.Errorf("service: could not get user location: %w", err)
	}
	return pos, nil
}

func (s *incidentService) notify(ctx context.Context, log *logrus.Entry, emergencyID string, event models.TimelineEvent) {
	if s.publisher == nil {
		return
	}
	notification := webhook.TimelineNotification{
		EmergencyID: emergencyID,
		Event:       event,
		Timestamp:   s.now(),
	}
	if err := s.publisher.Publish(ctx, notification); err != nil {
		log.WithError(err).Warn("Failed to publish timeline notification")
	}
}
