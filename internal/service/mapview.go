package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/emergency_map/internal/metrics"
	"github.com/shenikar/emergency_map/internal/models"
	"github.com/sirupsen/logrus"
)

// DirectionsProvider строит пеший маршрут между двумя точками.
// Пустой список маршрутов у провайдера возвращается как models.ErrNoRoute.
type DirectionsProvider interface {
	Route(ctx context.Context, start, end models.Position) (*models.RouteResult, error)
}

// RouteCache хранит построенные маршруты; при промахе Get возвращает nil, nil
type RouteCache interface {
	Get(ctx context.Context, start, end models.Position) (*models.RouteResult, error)
	Set(ctx context.Context, start, end models.Position, route *models.RouteResult) error
}

// MapService определяет контракт слоя проекций для карты
type MapService interface {
	Markers(ctx context.Context) ([]models.Marker, error)
	AssetMarkers(ctx context.Context, emergencyID string) ([]models.AssetMarker, error)
	ComputeRoute(ctx context.Context, start, end models.Position) (*models.RouteResult, error)
	RouteToEmergency(ctx context.Context, emergencyID string) (*models.RouteResult, error)
}

type mapService struct {
	repo     IncidentRepository
	assets   AssetRepository
	provider DirectionsProvider
	cache    RouteCache
	logger   *logrus.Logger
	now      func() time.Time
}

// NewMapService создает сервис карты; cache может быть nil, тогда маршруты не кешируются
func NewMapService(repo IncidentRepository, assets AssetRepository, provider DirectionsProvider, cache RouteCache, logger *logrus.Logger) MapService {
	return &mapService{
		repo:     repo,
		assets:   assets,
		provider: provider,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Markers возвращает маркеры всех инцидентов
func (s *mapService) Markers(ctx context.Context) ([]models.Marker, error) {
	emergencies, err := s.repo.ListEmergencies(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "map",
			"method":  "Markers",
		}).WithError(err).Error("Failed to list emergencies for markers")
		return nil, fmt.Errorf("service: could not build markers: %w", err)
	}
	return ToMarkers(emergencies, s.now()), nil
}

// AssetMarkers возвращает маркеры средств безопасности рядом с инцидентом
func (s *mapService) AssetMarkers(ctx context.Context, emergencyID string) ([]models.AssetMarker, error) {
	assets, err := s.assets.GetAssets(ctx, emergencyID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":      "map",
			"method":       "AssetMarkers",
			"emergency_id": emergencyID,
		}).WithError(err).Error("Failed to get safety assets for markers")
		return nil, fmt.Errorf("service: could not build asset markers: %w", err)
	}
	return ToAssetMarkers(assets), nil
}

// ComputeRoute строит пеший маршрут. Если провайдер недоступен или маршрута нет,
// возвращает nil без ошибки; ошибка возвращается только для неверных координат.
func (s *mapService) ComputeRoute(ctx context.Context, start, end models.Position) (*models.RouteResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "map",
		"method":  "ComputeRoute",
		"start":   start,
		"end":     end,
	})

	if err := validateRoute(start, end); err != nil {
		metrics.RouteRequestsTotal.WithLabelValues(metrics.RouteOutcomeRejected).Inc()
		log.WithError(err).Warn("Rejected route request with invalid coordinates")
		return nil, fmt.Errorf("service: could not compute route: %w", err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, start, end)
		if err != nil {
			log.WithError(err).Warn("Failed to read route cache")
		}
		if cached != nil {
			metrics.RouteRequestsTotal.WithLabelValues(metrics.RouteOutcomeCached).Inc()
			log.Debug("Route served from cache")
			return cached, nil
		}
	}

	started := time.Now()
	route, err := s.provider.Route(ctx, start, end)
	metrics.DirectionsRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		if errors.Is(err, models.ErrNoRoute) {
			metrics.RouteRequestsTotal.WithLabelValues(metrics.RouteOutcomeNoRoute).Inc()
			log.Info("Directions provider returned no route")
		} else {
			metrics.RouteRequestsTotal.WithLabelValues(metrics.RouteOutcomeError).Inc()
			log.WithError(err).Error("Failed to fetch route from directions provider")
		}
		return nil, nil
	}

	metrics.RouteRequestsTotal.WithLabelValues(metrics.RouteOutcomeFound).Inc()
	if s.cache != nil {
		if err := s.cache.Set(ctx, start, end, route); err != nil {
			log.WithError(err).Warn("Failed to store route in cache")
		}
	}

	log.WithFields(logrus.Fields{
		"duration": route.Duration,
		"distance": route.Distance,
	}).Debug("Route computed successfully")
	return route, nil
}

// RouteToEmergency строит маршрут от положения пользователя до инцидента
func (s *mapService) RouteToEmergency(ctx context.Context, emergencyID string) (*models.RouteResult, error) {
	emergency, err := s.repo.GetByID(ctx, emergencyID)
	if err != nil {
		return nil, fmt.Errorf("service: could not route to emergency: %w", err)
	}

	from, err := s.repo.UserLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not get user location: %w", err)
	}

	return s.ComputeRoute(ctx, from, emergency.Location)
}

func validateRoute(start, end models.Position) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	return nil
}
