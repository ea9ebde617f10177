package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/service"
)

// IncidentStore хранит инциденты и их ленты событий в памяти процесса
type IncidentStore struct {
	mu           sync.RWMutex
	emergencies  []models.Emergency
	index        map[string]int
	timelines    map[string][]models.TimelineEvent
	userLocation models.Position
	now          func() time.Time
}

// NewIncidentStore создает независимое хранилище из начальных данных.
// Данные копируются, поэтому несколько хранилищ не разделяют состояние.
func NewIncidentStore(seed SeedData) *IncidentStore {
	s := &IncidentStore{
		emergencies:  make([]models.Emergency, 0, len(seed.Emergencies)),
		index:        make(map[string]int, len(seed.Emergencies)),
		timelines:    make(map[string][]models.TimelineEvent, len(seed.Emergencies)),
		userLocation: seed.UserLocation,
		now:          time.Now,
	}

	for _, e := range seed.Emergencies {
		if _, dup := s.index[e.ID]; dup {
			continue
		}
		s.index[e.ID] = len(s.emergencies)
		s.emergencies = append(s.emergencies, e)
		// Лента есть у каждого инцидента, даже если в начальных данных событий нет
		s.timelines[e.ID] = append([]models.TimelineEvent{}, seed.Timelines[e.ID]...)
	}
	return s
}

// NewIncidentRepository возвращает хранилище как service.IncidentRepository
func NewIncidentRepository(seed SeedData) service.IncidentRepository {
	return NewIncidentStore(seed)
}

// ListEmergencies возвращает все инциденты в порядке загрузки
func (s *IncidentStore) ListEmergencies(ctx context.Context) ([]models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emergencies := make([]models.Emergency, len(s.emergencies))
	copy(emergencies, s.emergencies)
	return emergencies, nil
}

// GetByID возвращает инцидент по его ID
func (s *IncidentStore) GetByID(ctx context.Context, id string) (*models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("emergency with id %q: %w", id, models.ErrEmergencyNotFound)
	}
	emergency := s.emergencies[i]
	return &emergency, nil
}

// GetTimeline возвращает ленту от новых событий к старым; для неизвестного ID - пустой список
func (s *IncidentStore) GetTimeline(ctx context.Context, emergencyID string) ([]models.TimelineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.timelineCopy(emergencyID), nil
}

// AppendEvent вставляет событие в начало ленты и возвращает обновленную ленту.
// Для неизвестного ID ничего не делает и возвращает пустой список.
func (s *IncidentStore) AppendEvent(ctx context.Context, emergencyID string, event models.NewTimelineEvent) ([]models.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timeline, ok := s.timelines[emergencyID]
	if !ok {
		return []models.TimelineEvent{}, nil
	}

	created := models.TimelineEvent{
		ID:          fmt.Sprintf("%s-%s", emergencyID, uuid.NewString()),
		Title:       event.Title,
		Description: event.Description,
		Timestamp:   s.now(),
		Type:        event.Type,
		Severity:    event.Severity,
		ImgURL:      event.ImgURL,
	}

	updated := make([]models.TimelineEvent, 0, len(timeline)+1)
	updated = append(updated, created)
	updated = append(updated, timeline...)
	s.timelines[emergencyID] = updated

	return s.timelineCopy(emergencyID), nil
}

// MarkContacted отмечает время вызова экстренных служб; повторный вызов время не меняет
func (s *IncidentStore) MarkContacted(ctx context.Context, emergencyID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[emergencyID]
	if !ok {
		return fmt.Errorf("emergency with id %q: %w", emergencyID, models.ErrEmergencyNotFound)
	}
	if s.emergencies[i].ContactedAt == nil {
		s.emergencies[i].ContactedAt = &at
	}
	return nil
}

// UserLocation возвращает симулированное положение пользователя
func (s *IncidentStore) UserLocation(ctx context.Context) (models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocation, nil
}

func (s *IncidentStore) timelineCopy(emergencyID string) []models.TimelineEvent {
	timeline := s.timelines[emergencyID]
	events := make([]models.TimelineEvent, len(timeline))
	copy(events, timeline)
	return events
}
