package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/service/mocks"
	"github.com/shenikar/emergency_map/internal/webhook"
	webhook_mocks "github.com/shenikar/emergency_map/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository, *mocks.MockAssetRepository, *webhook_mocks.MockWebhookPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	assetsMock := mocks.NewMockAssetRepository(ctrl)
	webhookMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewIncidentService(repoMock, assetsMock, logger, webhookMock).(*incidentService)
	service.now = func() time.Time { return fixedNow }
	return service, repoMock, assetsMock, webhookMock
}

func TestListEmergencies_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	expected := []models.Emergency{
		{ID: "1", Title: "Small Fire"},
		{ID: "2", Title: "Student Injury"},
	}

	// Ожидания
	repoMock.EXPECT().ListEmergencies(ctx).Return(expected, nil).Times(1)

	// Действие
	emergencies, err := service.ListEmergencies(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, emergencies)
}

func TestGetEmergency_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, "404").
		Return(nil, fmt.Errorf("emergency with id %q: %w", "404", models.ErrEmergencyNotFound)).
		Times(1)

	// Действие
	emergency, err := service.GetEmergency(ctx, "404")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, emergency)
	assert.ErrorIs(t, err, models.ErrEmergencyNotFound)
	assert.ErrorContains(t, err, "could not get emergency")
}

func TestGetTimeline_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	expected := []models.TimelineEvent{{ID: "1-1"}, {ID: "1-2"}}

	// Ожидания
	repoMock.EXPECT().GetTimeline(ctx, "1").Return(expected, nil).Times(1)

	// Действие
	events, err := service.GetTimeline(ctx, "1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, events)
}

func TestAppendEvent_Success_PublishesNotification(t *testing.T) {
	// Подготовка
	service, repoMock, _, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	input := models.NewTimelineEvent{Title: "Fire Contained", Type: models.EventTypeUpdate}
	created := models.TimelineEvent{ID: "1-abc", Title: "Fire Contained", Type: models.EventTypeUpdate, Timestamp: fixedNow}
	updated := []models.TimelineEvent{created, {ID: "1-1"}}

	// Ожидания
	repoMock.EXPECT().AppendEvent(ctx, "1", input).Return(updated, nil).Times(1)
	webhookMock.EXPECT().
		Publish(ctx, gomock.Any()).
		// Проверяем, что в уведомление попало новое событие
		Do(func(ctx context.Context, n webhook.TimelineNotification) {
			assert.Equal(t, "1", n.EmergencyID)
			assert.Equal(t, created, n.Event)
			assert.Equal(t, fixedNow, n.Timestamp)
		}).Return(nil).Times(1)

	// Действие
	events, err := service.AppendEvent(ctx, "1", input)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, updated, events)
}

func TestAppendEvent_PublishFailureIsNotReturned(t *testing.T) {
	// Подготовка
	service, repoMock, _, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	input := models.NewTimelineEvent{Title: "Alarm", Type: models.EventTypeAlert}
	updated := []models.TimelineEvent{{ID: "2-x", Title: "Alarm"}}

	// Ожидания
	repoMock.EXPECT().AppendEvent(ctx, "2", input).Return(updated, nil).Times(1)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(fmt.Errorf("redis down")).Times(1)

	// Действие
	events, err := service.AppendEvent(ctx, "2", input)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, updated, events)
}

func TestAppendEvent_UnknownEmergency(t *testing.T) {
	// Подготовка
	service, repoMock, _, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	input := models.NewTimelineEvent{Title: "Ghost", Type: models.EventTypeNotification}

	// Ожидания
	repoMock.EXPECT().AppendEvent(ctx, "404", input).Return([]models.TimelineEvent{}, nil).Times(1)
	// Публикатор вебхуков НЕ вызывается
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	events, err := service.AppendEvent(ctx, "404", input)

	// Проверки
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestAppendEvent_InvalidInput(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	cases := []models.NewTimelineEvent{
		{Title: "", Type: models.EventTypeAlert},
		{Title: "Bad type", Type: "rumour"},
		{Title: "Bad severity", Type: models.EventTypeAlert, Severity: "extreme"},
	}

	// Ожидания
	repoMock.EXPECT().AppendEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, input := range cases {
		// Действие
		events, err := service.AppendEvent(ctx, "1", input)

		// Проверки
		require.Error(t, err)
		assert.Nil(t, events)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}
}

func TestAppendEvent_WithoutPublisher(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	service := NewIncidentService(repoMock, mocks.NewMockAssetRepository(ctrl), logger, nil)
	ctx := context.Background()
	input := models.NewTimelineEvent{Title: "Update", Type: models.EventTypeUpdate}

	// Ожидания
	repoMock.EXPECT().AppendEvent(ctx, "1", input).Return([]models.TimelineEvent{{ID: "1-n"}}, nil).Times(1)

	// Действие
	events, err := service.AppendEvent(ctx, "1", input)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestContactEmergencyServices_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	emergency := &models.Emergency{ID: "1", Type: "fire"}
	expectedEvent := models.NewTimelineEvent{
		Title:       "911 Called",
		Description: "Emergency services contacted about fire incident.",
		Type:        models.EventTypeAction,
		Severity:    models.SeverityHigh,
	}
	updated := []models.TimelineEvent{{ID: "1-call", Title: "911 Called"}, {ID: "1-1"}}

	// Ожидания
	gomock.InOrder(
		repoMock.EXPECT().GetByID(ctx, "1").Return(emergency, nil),
		repoMock.EXPECT().AppendEvent(ctx, "1", expectedEvent).Return(updated, nil),
		repoMock.EXPECT().MarkContacted(ctx, "1", fixedNow).Return(nil),
	)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	events, err := service.ContactEmergencyServices(ctx, "1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, updated, events)
}

func TestContactEmergencyServices_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, "9").Return(nil, models.ErrEmergencyNotFound).Times(1)
	repoMock.EXPECT().AppendEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	repoMock.EXPECT().MarkContacted(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	events, err := service.ContactEmergencyServices(ctx, "9")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, events)
	assert.ErrorIs(t, err, models.ErrEmergencyNotFound)
}

func TestGetOverview_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	contactedAt := fixedNow.Add(-time.Minute)
	emergency := &models.Emergency{ID: "1", ContactedAt: &contactedAt}
	newest := fixedNow.Add(-2 * time.Minute)
	oldest := fixedNow.Add(-15 * time.Minute)
	timeline := []models.TimelineEvent{
		{ID: "1-1", Timestamp: newest},
		{ID: "1-2", Timestamp: fixedNow.Add(-5 * time.Minute)},
		{ID: "1-4", Timestamp: oldest},
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, "1").Return(emergency, nil).Times(1)
	repoMock.EXPECT().GetTimeline(ctx, "1").Return(timeline, nil).Times(1)

	// Действие
	overview, err := service.GetOverview(ctx, "1")

	// Проверки
	require.NoError(t, err)
	assert.True(t, overview.Contacted)
	assert.Equal(t, &contactedAt, overview.ContactedAt)
	assert.Equal(t, 3, overview.EventCount)
	require.NotNil(t, overview.StartedAt)
	require.NotNil(t, overview.LastUpdatedAt)
	assert.Equal(t, oldest, *overview.StartedAt)
	assert.Equal(t, newest, *overview.LastUpdatedAt)
}

func TestGetOverview_EmptyTimeline(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, "3").Return(&models.Emergency{ID: "3"}, nil).Times(1)
	repoMock.EXPECT().GetTimeline(ctx, "3").Return([]models.TimelineEvent{}, nil).Times(1)

	// Действие
	overview, err := service.GetOverview(ctx, "3")

	// Проверки
	require.NoError(t, err)
	assert.False(t, overview.Contacted)
	assert.Zero(t, overview.EventCount)
	assert.Nil(t, overview.StartedAt)
	assert.Nil(t, overview.LastUpdatedAt)
}

func TestGetAssets_Success(t *testing.T) {
	// Подготовка
	service, _, assetsMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	expected := []models.SafetyAsset{{ID: "fe-101", Type: models.AssetTypeFireExtinguisher}}

	// Ожидания
	assetsMock.EXPECT().GetAssets(ctx, "1").Return(expected, nil).Times(1)

	// Действие
	assets, err := service.GetAssets(ctx, "1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, assets)
}

func TestGetUserLocation_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	expected := models.NewPosition(-74.006, 40.7228)

	// Ожидания
	repoMock.EXPECT().UserLocation(ctx).Return(expected, nil).Times(1)

	// Действие
	pos, err := service.GetUserLocation(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, pos)
}
