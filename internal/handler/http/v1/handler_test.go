package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_map/internal/config"
	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T, rateLimit ...int) (*Handler, *mocks.MockIncidentService, *mocks.MockMapService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	incidentMock := mocks.NewMockIncidentService(ctrl)
	mapMock := mocks.NewMockMapService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{RouteRateLimit: 100}
	if len(rateLimit) > 0 {
		cfg.RouteRateLimit = rateLimit[0]
	}

	handler := NewHandler(incidentMock, mapMock, logger, cfg)
	handler.now = func() time.Time { return fixedNow }

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, incidentMock, mapMock, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListEmergencies_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)
	emergencies := []models.Emergency{
		{ID: "1", Title: "Small Fire", Type: "fire", Severity: models.SeverityHigh, Location: models.NewPosition(-73.986, 40.7328)},
		{ID: "2", Title: "Student Injury", Type: "injury"},
	}

	incidentMock.EXPECT().ListEmergencies(gomock.Any()).Return(emergencies, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EmergencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "1", resp[0].ID)
	assert.Equal(t, models.NewPosition(-73.986, 40.7328), resp[0].Location)
	assert.Equal(t, "high", resp[0].Severity)
	assert.False(t, resp[0].Contacted)
}

func TestGetEmergency_NotFound(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().
		GetEmergency(gomock.Any(), "404").
		Return(nil, fmt.Errorf("service: could not get emergency: %w", models.ErrEmergencyNotFound)).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "emergency not found")
}

func TestGetTimeline_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)
	events := []models.TimelineEvent{
		{ID: "1-1", Title: "Emergency Services Notified", Timestamp: fixedNow.Add(-2 * time.Minute), Type: models.EventTypeAction, Severity: models.SeverityHigh},
		{ID: "1-4", Title: "Smoke Reported", Timestamp: fixedNow.Add(-15 * time.Minute), Type: models.EventTypeNotification},
	}

	incidentMock.EXPECT().GetTimeline(gomock.Any(), "1").Return(events, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/1/timeline", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []TimelineEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "1-1", resp[0].ID)
	assert.Equal(t, "2 minutes ago", resp[0].TimeAgo)
	assert.Equal(t, "15 minutes ago", resp[1].TimeAgo)
	assert.Equal(t, "action", resp[0].Type)
}

func TestGetTimeline_UnknownIDIsEmptyList(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().GetTimeline(gomock.Any(), "9").Return([]models.TimelineEvent{}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/9/timeline", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAppendEvent_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)
	reqBody := AppendEventRequest{Title: "Fire Contained", Type: "update", Severity: "medium"}
	updated := []models.TimelineEvent{
		{ID: "1-new", Title: "Fire Contained", Timestamp: fixedNow, Type: models.EventTypeUpdate, Severity: models.SeverityMedium},
		{ID: "1-1", Title: "Emergency Services Notified", Timestamp: fixedNow.Add(-2 * time.Minute), Type: models.EventTypeAction},
	}

	incidentMock.EXPECT().
		AppendEvent(gomock.Any(), "1", models.NewTimelineEvent{
			Title:    "Fire Contained",
			Type:     models.EventTypeUpdate,
			Severity: models.SeverityMedium,
		}).
		Return(updated, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, http.MethodPost, "/api/v1/emergencies/1/timeline", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp []TimelineEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Fire Contained", resp[0].Title)
}

func TestAppendEvent_UnknownEmergency(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().AppendEvent(gomock.Any(), "404", gomock.Any()).Return([]models.TimelineEvent{}, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/emergencies/404/timeline", bytes.NewBufferString(`{"title":"Ghost","type":"alert"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAppendEvent_InvalidJSON(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().AppendEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodPost, "/api/v1/emergencies/1/timeline", bytes.NewBufferString(`{"title": "test"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestAppendEvent_ValidationError(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().AppendEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	cases := []string{
		`{"type":"alert"}`,
		`{"title":"Bad type","type":"rumour"}`,
		`{"title":"Bad severity","type":"alert","severity":"extreme"}`,
	}
	for _, body := range cases {
		w := makeRequest(router, http.MethodPost, "/api/v1/emergencies/1/timeline", bytes.NewBufferString(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestContactEmergencyServices_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)
	updated := []models.TimelineEvent{{ID: "1-call", Title: "911 Called", Timestamp: fixedNow, Type: models.EventTypeAction, Severity: models.SeverityHigh}}

	incidentMock.EXPECT().ContactEmergencyServices(gomock.Any(), "1").Return(updated, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/emergencies/1/contact", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []TimelineEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "911 Called", resp[0].Title)
	assert.Equal(t, "now", resp[0].TimeAgo)
}

func TestContactEmergencyServices_NotFound(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().ContactEmergencyServices(gomock.Any(), "9").Return(nil, models.ErrEmergencyNotFound).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/emergencies/9/contact", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOverview_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)
	started := fixedNow.Add(-15 * time.Minute)
	updated := fixedNow.Add(-2 * time.Minute)
	overview := &models.EmergencyOverview{
		Emergency:     models.Emergency{ID: "1", Title: "Small Fire"},
		StartedAt:     &started,
		LastUpdatedAt: &updated,
		EventCount:    4,
	}

	incidentMock.EXPECT().GetOverview(gomock.Any(), "1").Return(overview, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/1/overview", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp OverviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.Emergency.ID)
	assert.False(t, resp.Contacted)
	assert.Equal(t, 4, resp.EventCount)
	assert.Equal(t, "15 minutes ago", resp.StartedAgo)
	assert.Equal(t, "2 minutes ago", resp.LastUpdatedAgo)
}

func TestGetAssets_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)
	assets := []models.SafetyAsset{{ID: "fe-101", Type: models.AssetTypeFireExtinguisher, Title: "Fire Extinguisher"}}

	incidentMock.EXPECT().GetAssets(gomock.Any(), "1").Return(assets, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/1/assets", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []models.SafetyAsset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, assets, resp)
}

func TestGetAssetMarkers_Success(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)
	markers := []models.AssetMarker{{ID: "fe-101", Icon: "/assets/fire-ext.png", Size: 48, Label: "Fire Extinguisher"}}

	mapMock.EXPECT().AssetMarkers(gomock.Any(), "1").Return(markers, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/1/assets/markers", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []models.AssetMarker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, markers, resp)
}

func TestGetMarkers_Success(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)
	markers := []models.Marker{{
		ID:       "1",
		Position: models.NewPosition(-73.986, 40.7328),
		Icon:     "/assets/fire.png",
		Size:     30,
		Color:    models.Color{255, 0, 0},
		Info:     models.MarkerInfo{Title: "Small Fire", Type: "fire", Timestamp: fixedNow, Severity: models.SeverityHigh},
	}}

	mapMock.EXPECT().Markers(gomock.Any()).Return(markers, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/markers", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"color":[255,0,0]`)
	assert.Contains(t, w.Body.String(), `"position":[-73.986,40.7328]`)
}

func TestGetMarkers_ServiceError(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)

	mapMock.EXPECT().Markers(gomock.Any()).Return(nil, errors.New("boom")).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/markers", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetUserLocation_Success(t *testing.T) {
	_, incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().GetUserLocation(gomock.Any()).Return(models.NewPosition(-74.006, 40.7228), nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/user/location", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"location":[-74.006,40.7228]}`, w.Body.String())
}

func TestComputeRoute_Success(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)
	start := models.NewPosition(-74.006, 40.7228)
	end := models.NewPosition(-73.986, 40.7328)
	route := models.NewRouteResult(450, 1609.34, [][]float64{{-74.006, 40.7228}, {-73.986, 40.7328}})

	mapMock.EXPECT().ComputeRoute(gomock.Any(), start, end).Return(route, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/routes", bytes.NewBufferString(`{"start":[-74.006,40.7228],"end":[-73.986,40.7328]}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 8, resp.Summary.Minutes)
	assert.InDelta(t, 1.60934, resp.Summary.DistanceKm, 1e-9)
	assert.InDelta(t, 1.0, resp.Summary.DistanceMiles, 1e-9)
	require.NotNil(t, resp.Route)
	assert.Equal(t, "FeatureCollection", resp.Route.Type)
}

func TestComputeRoute_NoRoute(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)

	mapMock.EXPECT().ComputeRoute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/routes", bytes.NewBufferString(`{"start":[-74.006,40.7228],"end":[-73.986,40.7328]}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":false}`, w.Body.String())
}

func TestComputeRoute_ValidationError(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)

	mapMock.EXPECT().ComputeRoute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/v1/routes", bytes.NewBufferString(`{"start":[-74.006],"end":[-73.986,40.7328]}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComputeRoute_InvalidCoordinates(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)

	mapMock.EXPECT().
		ComputeRoute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: could not compute route: %w", models.ErrInvalidInput)).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/routes", bytes.NewBufferString(`{"start":[-274.006,40.7228],"end":[-73.986,40.7328]}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComputeRoute_RateLimited(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t, 1)
	body := `{"start":[-74.006,40.7228],"end":[-73.986,40.7328]}`

	mapMock.EXPECT().ComputeRoute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	first := makeRequest(router, http.MethodPost, "/api/v1/routes", bytes.NewBufferString(body))
	second := makeRequest(router, http.MethodPost, "/api/v1/routes", bytes.NewBufferString(body))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouteToEmergency_Success(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)
	route := models.NewRouteResult(120, 300, [][]float64{{-74.006, 40.7228}, {-73.986, 40.7328}})

	mapMock.EXPECT().RouteToEmergency(gomock.Any(), "1").Return(route, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/1/route", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, 2, resp.Summary.Minutes)
}

func TestRouteToEmergency_NotFound(t *testing.T) {
	_, _, mapMock, router := newTestHandler(t)

	mapMock.EXPECT().RouteToEmergency(gomock.Any(), "9").Return(nil, models.ErrEmergencyNotFound).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/emergencies/9/route", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
