package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/emergency_map/internal/models"
)

const walkingProfile = "walking"

// MapboxProvider строит пешие маршруты через Mapbox Directions API
type MapboxProvider struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

func NewMapboxProvider(accessToken, baseURL string, timeout time.Duration) *MapboxProvider {
	return &MapboxProvider{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// Route запрашивает один маршрут без альтернатив с полной геометрией в GeoJSON
func (m *MapboxProvider) Route(ctx context.Context, start, end models.Position) (*models.RouteResult, error) {
	query := url.Values{}
	query.Set("alternatives", "false")
	query.Set("geometries", "geojson")
	query.Set("overview", "full")
	query.Set("steps", "false")
	query.Set("access_token", m.accessToken)

	apiURL := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s;%s?%s",
		m.baseURL, walkingProfile, formatPosition(start), formatPosition(end), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, string(body))
	}

	var mapboxResp struct {
		Routes []struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"routes"`
	}

	if err := json.Unmarshal(body, &mapboxResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(mapboxResp.Routes) == 0 {
		return nil, models.ErrNoRoute
	}

	route := mapboxResp.Routes[0]
	return models.NewRouteResult(route.Duration, route.Distance, route.Geometry.Coordinates), nil
}

// formatPosition выводит точку как "lon,lat" без потери точности
func formatPosition(p models.Position) string {
	return trimFloat(p.Lon()) + "," + trimFloat(p.Lat())
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
