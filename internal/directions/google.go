package directions

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shenikar/emergency_map/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleMapsProvider строит пешие маршруты через Google Directions API
type GoogleMapsProvider struct {
	client *maps.Client
}

// NewGoogleMapsProvider создает провайдера; пустой baseURL означает адрес Google по умолчанию
func NewGoogleMapsProvider(apiKey, baseURL string, timeout time.Duration) (*GoogleMapsProvider, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client: client,
	}, nil
}

// Route запрашивает пеший маршрут; длительность и расстояние суммируются по всем участкам
func (g *GoogleMapsProvider) Route(ctx context.Context, start, end models.Position) (*models.RouteResult, error) {
	req := &maps.DirectionsRequest{
		Origin:       latLng(start),
		Destination:  latLng(end),
		Mode:         maps.TravelModeWalking,
		Alternatives: false,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, models.ErrNoRoute
		}
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 {
		return nil, models.ErrNoRoute
	}

	route := routes[0]
	var duration time.Duration
	var distance int
	for _, leg := range route.Legs {
		duration += leg.Duration
		distance += leg.Distance.Meters
	}

	points, err := route.OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode route polyline: %w", err)
	}

	// Карта ожидает координаты в порядке [lon, lat]
	coordinates := make([][]float64, len(points))
	for i, p := range points {
		coordinates[i] = []float64{p.Lng, p.Lat}
	}

	return models.NewRouteResult(duration.Seconds(), float64(distance), coordinates), nil
}

func latLng(p models.Position) string {
	return fmt.Sprintf("%s,%s", trimFloat(p.Lat()), trimFloat(p.Lon()))
}
