package models

// RouteResult - пеший маршрут до инцидента
type RouteResult struct {
	Duration float64           `json:"duration"` // секунды
	Distance float64           `json:"distance"` // метры
	Route    FeatureCollection `json:"route"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   LineString     `json:"geometry"`
}

type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// NewRouteResult оборачивает геометрию маршрута в коллекцию из одного объекта
func NewRouteResult(duration, distance float64, coordinates [][]float64) *RouteResult {
	return &RouteResult{
		Duration: duration,
		Distance: distance,
		Route: FeatureCollection{
			Type: "FeatureCollection",
			Features: []Feature{
				{
					Type:       "Feature",
					Properties: map[string]any{},
					Geometry: LineString{
						Type:        "LineString",
						Coordinates: coordinates,
					},
				},
			},
		},
	}
}
