package metrics

import "github.com/prometheus/client_golang/prometheus"

// Результаты построения маршрута
const (
	RouteOutcomeFound    = "found"
	RouteOutcomeCached   = "cached"
	RouteOutcomeNoRoute  = "no_route"
	RouteOutcomeError    = "error"
	RouteOutcomeRejected = "rejected"
)

// Метрики Prometheus сервиса карты
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)

	RouteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_requests_total",
			Help: "Total number of route computations by outcome",
		},
		[]string{"outcome"},
	)

	DirectionsRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "directions_request_duration_seconds",
			Help:    "Duration of calls to the directions provider",
			Buckets: prometheus.DefBuckets,
		},
	)

	TimelineEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timeline_events_total",
			Help: "Total number of timeline events appended",
		},
		[]string{"type"},
	)
)

// Register регистрирует все метрики в реестре по умолчанию
func Register() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(RouteRequestsTotal)
	prometheus.MustRegister(DirectionsRequestDuration)
	prometheus.MustRegister(TimelineEventsTotal)
}
