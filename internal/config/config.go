package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderMapbox = "mapbox"
	ProviderGoogle = "google"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config (пустой адрес отключает кеш маршрутов и вебхуки)
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Directions Config
	DirectionsProvider string        `env:"DIRECTIONS_PROVIDER" envDefault:"mapbox"`
	MapboxAccessToken  string        `env:"MAPBOX_ACCESS_TOKEN"`
	MapboxBaseURL      string        `env:"MAPBOX_BASE_URL" envDefault:"https://api.mapbox.com"`
	GoogleMapsAPIKey   string        `env:"GOOGLE_MAPS_API_KEY"`
	GoogleMapsBaseURL  string        `env:"GOOGLE_MAPS_BASE_URL"`
	DirectionsTimeout  time.Duration `env:"DIRECTIONS_TIMEOUT" envDefault:"10s"`
	RouteCacheTTL      time.Duration `env:"ROUTE_CACHE_TTL" envDefault:"5m"`
	RouteRateLimit     int           `env:"ROUTE_RATE_LIMIT" envDefault:"5"`

	// Dashboard Config
	CORSAllowedOrigins []string  `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	UserLocation       []float64 `env:"USER_LOCATION"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		DirectionsProvider: strings.ToLower(getEnv("DIRECTIONS_PROVIDER", ProviderMapbox)),
		MapboxAccessToken:  os.Getenv("MAPBOX_ACCESS_TOKEN"),
		MapboxBaseURL:      getEnv("MAPBOX_BASE_URL", "https://api.mapbox.com"),
		GoogleMapsAPIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		GoogleMapsBaseURL:  os.Getenv("GOOGLE_MAPS_BASE_URL"),
		DirectionsTimeout:  getEnvAsDuration("DIRECTIONS_TIMEOUT", 10*time.Second),
		RouteCacheTTL:      getEnvAsDuration("ROUTE_CACHE_TTL", 5*time.Minute),
		RouteRateLimit:     getEnvAsInt("ROUTE_RATE_LIMIT", 5),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		WebhookURL:         os.Getenv("WEBHOOK_URL"),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:     getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:  getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:   getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	if raw := os.Getenv("USER_LOCATION"); raw != "" {
		loc, err := parseLocation(raw)
		if err != nil {
			return nil, err
		}
		cfg.UserLocation = loc
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DirectionsProvider {
	case ProviderMapbox:
		if c.MapboxAccessToken == "" {
			return fmt.Errorf("MAPBOX_ACCESS_TOKEN environment variable is required")
		}
	case ProviderGoogle:
		if c.GoogleMapsAPIKey == "" {
			return fmt.Errorf("GOOGLE_MAPS_API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unknown directions provider: %s", c.DirectionsProvider)
	}

	if c.RouteRateLimit < 1 {
		return fmt.Errorf("ROUTE_RATE_LIMIT must be positive, got %d", c.RouteRateLimit)
	}
	if c.WebhookMaxRetries < 1 {
		return fmt.Errorf("WEBHOOK_MAX_RETRIES must be positive, got %d", c.WebhookMaxRetries)
	}
	return nil
}

// parseLocation разбирает строку вида "lon,lat"
func parseLocation(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("USER_LOCATION must be in lon,lat format, got %q", raw)
	}
	loc := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid USER_LOCATION coordinate %q: %w", p, err)
		}
		loc[i] = v
	}
	return loc, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList возвращает список значений, разделенных запятыми
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	items := strings.Split(value, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}
