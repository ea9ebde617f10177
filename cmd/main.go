package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/emergency_map/internal/cache"
	"github.com/shenikar/emergency_map/internal/config"
	"github.com/shenikar/emergency_map/internal/directions"
	v1 "github.com/shenikar/emergency_map/internal/handler/http/v1"
	"github.com/shenikar/emergency_map/internal/metrics"
	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/repository"
	"github.com/shenikar/emergency_map/internal/service"
	"github.com/shenikar/emergency_map/internal/webhook"
	"github.com/shenikar/emergency_map/pkg/logger"
	redisclient "github.com/shenikar/emergency_map/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/emergency_map/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// newDirectionsProvider выбирает провайдера маршрутов по конфигурации
func newDirectionsProvider(cfg *config.Config) (service.DirectionsProvider, error) {
	switch cfg.DirectionsProvider {
	case config.ProviderGoogle:
		return directions.NewGoogleMapsProvider(cfg.GoogleMapsAPIKey, cfg.GoogleMapsBaseURL, cfg.DirectionsTimeout)
	case config.ProviderMapbox:
		return directions.NewMapboxProvider(cfg.MapboxAccessToken, cfg.MapboxBaseURL, cfg.DirectionsTimeout), nil
	}
	return nil, fmt.Errorf("unknown directions provider: %s", cfg.DirectionsProvider)
}

// @title Emergency Map API
// @version 1.0
// @description Emergencies, response timelines, safety assets and walking routes for the emergency map dashboard.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Регистрация метрик Prometheus
	metrics.Register()

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен только для кеша маршрутов и вебхуков
	var (
		redisClient      *redis.Client
		webhookPublisher webhook.WebhookPublisher
		webhookWorker    *webhook.WebhookWorker
		routeCache       service.RouteCache
	)
	if cfg.RedisAddr != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		routeCache = cache.NewRouteCache(redisClient, cfg.RouteCacheTTL)

		// Инициализация издателя вебхуков
		webhookPublisher = webhook.NewRedisWebhookPublisher(redisClient)

		// Инициализация и запуск воркера вебхуков
		webhookWorker = webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	} else {
		log.Warn("REDIS_ADDR is not set: route cache and webhooks are disabled")
	}

	// Инициализация хранилищ
	seed := repository.DefaultSeed(time.Now())
	if len(cfg.UserLocation) == 2 {
		seed.UserLocation = models.NewPosition(cfg.UserLocation[0], cfg.UserLocation[1])
	}
	incidentRepo := repository.NewIncidentRepository(seed)
	assetRepo := repository.NewAssetIndex(repository.DefaultAssets())

	// Провайдер маршрутов
	provider, err := newDirectionsProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create directions provider: %v", err)
	}
	log.WithField("provider", cfg.DirectionsProvider).Info("Directions provider configured")

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, assetRepo, log, webhookPublisher)
	mapService := service.NewMapService(incidentRepo, assetRepo, provider, routeCache, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, mapService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))
	router.Use(v1.MetricsMiddleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики и Swagger UI
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркер вебхуков
	cancel()
	if webhookWorker != nil {
		webhookWorker.Wait()
	}

	log.Info("Server gracefully stopped")
}
