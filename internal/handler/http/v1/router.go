package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Один лимитер на все запросы к провайдеру маршрутов
	routeLimit := RateLimitMiddleware(h.cfg.RouteRateLimit, h.logger)

	emergencies := api.Group("/emergencies")
	{
		emergencies.GET("", h.listEmergencies)
		emergencies.GET("/:id", h.getEmergency)
		emergencies.GET("/:id/overview", h.getOverview)
		emergencies.GET("/:id/timeline", h.getTimeline)
		emergencies.POST("/:id/timeline", h.appendEvent)
		emergencies.POST("/:id/contact", h.contactEmergencyServices)
		emergencies.GET("/:id/assets", h.getAssets)
		emergencies.GET("/:id/assets/markers", h.getAssetMarkers)
		emergencies.GET("/:id/route", routeLimit, h.routeToEmergency)
	}

	// Проекции для карты
	api.GET("/markers", h.getMarkers)
	api.GET("/user/location", h.getUserLocation)
	api.POST("/routes", routeLimit, h.computeRoute)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
