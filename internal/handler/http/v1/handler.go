package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/emergency_map/internal/config"
	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	mapService      service.MapService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	now             func() time.Time
}

func NewHandler(incidentService service.IncidentService, mapService service.MapService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		mapService:      mapService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		now:             time.Now,
	}
}

// @Summary List emergencies
// @Description Get all tracked emergencies in load order
// @Tags Emergencies
// @Produce json
// @Success 200 {array} EmergencyResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [get]
func (h *Handler) listEmergencies(c *gin.Context) {
	log := h.logger.WithField("method", "listEmergencies")

	emergencies, err := h.incidentService.ListEmergencies(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list emergencies from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToEmergencyResponses(emergencies))
}

// @Summary Get emergency by ID
// @Description Get a single emergency by its ID
// @Tags Emergencies
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getEmergency(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getEmergency").WithField("id", id)

	emergency, err := h.incidentService.GetEmergency(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "Failed to get emergency from service")
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(*emergency))
}

// @Summary Get emergency timeline
// @Description Get the timeline of an emergency, most recent first. Unknown IDs yield an empty list.
// @Tags Timeline
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {array} TimelineEventResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/timeline [get]
func (h *Handler) getTimeline(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getTimeline").WithField("id", id)

	events, err := h.incidentService.GetTimeline(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to get timeline from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToTimelineEventResponses(events, h.now()))
}

// @Summary Append timeline event
// @Description Insert an event at the head of the timeline and return the updated timeline.
// @Description Unknown IDs are not an error: nothing is appended and an empty list is returned.
// @Tags Timeline
// @Accept json
// @Produce json
// @Param id path string true "Emergency ID"
// @Param event body AppendEventRequest true "Timeline event"
// @Success 201 {array} TimelineEventResponse
// @Success 200 {array} TimelineEventResponse "Unknown emergency, nothing appended"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/timeline [post]
func (h *Handler) appendEvent(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "appendEvent").WithField("id", id)

	var input AppendEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.incidentService.AppendEvent(c.Request.Context(), id, DTOToNewTimelineEvent(input))
	if err != nil {
		h.respondError(c, log, err, "Failed to append event in service")
		return
	}

	status := http.StatusCreated
	if len(events) == 0 {
		status = http.StatusOK
	}
	c.JSON(status, ModelsToTimelineEventResponses(events, h.now()))
}

// @Summary Contact emergency services
// @Description Record a "911 Called" action in the timeline and mark the emergency as contacted
// @Tags Timeline
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {array} TimelineEventResponse
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/contact [post]
func (h *Handler) contactEmergencyServices(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "contactEmergencyServices").WithField("id", id)

	events, err := h.incidentService.ContactEmergencyServices(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "Failed to contact emergency services")
		return
	}
	c.JSON(http.StatusOK, ModelsToTimelineEventResponses(events, h.now()))
}

// @Summary Get emergency overview
// @Description Get contact status, start time and last update of an emergency
// @Tags Emergencies
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {object} OverviewResponse
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/overview [get]
func (h *Handler) getOverview(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getOverview").WithField("id", id)

	overview, err := h.incidentService.GetOverview(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "Failed to get overview from service")
		return
	}
	c.JSON(http.StatusOK, ModelToOverviewResponse(overview, h.now()))
}

// @Summary Get safety assets
// @Description Get safety assets near an emergency. Unknown IDs yield an empty list.
// @Tags Assets
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {array} models.SafetyAsset
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/assets [get]
func (h *Handler) getAssets(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getAssets").WithField("id", id)

	assets, err := h.incidentService.GetAssets(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to get assets from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, assets)
}

// @Summary Get safety asset markers
// @Description Get renderable markers for safety assets near an emergency
// @Tags Map
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {array} models.AssetMarker
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/assets/markers [get]
func (h *Handler) getAssetMarkers(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getAssetMarkers").WithField("id", id)

	markers, err := h.mapService.AssetMarkers(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to get asset markers from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, markers)
}

// @Summary Get emergency markers
// @Description Get renderable markers for all emergencies, colored by severity
// @Tags Map
// @Produce json
// @Success 200 {array} models.Marker
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /markers [get]
func (h *Handler) getMarkers(c *gin.Context) {
	log := h.logger.WithField("method", "getMarkers")

	markers, err := h.mapService.Markers(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get markers from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, markers)
}

// @Summary Get user location
// @Description Get the (simulated) position of the user
// @Tags Map
// @Produce json
// @Success 200 {object} UserLocationResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user/location [get]
func (h *Handler) getUserLocation(c *gin.Context) {
	log := h.logger.WithField("method", "getUserLocation")

	pos, err := h.incidentService.GetUserLocation(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get user location from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, UserLocationResponse{Location: pos})
}

// @Summary Compute walking route
// @Description Compute a walking route between two [lon, lat] points. available=false when no route exists.
// @Tags Routes
// @Accept json
// @Produce json
// @Param route body RouteRequest true "Route request"
// @Success 200 {object} RouteResponse
// @Failure 400 {object} map[string]string "Invalid request body or coordinates"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes [post]
func (h *Handler) computeRoute(c *gin.Context) {
	var input RouteRequest
	log := h.logger.WithField("method", "computeRoute")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end := DTOToPositions(input)
	route, err := h.mapService.ComputeRoute(c.Request.Context(), start, end)
	if err != nil {
		h.respondError(c, log, err, "Failed to compute route in service")
		return
	}
	c.JSON(http.StatusOK, ModelToRouteResponse(route))
}

// @Summary Route to emergency
// @Description Compute a walking route from the user location to the emergency. available=false when no route exists.
// @Tags Routes
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {object} RouteResponse
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/route [get]
func (h *Handler) routeToEmergency(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "routeToEmergency").WithField("id", id)

	route, err := h.mapService.RouteToEmergency(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "Failed to route to emergency")
		return
	}
	c.JSON(http.StatusOK, ModelToRouteResponse(route))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError отображает ошибки сервиса на HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, models.ErrEmergencyNotFound):
		log.WithError(err).Warn(msg)
		c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
	case errors.Is(err, models.ErrInvalidInput):
		log.WithError(err).Warn(msg)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
