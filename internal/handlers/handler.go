package handlers

import (
	"strings"
	"time"

	"roast_advisor/internal/logger"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	wsInterval     time.Duration
	allowedOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, wsInterval: defaultInterval}
}

// WithStreamInterval sets the default advice push period of /ws.
func (h *Handler) WithStreamInterval(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.wsInterval = d
	}
	return h
}

// WithAllowedOrigins lists the browser origins allowed to open /ws.
// Empty means same-host only; "*" admits any origin.
func (h *Handler) WithAllowedOrigins(origins []string) *Handler {
	h.allowedOrigins = nil
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			h.allowedOrigins = append(h.allowedOrigins, o)
		}
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Advice stream over WebSocket on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSessionRoutes(api)
		h.registerReadingRoutes(api)
		h.registerOvenRoutes(api)
		h.registerAdviceRoutes(api)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	session := api.Group("/session")
	{
		session.GET("", h.getSession)
		session.PUT("", h.updateSession)
		session.POST("/reset", h.resetSession)
	}
}

func (h *Handler) registerReadingRoutes(api *gin.RouterGroup) {
	readings := api.Group("/readings")
	{
		readings.GET("", h.listReadings)
		// Body example: {"temp":152.5,"timestamp":"2025-03-01T14:30:00Z","unit":"F"}
		readings.POST("", h.addReading)
		readings.PUT("/:id", h.editReading)
		readings.DELETE("/:id", h.deleteReading)
	}
}

func (h *Handler) registerOvenRoutes(api *gin.RouterGroup) {
	oven := api.Group("/oven")
	{
		oven.POST("/set", h.setOvenTemp)
		oven.POST("/off", h.turnOvenOff)
		oven.POST("/on", h.turnOvenOn)
		oven.GET("/events", h.listOvenEvents)
	}
}

func (h *Handler) registerAdviceRoutes(api *gin.RouterGroup) {
	advice := api.Group("/advice")
	{
		advice.GET("", h.getAdvice)
		advice.GET("/responsiveness", h.getResponsiveness)
	}
}
