package handlers

import (
	"net/http"

	"wsn_dashboard/internal/logger"
	"wsn_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Metrics is the part of the metrics registry the HTTP layer uses.
type Metrics interface {
	Handler() http.Handler
	StreamConnected()
	StreamDisconnected()
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	metrics  Metrics
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. m may be nil,
// in which case /metrics is not served.
func NewHandler(services *service.Service, m Metrics, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, metrics: m, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Display stream, same port
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
	api := r.Group("/api/v1", h.operatorIDMiddleware)
	{
		h.registerMonitorRoutes(api)
		h.registerSettingsRoutes(api)
		api.GET("/display", h.getDisplay)
		api.GET("/graph", h.getGraph)
		api.GET("/readings", h.getReadings)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	monitor := api.Group("/monitor")
	{
		monitor.GET("", h.listModes)
		monitor.GET("/:mode", h.getSession)
		monitor.POST("/:mode/start", h.startMonitor)
		monitor.POST("/:mode/stop", h.stopMonitor)
	}
}

func (h *Handler) registerSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/interval", h.setInterval)
		settings.PUT("/scale/manual", h.setManualScale)
		settings.PUT("/scale/auto", h.setAutoScale)
		settings.POST("/scale/clear", h.clearScale)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
