package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"floral-studio/internal/handler"
	"floral-studio/internal/metrics"
	"floral-studio/internal/middleware"
	"floral-studio/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// MetricsHandler serves /metrics; promhttp.Handler() when nil
	MetricsHandler http.Handler

	StudioService  service.StudioService
	IntakeService  service.IntakeService
	MessageService service.MessageService
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger, cfg.StudioService))
	r.Use(middleware.Logger(cfg.Logger, cfg.StudioService))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	studioHandler := handler.NewStudioHandler(cfg.StudioService)
	intakeHandler := handler.NewIntakeHandler(cfg.IntakeService)
	messageHandler := handler.NewMessageHandler(cfg.MessageService)
	wsHandler := handler.NewWSHandler(cfg.StudioService, cfg.AllowedOrigins, cfg.Logger)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(metricsHandler))

	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		api.POST("/auth/login", studioHandler.Login)
		api.POST("/auth/logout", studioHandler.Logout)
		api.GET("/auth/me", studioHandler.Me)

		api.GET("/snapshot", studioHandler.GetSnapshot)
		api.GET("/ws", wsHandler.StreamSnapshots)

		api.POST("/clients", studioHandler.CreateClient)
		api.GET("/clients", studioHandler.ListClients)

		api.POST("/designs", studioHandler.CreateDesign)
		api.PUT("/designs/:id", studioHandler.UpdateDesign)
		api.DELETE("/designs/:id", studioHandler.DeleteDesign)

		api.POST("/mood-boards", studioHandler.CreateMoodBoard)
		api.DELETE("/mood-boards/:id", studioHandler.DeleteMoodBoard)
		api.POST("/mood-boards/:id/images", studioHandler.UploadImages)

		api.GET("/images/:id", studioHandler.GetImage)
		api.DELETE("/images/:id", studioHandler.DeleteImage)

		api.POST("/intake-forms", intakeHandler.SubmitForm)
		api.GET("/intake-forms", intakeHandler.ListForms)
		api.PUT("/intake-forms/:id", intakeHandler.UpdateForm)
		api.DELETE("/intake-forms/:id", intakeHandler.DeleteForm)

		// static routes before the :id route
		api.POST("/messages", messageHandler.SendMessage)
		api.GET("/messages/unread", messageHandler.GetUnreadCount)
		api.GET("/messages/with/:userId", messageHandler.GetConversation)
		api.GET("/messages/design/:designId", messageHandler.GetDesignMessages)
		api.POST("/messages/:id/read", messageHandler.MarkRead)
	}

	return r
}
