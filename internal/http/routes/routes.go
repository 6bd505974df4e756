package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/phambaophuc/visa-photo/internal/http/handlers"
	"github.com/phambaophuc/visa-photo/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	photoHandler   *handlers.PhotoHandler
	paymentHandler *handlers.PaymentHandler
	contentHandler *handlers.ContentHandler
	healthHandler  *handlers.HealthHandler
	config         *config.Config
	logger         *zap.Logger
}

func NewRouter(
	photoHandler *handlers.PhotoHandler,
	paymentHandler *handlers.PaymentHandler,
	contentHandler *handlers.ContentHandler,
	healthHandler *handlers.HealthHandler,
	config *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		photoHandler:   photoHandler,
		paymentHandler: paymentHandler,
		contentHandler: contentHandler,
		healthHandler:  healthHandler,
		config:         config,
		logger:         logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.config.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Whole batches stay in memory up to this size before spilling to disk.
	router.MaxMultipartMemory = r.config.Photo.MaxFileSize * int64(r.config.Photo.MaxBatch)

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS(r.config.Server.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	checkoutLimiter := middleware.NewRateLimiter(r.config.RateLimit.RPS, r.config.RateLimit.Burst)

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.healthHandler.HealthCheck)

		photos := v1.Group("/photos", middleware.ValidateContentType())
		{
			photos.POST("/export", r.photoHandler.Export)
			photos.POST("/batch", r.photoHandler.Batch)
			photos.POST("/suggest-crop", r.photoHandler.SuggestCrop)
		}

		v1.GET("/plans", r.paymentHandler.Plans)
		v1.POST("/checkout", checkoutLimiter.Middleware(), r.paymentHandler.Checkout)
		v1.GET("/checkout/sessions/:id", r.paymentHandler.GetSession)
		v1.POST("/webhook", r.paymentHandler.Webhook)

		v1.GET("/i18n/:lang", r.contentHandler.Translations)
		v1.GET("/requirements", r.contentHandler.Requirements)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "French visa photo service is running",
		})
	})

	return router
}
