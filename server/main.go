package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/phambaophuc/visa-photo/internal/http/handlers"
	"github.com/phambaophuc/visa-photo/internal/http/routes"
	"github.com/phambaophuc/visa-photo/internal/logger"
	"github.com/phambaophuc/visa-photo/internal/services/payment"
	"github.com/phambaophuc/visa-photo/internal/services/processor"
	"github.com/phambaophuc/visa-photo/internal/services/queue"
	"github.com/phambaophuc/visa-photo/internal/services/storage"
	"go.uber.org/zap"
)

const paymentWorkers = 2

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize logger
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize services
	imageProcessor, err := processor.NewImageProcessor(cfg.Photo)
	if err != nil {
		zlog.Fatal("Failed to initialize image processor", zap.Error(err))
	}

	store := storage.NewStorageService(cfg.Redis, cfg.Photo.FreeDailyLimit, zlog)
	defer store.Close()
	if status := store.HealthCheck(ctx); status != "healthy" {
		zlog.Warn("Redis unavailable, quota fails open and crop cache is skipped", zap.String("status", status))
	}

	payments := payment.NewService(cfg.Stripe, nil, zlog)
	if !payments.Configured() {
		zlog.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
	}

	// Continue without queue service for basic functionality
	var (
		events      handlers.EventPublisher
		queueHealth handlers.QueueHealth
	)
	paymentQueue, err := queue.NewQueueService(cfg.RabbitMQ, zlog)
	if err != nil {
		zlog.Warn("Failed to initialize queue service", zap.Error(err))
	} else {
		defer paymentQueue.Close()
		events, queueHealth = paymentQueue, paymentQueue
		zlog.Info("Payment queue ready", zap.String("queue", paymentQueue.QueueName()))
		for i := 1; i <= paymentWorkers; i++ {
			if err := paymentQueue.StartWorker(ctx, i); err != nil {
				zlog.Error("Failed to start payment worker", zap.Int("worker_id", i), zap.Error(err))
			}
		}
	}

	// Initialize handlers
	photoHandler := handlers.NewPhotoHandler(imageProcessor, store, store, zlog, cfg.Photo)
	paymentHandler := handlers.NewPaymentHandler(payments, events, zlog)
	contentHandler := handlers.NewContentHandler()
	healthHandler := handlers.NewHealthHandler(store, queueHealth, payments, zlog)

	router := routes.NewRouter(photoHandler, paymentHandler, contentHandler, healthHandler, cfg, zlog)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		zlog.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}
