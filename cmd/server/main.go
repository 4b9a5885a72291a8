// Package main runs the registration backend HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/apex-fest/backend/config"
	"github.com/apex-fest/backend/internal/audit"
	"github.com/apex-fest/backend/internal/health"
	"github.com/apex-fest/backend/internal/middleware"
	"github.com/apex-fest/backend/internal/notify"
	"github.com/apex-fest/backend/internal/registrations"
	syncapi "github.com/apex-fest/backend/internal/sync"
	"github.com/apex-fest/backend/pkg/database"
	"github.com/apex-fest/backend/pkg/queue"
	"github.com/apex-fest/backend/pkg/redis"
	"github.com/apex-fest/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	// The database connects lazily on first use; a boot-time attempt only
	// ensures indexes early and warms the cache. Failure here is not
	// fatal: requests retry the connection.
	manager := database.NewManager(cfg.Mongo.URI, cfg.Mongo.DBName, logger)
	registrationRepo := registrations.NewRepository(manager)
	auditRepo := audit.NewRepository(manager)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := registrationRepo.EnsureIndexes(bootCtx); err != nil {
		logger.Warn("ensure indexes deferred", zap.Error(err))
	}
	bootCancel()

	var jobQueue *queue.Queue
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis unavailable, webhook queue disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			jobQueue = queue.NewQueue(rdb.Client, logger)
		}
	}

	webhookClient := notify.NewClient(cfg.Webhook.URL, cfg.Webhook.Secret,
		time.Duration(cfg.Webhook.TimeoutSec)*time.Second, logger)
	dispatcher := notify.NewDispatcher(jobQueue, webhookClient, logger)

	registrationHandler := registrations.NewHandler(registrationRepo, dispatcher,
		registrations.LinkMode(cfg.Sync.LinkMode), logger)
	syncHandler := syncapi.NewHandler(registrationRepo, auditRepo, logger)
	auditHandler := audit.NewHandler(auditRepo, logger)
	healthHandler := health.NewHandler(manager)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)
	router.NoRoute(func(c *gin.Context) { response.NotFound(c, "Not found") })

	router.GET("/api/health", healthHandler.Check)
	router.POST("/api/registrations", registrationHandler.Register)

	keyed := router.Group("/api", middleware.RequireAPIKey(cfg.Sync.APIKey))
	{
		keyed.GET("/sync", syncHandler.Export)
		keyed.GET("/audit", auditHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := manager.Close(shutdownCtx); err != nil {
		logger.Error("database close", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
