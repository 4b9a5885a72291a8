// Package main runs the background notifier: queued sheet webhook
// deliveries plus the registrations change-stream watcher.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/apex-fest/backend/config"
	"github.com/apex-fest/backend/internal/notify"
	"github.com/apex-fest/backend/internal/worker"
	"github.com/apex-fest/backend/pkg/database"
	"github.com/apex-fest/backend/pkg/queue"
	"github.com/apex-fest/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Webhook.URL == "" {
		logger.Fatal("GOOGLE_APPS_SCRIPT_WEBHOOK is required for the worker")
	}

	ctx := context.Background()
	manager := database.NewManager(cfg.Mongo.URI, cfg.Mongo.DBName, logger)
	db, err := manager.Acquire(ctx)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	webhookClient := notify.NewClient(cfg.Webhook.URL, cfg.Webhook.Secret,
		time.Duration(cfg.Webhook.TimeoutSec)*time.Second, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()

		processor := worker.NewNotifyProcessor(webhookClient, queue.NewQueue(rdb.Client, logger), logger)
		go processor.Run(workerCtx)
		logger.Info("notify worker started")
	} else {
		logger.Warn("REDIS_ADDR not set, queue consumer disabled")
	}

	if cfg.Webhook.WatchChanges {
		dispatcher := notify.NewDispatcher(nil, webhookClient, logger)
		watcher := worker.NewWatcher(db, dispatcher.Dispatch, logger)
		go watcher.Run(workerCtx)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := manager.Close(shutdownCtx); err != nil {
		logger.Error("database close", zap.Error(err))
	}
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
