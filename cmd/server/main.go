package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/config"
	"github.com/iliyamo/luxury-estate-api/internal/database"
	"github.com/iliyamo/luxury-estate-api/internal/handler"
	"github.com/iliyamo/luxury-estate-api/internal/logger"
	"github.com/iliyamo/luxury-estate-api/internal/queue"
	"github.com/iliyamo/luxury-estate-api/internal/repository"
	"github.com/iliyamo/luxury-estate-api/internal/router"
	"github.com/iliyamo/luxury-estate-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.IsProd(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing database is not fatal: projects are static and /test
	// reports the outage.
	var (
		client *mongo.Client
		db     *mongo.Database
	)
	if cfg.DatabaseConfigured() {
		client, db, err = database.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			lg.Warn("database unavailable; lead routes will fail", zap.Error(err))
		}
	} else {
		lg.Warn("DATABASE_URL or DATABASE_NAME not set; lead routes will fail")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		lg.Info("redis unavailable; response cache and rate limiting disabled")
	}

	var events handler.LeadEventPublisher = service.NopPublisher{}
	if cfg.LeadEvents.Enabled {
		events = service.NewLeadPublisher(cfg.LeadEvents.RabbitMQURL, lg.Named("publisher"))
		consumer := &queue.LeadConsumer{
			URL:    cfg.LeadEvents.RabbitMQURL,
			LogDir: cfg.LeadEvents.LogDir,
			Logger: lg.Named("lead-consumer"),
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lg.Error("lead consumer stopped", zap.Error(err))
			}
		}()
	}

	e := router.Setup(cfg, router.Deps{
		Projects:  repository.NewProjectRepo(),
		Leads:     repository.NewLeadRepo(db),
		Events:    events,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Logger:    lg,
	})

	addr := ":" + cfg.Port
	go func() {
		lg.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http shutdown", zap.Error(err))
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			lg.Warn("mongo disconnect", zap.Error(err))
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
