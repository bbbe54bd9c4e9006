package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reachskyline/crm-api/internal/api"
	"github.com/reachskyline/crm-api/internal/api/handler"
	"github.com/reachskyline/crm-api/internal/api/metrics"
	"github.com/reachskyline/crm-api/internal/core/service"
	mongodb "github.com/reachskyline/crm-api/internal/infrastructure/db/mongo"
	redisdb "github.com/reachskyline/crm-api/internal/infrastructure/db/redis"
	"github.com/reachskyline/crm-api/internal/infrastructure/queue"
	"github.com/reachskyline/crm-api/internal/pkg/config"
	"github.com/reachskyline/crm-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Reach Skyline CRM API
// @version                     1.0
// @description                 Client ledger, task reconciliation and team efficiency for the Reach Skyline back office.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.IsDevelopment(),
		File: logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	})
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	clientRepo := mongodb.NewClientRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	dispatcher := queue.NewActivityDispatcher(cfg.Activity.Workers, activityRepo, metrics.ActivityQueueDepth, log)
	dispatcher.Start(ctx)

	locker := redisdb.NewKeyLock(rdb, cfg.Redis.LockTTL, cfg.Redis.LockWait, log)
	ledger := service.NewLedger(clientRepo, taskRepo, log,
		service.WithLocker(locker),
		service.WithActivityRecorder(dispatcher),
	)

	e := api.NewRouter(api.Dependencies{
		Auth:      service.NewAuthService(employeeRepo, cfg.JWTSecret, cfg.TokenTTL),
		Ledger:    ledger,
		Clients:   service.NewClientService(clientRepo, log, service.WithClientLocker(locker)),
		Tasks:     service.NewTaskService(taskRepo, log),
		Employees: service.NewEmployeeService(employeeRepo, log),
		Activity:  service.NewActivityService(activityRepo),
		HealthChecks: map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Stop()
}
