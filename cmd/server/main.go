// Command server runs the TaskMate HTTP API.
//
// @title                       TaskMate API
// @version                     1.0
// @description                 Task management API with per-user task ownership.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskmate/taskmate-api/internal/api"
	"github.com/taskmate/taskmate-api/internal/core/service"
	"github.com/taskmate/taskmate-api/internal/infrastructure/db/mongo"
	"github.com/taskmate/taskmate-api/internal/infrastructure/db/redis"
	"github.com/taskmate/taskmate-api/internal/infrastructure/http/handlers"
	"github.com/taskmate/taskmate-api/internal/pkg/config"
	"github.com/taskmate/taskmate-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := logger.New(logger.Options{})
		bootLog.Error().Err(err).Msg("failed to load config")
		return err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "taskmate",
	})
	log := logger.Get()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to mongodb")
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Error().Err(err).Msg("failed to create indexes")
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to redis")
		return err
	}
	defer rdb.Close()

	users := mongo.NewUserRepository(db)
	revocations := redis.NewRevocationStore(rdb)
	taskService := service.NewTaskService(mongo.NewTaskRepository(db), log.With().Str("component", "tasks").Logger())
	authService := service.NewAuthService(users, revocations, cfg.JWTSecret, cfg.TokenTTL, log.With().Str("component", "auth").Logger())

	if cfg.SeedDefaultData {
		if err := service.NewSeeder(users, authService, taskService, log).Seed(ctx); err != nil {
			log.Error().Err(err).Msg("failed to seed default data")
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Tasks:       taskService,
		Auth:        authService,
		Revocations: revocations,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}
