package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jiet-alumni/alumni-directory/internal/api"
	"github.com/jiet-alumni/alumni-directory/internal/api/handler"
	"github.com/jiet-alumni/alumni-directory/internal/core/service"
	"github.com/jiet-alumni/alumni-directory/internal/infrastructure/db/mongo"
	"github.com/jiet-alumni/alumni-directory/internal/infrastructure/db/redis"
	"github.com/jiet-alumni/alumni-directory/internal/infrastructure/queue"
	"github.com/jiet-alumni/alumni-directory/internal/pkg/config"
	"github.com/jiet-alumni/alumni-directory/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title           Alumni Directory API
// @version         1.0
// @description     Alumni directory with JWT authentication and admin-managed records.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "alumni-api",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := mongo.Connect(ctx, mongo.Config{
		URI:              cfg.Mongo.URI,
		Database:         cfg.Mongo.Database,
		UsersCollection:  cfg.Mongo.UsersCollection,
		AlumniCollection: cfg.Mongo.AlumniCollection,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	health := map[string]handler.Pinger{"mongodb": store}

	var (
		rdb      *goredis.Client
		throttle service.LoginThrottle
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		throttle = redis.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("redis disabled, login throttling is off")
	}

	// Audit workers outlive the request context so queued entries are
	// drained after the server stops accepting traffic.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	auditLog := logger.Component(log, "audit")
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(store.Audit, auditLog), auditLog)
	dispatcher.Start(auditCtx)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := service.NewAuthService(store.Users, tokens, service.AuthOptions{
		AllowedDomain: cfg.AllowedEmailDomain,
		Throttle:      throttle,
		Audit:         dispatcher,
	}, logger.Component(log, "auth"))
	userService := service.NewUserService(store.Users, dispatcher, logger.Component(log, "users"))
	alumniService := service.NewAlumniService(store.Alumni, dispatcher, logger.Component(log, "alumni"))

	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Users:       userService,
		Alumni:      alumniService,
		Log:         logger.Component(log, "http"),
		Health:      health,
		CORSOrigins: cfg.CORSAllowOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	stopAudit()
	dispatcher.Wait()

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("server exited")
}
