package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshbarros/auth-gateway/internal/api"
	"github.com/joshbarros/auth-gateway/internal/infrastructure/config"
	mongodb "github.com/joshbarros/auth-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/joshbarros/auth-gateway/internal/infrastructure/db/redis"
	"github.com/joshbarros/auth-gateway/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.Env != "development" && cfg.JWTSecret == "dev-only-insecure-secret" {
		log.Fatal().Msg("JWT_SECRET must be set outside development")
	}

	// --- Credential store ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	if cfg.Env == "development" {
		if err := mongodb.Seed(ctx, userRepo); err != nil {
			log.Warn().Err(err).Msg("development user seeding failed")
		} else {
			log.Info().Msg("development users seeded")
		}
	}

	// --- Rate limiter backend ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.UpstreamBaseURL).
			Msg("auth gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("auth gateway stopped")
}
