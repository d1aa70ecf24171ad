package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/api"
	"github.com/schoolhub/portal/internal/core/ports"
	"github.com/schoolhub/portal/internal/core/service"
	"github.com/schoolhub/portal/internal/infrastructure/config"
	"github.com/schoolhub/portal/internal/infrastructure/db/mongo"
	"github.com/schoolhub/portal/internal/infrastructure/db/redis"
	"github.com/schoolhub/portal/internal/infrastructure/schoolapi"
	"github.com/schoolhub/portal/internal/infrastructure/session"
	"github.com/schoolhub/portal/pkg/logger"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var store ports.SessionStore
	var rdb *goredis.Client

	switch cfg.SessionStore {
	case "redis":
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		switch {
		case err == nil:
			store = redis.NewSessionRepository(rdb, cfg.SessionTTL)
		case cfg.Env == "development":
			log.Warn().Err(err).Msg("redis unavailable, using in-memory session store")
			rdb = nil
			store = memoryStore(ctx, cfg, log)
		default:
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}

	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongo.NewSessionRepository(db, cfg.SessionTTL)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare session collection")
		}
		store = repo

	case "memory":
		store = memoryStore(ctx, cfg, log)
	}

	backend := schoolapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	sessions := service.NewSessionService(backend, store, cfg.JWTSecret, cfg.SessionTTL, log)

	e := api.NewRouter(api.Deps{
		Sessions:   sessions,
		Gateway:    backend,
		School:     backend,
		Redis:      rdb,
		SessionTTL: cfg.SessionTTL,
		Version:    version,
		Log:        log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.Backend.BaseURL).
			Msg("school portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

// memoryStore builds the in-memory session store with its background janitor
// running until ctx is cancelled.
func memoryStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) *session.MemoryStore {
	store := session.NewMemoryStore(cfg.SessionTTL)
	store.StartJanitor(ctx, time.Minute, log)
	return store
}
