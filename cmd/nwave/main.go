package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nitingupta-05/nwave/config"
	"github.com/nitingupta-05/nwave/internal/cache"
	"github.com/nitingupta-05/nwave/internal/jamendo"
	"github.com/nitingupta-05/nwave/internal/logging"
	"github.com/nitingupta-05/nwave/internal/playlist"
	"github.com/nitingupta-05/nwave/internal/server"
	"github.com/nitingupta-05/nwave/internal/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error: Failed to load configuration: %v", err)
		log.Println("")
		log.Println("Please ensure you have set the following environment variables:")
		log.Println("  YOUTUBE_API_KEY     - YouTube Data API v3 key (required)")
		log.Println("  JAMENDO_CLIENT_ID   - Jamendo API client id (required)")
		log.Println("")
		log.Println("Optional environment variables:")
		log.Println("  PORT                 - Listen port (default: 4000)")
		log.Println("  CACHE_TTL_SECONDS    - Upstream cache TTL (default: 600)")
		log.Println("  HTTP_TIMEOUT_SECONDS - Upstream request timeout (default: 10)")
		log.Println("  RATE_LIMIT_RPS       - Per-client rate limit (default: 100, 0 = disabled)")
		log.Println("  LOG_LEVEL            - Log level (debug, info, warn, error)")
		log.Println("  LOG_FILE             - Rotating log file path (default: stderr only)")
		log.Println("")
		log.Println("Redis cache (in-memory cache is used when unset):")
		log.Println("  REDIS_HOST, REDIS_PORT, REDIS_PASSWORD, REDIS_DB")
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})

	var store cache.Store
	if cfg.UseRedis() {
		rc := cfg.GetRedisConfig()
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Host:     rc.Host,
			Port:     rc.Port,
			Password: rc.Password,
			DB:       rc.DB,
		}, cfg.CacheTTL)
		if err != nil {
			slog.Error("redis connection failed", "host", rc.Host, "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		slog.Info("using redis cache", "host", rc.Host, "port", rc.Port)
	} else {
		store = cache.NewMemoryStore(cfg.CacheTTL)
		slog.Info("using in-memory cache", "ttl", cfg.CacheTTL)
	}

	yt := youtube.NewClient(cfg.YouTubeAPIKey, store, cfg.UpstreamTimeout)
	jam := jamendo.NewClient(cfg.JamendoClientID, store, cfg.UpstreamTimeout)
	playlists := playlist.NewService(yt, jam, store)

	srv := server.New(playlists, server.Options{
		Port:               cfg.Port,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
	})

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
