package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/catalogsearch/backend/config"
	httpDelivery "github.com/catalogsearch/backend/internal/delivery/http"
	"github.com/catalogsearch/backend/internal/domain"
	"github.com/catalogsearch/backend/internal/infrastructure/cache"
	"github.com/catalogsearch/backend/internal/infrastructure/elastic"
	"github.com/catalogsearch/backend/internal/infrastructure/snapshot"
	"github.com/catalogsearch/backend/internal/logging"
	"github.com/catalogsearch/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "catalogsearch-backend",
		Version: version,
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Bool("elasticsearch", cfg.Elasticsearch.Enabled).
		Msg("starting catalog search backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fallback snapshot
	store := snapshot.NewStore(cfg.Snapshot.Path, logger)
	if err := store.Reload(); err != nil {
		logger.Warn().Err(err).Msg("starting with an empty snapshot")
	}
	if cfg.Snapshot.Watch {
		watcher := snapshot.NewWatcher(store, cfg.Snapshot.Debounce, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("snapshot watcher stopped")
			}
		}()
	}

	// Primary backend
	var backend domain.SearchBackend
	if cfg.Elasticsearch.Enabled {
		client, err := elastic.NewClient(elastic.Config{
			Addresses:      cfg.Elasticsearch.Addresses,
			Index:          cfg.Elasticsearch.Index,
			Username:       cfg.Elasticsearch.Username,
			Password:       cfg.Elasticsearch.Password,
			RequestTimeout: cfg.Elasticsearch.RequestTimeout,
			MaxRetries:     cfg.Elasticsearch.MaxRetries,
			FacetSize:      cfg.Elasticsearch.FacetSize,
			RatePerSecond:  float64(cfg.RateLimit.Backend),
		}, logger)
		if err != nil {
			return err
		}
		backend = client
		logger.Info().Strs("addresses", cfg.Elasticsearch.Addresses).Str("index", cfg.Elasticsearch.Index).Msg("elasticsearch configured")
	}

	resultCache, closeCache := newCache(ctx, cfg.Cache, logger)
	defer closeCache()

	service := usecase.NewSearchService(
		backend,
		store,
		resultCache,
		usecase.SearchServiceConfig{
			ProbeTimeout: cfg.Elasticsearch.ProbeTimeout,
			CacheTTL:     cfg.Cache.TTL,
		},
		logger,
	)

	handler := httpDelivery.NewHandler(service, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCache builds the configured result cache. A nil cache disables caching.
func newCache(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) (domain.CacheRepository, func()) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, "")
		if err == nil {
			return redisCache, func() { _ = redisCache.Close() }
		}
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		fallthrough
	case "memory":
		memoryCache := cache.NewMemoryCache(time.Minute)
		return memoryCache, func() { _ = memoryCache.Close() }
	default:
		return nil, func() {}
	}
}
