package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/catalogsearch/backend/internal/domain"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	ProbeTimeout time.Duration
	CacheTTL     time.Duration
}

// SearchService answers queries from the primary backend when it is reachable
// and from the in-process engine over the current snapshot otherwise.
type SearchService struct {
	backend      domain.SearchBackend
	snapshots    domain.SnapshotProvider
	cache        domain.CacheRepository
	engine       *Engine
	probeTimeout time.Duration
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewSearchService creates a search service. backend and cache may be nil.
func NewSearchService(
	backend domain.SearchBackend,
	snapshots domain.SnapshotProvider,
	cache domain.CacheRepository,
	config SearchServiceConfig,
	logger zerolog.Logger,
) *SearchService {
	probeTimeout := config.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}

	return &SearchService{
		backend:      backend,
		snapshots:    snapshots,
		cache:        cache,
		engine:       NewEngine(),
		probeTimeout: probeTimeout,
		cacheTTL:     config.CacheTTL,
		logger:       logger.With().Str("component", "search").Logger(),
	}
}

// Search executes query.
// Flow: probe backend -> cache -> backend search -> cache; any backend failure
// re-runs the same query on the snapshot. Cancellation of ctx is returned as is.
func (s *SearchService) Search(ctx context.Context, query *domain.Query) (*domain.SearchResult, error) {
	start := time.Now()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	q := *query
	if q.Sort == "" {
		q.Sort = domain.SortNone
	}

	var fallbackDetail string
	if s.backend != nil {
		result, err := s.searchBackend(ctx, &q)
		if err == nil {
			return s.finish(result, &q, true, start), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, domain.ErrBackendFailure) {
			fallbackDetail = err.Error()
		}
		s.logger.Warn().Err(err).Str("query", q.CacheKey()).Msg("falling back to snapshot")
	}

	var snapshot *domain.Snapshot
	if s.snapshots != nil {
		snapshot = s.snapshots.Current()
	}
	result, err := s.engine.Evaluate(ctx, snapshot, &q)
	if err != nil {
		return nil, err
	}
	result.Error = fallbackDetail
	return s.finish(result, &q, false, start), nil
}

// BackendAlive reports whether a primary backend is configured and currently answers the probe
func (s *SearchService) BackendAlive(ctx context.Context) bool {
	if s.backend == nil {
		return false
	}
	return s.probe(ctx) == nil
}

// Snapshot returns the snapshot the fallback path would use right now
func (s *SearchService) Snapshot() *domain.Snapshot {
	if s.snapshots == nil {
		return nil
	}
	return s.snapshots.Current()
}

func (s *SearchService) searchBackend(ctx context.Context, q *domain.Query) (*domain.SearchResult, error) {
	if err := s.probe(ctx); err != nil {
		return nil, err
	}

	key := q.CacheKey()
	if cached, err := s.getFromCache(ctx, key); err == nil {
		s.logger.Debug().Str("key", key).Msg("cache hit")
		return cached, nil
	}

	result, err := s.backend.Search(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrBackendFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}

	if err := s.setInCache(ctx, key, result); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return result, nil
}

// probe runs the liveness check under its own timeout so a hung backend only
// delays this request
func (s *SearchService) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	if err := s.backend.Ping(probeCtx); err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	return nil
}

func (s *SearchService) finish(result *domain.SearchResult, q *domain.Query, fromBackend bool, start time.Time) *domain.SearchResult {
	result.Page = q.Page
	result.PerPage = q.PerPage
	result.ES = fromBackend
	if fromBackend {
		result.Backend = domain.BackendElasticsearch
	} else {
		result.Backend = domain.BackendSnapshot
	}
	if result.Hits == nil {
		result.Hits = []domain.Product{}
	}
	result.TookMs = time.Since(start).Milliseconds()
	return result
}

// getFromCache retrieves a backend result from cache
func (s *SearchService) getFromCache(ctx context.Context, key string) (*domain.SearchResult, error) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &result, nil
}

// setInCache stores a backend result in cache. Snapshot results are never cached.
func (s *SearchService) setInCache(ctx context.Context, key string, result *domain.SearchResult) error {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
