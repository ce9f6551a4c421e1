package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/catalogsearch/backend/internal/domain"
)

// Config holds Elasticsearch connection settings
type Config struct {
	Addresses      []string
	Index          string
	Username       string
	Password       string
	RequestTimeout time.Duration
	MaxRetries     int
	FacetSize      int
	// RatePerSecond caps outgoing search requests; zero disables the limit
	RatePerSecond float64
	Burst         int
}

// Client handles communication with the Elasticsearch product index
type Client struct {
	es             *elasticsearch.Client
	index          string
	facetSize      int
	requestTimeout time.Duration
	rateLimiter    *rate.Limiter
	logger         zerolog.Logger
}

// NewClient creates a new Elasticsearch client. No request is made until Ping or Search.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.MaxRetries <= 0,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}

	facetSize := cfg.FacetSize
	if facetSize <= 0 {
		facetSize = DefaultFacetSize
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	return &Client{
		es:             es,
		index:          cfg.Index,
		facetSize:      facetSize,
		requestTimeout: requestTimeout,
		rateLimiter:    rate.NewLimiter(limit, burst),
		logger:         logger.With().Str("component", "elasticsearch").Logger(),
	}, nil
}

// Ping is the liveness probe
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, res.StatusCode)
	}
	return nil
}

// Search runs query against the product index
func (c *Client) Search(ctx context.Context, query *domain.Query) (*domain.SearchResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	body, err := json.Marshal(BuildSearchBody(query, c.facetSize))
	if err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	c.logger.Debug().Str("index", c.index).RawJSON("body", body).Msg("search")

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		c.logger.Warn().Int("status", res.StatusCode).Bytes("body", detail).Msg("search rejected")
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrBackendFailure, res.StatusCode, detail)
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrBackendFailure, err)
	}

	result, err := resp.toResult()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}

	c.logger.Debug().Int("total", result.Total).Int("hits", len(result.Hits)).Msg("search done")
	return result, nil
}
