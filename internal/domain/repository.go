package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SearchBackend is the primary full-text search engine
type SearchBackend interface {
	// Ping is the liveness probe; it must honor the context deadline
	Ping(ctx context.Context) error
	Search(ctx context.Context, query *Query) (*SearchResult, error)
}

// SnapshotProvider hands out the current immutable snapshot
type SnapshotProvider interface {
	Current() *Snapshot
}
