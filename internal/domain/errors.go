package domain

import "errors"

var (
	// ErrInvalidRequest is returned when query parameters are out of range
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrBackendUnavailable is returned when the search backend liveness probe fails
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrBackendFailure is returned when a search backend request fails
	ErrBackendFailure = errors.New("search backend request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrSnapshotDecode is returned when a snapshot file exists but cannot be decoded
	ErrSnapshotDecode = errors.New("snapshot decode failed")
)
