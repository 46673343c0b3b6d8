package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract the application needs for parking
// generated artifacts (today: CSV lead reports awaiting download).
// Implementations must be concurrency-safe and context-aware so callers can
// bound every round trip.
//
// Values are plain strings to keep the port free of serialization concerns;
// callers encode before storing.
type Cache interface {
	// Get fetches the value for key. A missing key is reported as ErrMiss so
	// callers can tell "not there yet" apart from transport failures.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration (persist until evicted).
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Ping verifies connectivity with the cache backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way, so callers can differentiate
// misses from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
