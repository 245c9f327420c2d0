// Package cachemanager provides a small caching layer for derived report
// data. Reports are pure functions of their input, so callers memoize by
// input key and flush whenever the underlying entries change.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the storage-agnostic caching interface.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
