package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCache(skip bool) (*ReadThroughCache[string, int, int], *int) {
	calls := 0
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, int, int](cache, func(ctx context.Context, input int) (int, error) {
		calls++
		if input < 0 {
			return 0, errors.New("negative input")
		}
		return input * 2, nil
	}, skip)
	return rtc, &calls
}

func TestReadThroughCache_ComputesOnMiss(t *testing.T) {
	rtc, calls := newTestCache(false)

	v, err := rtc.Get(context.Background(), "k", 21, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 1, *calls)
}

func TestReadThroughCache_ServesFromCache(t *testing.T) {
	rtc, calls := newTestCache(false)
	ctx := context.Background()

	_, err := rtc.Get(ctx, "k", 21, time.Minute)
	require.NoError(t, err)
	v, err := rtc.Get(ctx, "k", 99, time.Minute) // input ignored on hit
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 1, *calls)
}

func TestReadThroughCache_SkipBypassesCache(t *testing.T) {
	rtc, calls := newTestCache(true)
	ctx := context.Background()

	_, err := rtc.Get(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	_, err = rtc.Get(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, *calls)
}

func TestReadThroughCache_ErrorNotCached(t *testing.T) {
	rtc, calls := newTestCache(false)
	ctx := context.Background()

	_, err := rtc.Get(ctx, "k", -1, time.Minute)
	require.Error(t, err)
	_, err = rtc.Get(ctx, "k", -1, time.Minute)
	require.Error(t, err)
	require.Equal(t, 2, *calls)
}

func TestReadThroughCache_FlushForcesRecompute(t *testing.T) {
	rtc, calls := newTestCache(false)
	ctx := context.Background()

	_, err := rtc.Get(ctx, "k", 21, time.Minute)
	require.NoError(t, err)
	require.NoError(t, rtc.Flush(ctx))
	_, err = rtc.Get(ctx, "k", 21, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, *calls)
}

func TestInMemoryCacheManager_DeleteAndExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", 20*time.Millisecond, time.Minute)

	cache.Set(ctx, "a", "v", 0) // default ttl
	v, ok := cache.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "v", v)

	require.NoError(t, cache.Delete(ctx, "a", "missing"))
	_, ok = cache.Get(ctx, "a")
	require.False(t, ok)

	cache.Set(ctx, "b", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	_, ok = cache.Get(ctx, "b")
	require.False(t, ok, "entry should have expired")
}
