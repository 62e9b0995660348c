// Package service provides the process-wide settings cache.
package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/allisson/crm/internal/metrics"
	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

// Cache statuses recorded under domain "settings", operation "cache_get".
const (
	StatusHit      = "hit"
	StatusMiss     = "miss"
	StatusFallback = "fallback"
)

// SettingFetcher loads a batch of settings. Keys without a row are omitted from the result.
type SettingFetcher interface {
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
}

// entry is one cached key. found is false when the store had no row for the key.
type entry struct {
	value     string
	found     bool
	fetchedAt time.Time
}

// Cache serves settings from a ttlcache for up to ttl.
//
// Stale and missing keys are fetched in one GetMany call and stored with the same fetch time.
// Concurrent stale readers may each fetch; the last Set wins. Fetch failures fall back to the
// fixed defaults and are never returned to the caller.
type Cache struct {
	fetcher SettingFetcher
	ttl     time.Duration
	metrics metrics.BusinessMetrics
	logger  *slog.Logger
	now     func() time.Time
	items   *ttlcache.Cache[string, entry]
	// generation is bumped by Invalidate. A fetch that started under an older generation is
	// returned to its caller but not stored, so it cannot outlive an admin update.
	generation atomic.Uint64
}

// NewCache creates an empty Cache.
func NewCache(
	fetcher SettingFetcher,
	ttl time.Duration,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		metrics: businessMetrics,
		logger:  logger,
		now:     time.Now,
		items: ttlcache.New(
			ttlcache.WithTTL[string, entry](ttl),
			ttlcache.WithDisableTouchOnHit[string, entry](),
		),
	}
}

// Get returns the value of every requested key that has a stored value or a default.
func (c *Cache) Get(ctx context.Context, keys []string) map[string]string {
	now := c.now()
	result := make(map[string]string, len(keys))

	var stale []string
	for _, key := range keys {
		e, ok := c.fresh(key, now)
		if !ok {
			stale = append(stale, key)
			continue
		}
		resolve(result, key, e.value, e.found)
	}

	if len(stale) == 0 {
		c.metrics.RecordOperation(ctx, "settings", "cache_get", StatusHit)
		return result
	}

	generation := c.generation.Load()
	fetched, err := c.fetcher.GetMany(ctx, stale)
	if err != nil {
		c.logger.Error("failed to fetch settings, serving defaults",
			slog.Any("keys", stale),
			slog.Any("error", err))
		c.metrics.RecordOperation(ctx, "settings", "cache_get", StatusFallback)
		for _, key := range stale {
			resolve(result, key, "", false)
		}
		return result
	}

	for _, key := range stale {
		v, found := fetched[key]
		c.items.Set(key, entry{value: v, found: found, fetchedAt: now}, ttlcache.DefaultTTL)
	}
	// Checked after Set so an Invalidate landing between the check and the Set still wins.
	if c.generation.Load() != generation {
		for _, key := range stale {
			c.items.Delete(key)
		}
	}
	c.metrics.RecordOperation(ctx, "settings", "cache_get", StatusMiss)

	for _, key := range stale {
		v, found := fetched[key]
		resolve(result, key, v, found)
	}
	return result
}

// Invalidate drops the given keys, or every key when none are given.
func (c *Cache) Invalidate(keys ...string) {
	c.generation.Add(1)

	if len(keys) == 0 {
		c.items.DeleteAll()
		return
	}
	for _, key := range keys {
		c.items.Delete(key)
	}
}

// fresh returns the cached entry for key when it has not reached ttl at now.
func (c *Cache) fresh(key string, now time.Time) (entry, bool) {
	item := c.items.Get(key)
	if item == nil {
		return entry{}, false
	}
	e := item.Value()
	if now.Sub(e.fetchedAt) >= c.ttl {
		return entry{}, false
	}
	return e, true
}

func resolve(result map[string]string, key, value string, found bool) {
	if found {
		result[key] = value
		return
	}
	if v, ok := settingsDomain.Default(key); ok {
		result[key] = v
	}
}
