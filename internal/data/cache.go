package data

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"blotto-backtest/internal/model"
)

// CacheEntry is a loaded pool plus what it was loaded from.
type CacheEntry struct {
	Pool      *model.Pool
	Stats     LoadStats
	ModTime   time.Time
	ExpiresAt time.Time
}

// PoolCache keeps loaded pools in memory for the API server. Local files
// are reloaded when their modification time changes; remote pools expire
// after the TTL.
type PoolCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	load  func(ctx context.Context, location, format string, opts LoadOptions) (*model.Pool, LoadStats, error)
}

func NewPoolCache(ttl time.Duration) *PoolCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PoolCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		load:  LoadPool,
	}
}

// Get returns the pool at location, loading it on a miss.
func (c *PoolCache) Get(ctx context.Context, location, format string, opts LoadOptions) (*model.Pool, LoadStats, error) {
	key := cacheKey(location, format, opts)
	modTime := statModTime(location)

	c.mu.RLock()
	entry, exists := c.store[key]
	c.mu.RUnlock()
	if exists && time.Now().Before(entry.ExpiresAt) && entry.ModTime.Equal(modTime) {
		return entry.Pool, entry.Stats, nil
	}

	pool, stats, err := c.load(ctx, location, format, opts)
	if err != nil {
		return nil, stats, err
	}
	log.Info().Str("pool", location).Int("kept", stats.Kept).Int("rows", stats.Rows).Msg("pool cached")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = &CacheEntry{
		Pool:      pool,
		Stats:     stats,
		ModTime:   modTime,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	return pool, stats, nil
}

// Clear removes all entries from the cache
func (c *PoolCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*CacheEntry)
}

func (c *PoolCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func cacheKey(location, format string, opts LoadOptions) string {
	return fmt.Sprintf("%s|%s|%d|%d|%v", location, format, opts.Total, opts.Battlefields, opts.Header)
}

func statModTime(location string) time.Time {
	info, err := os.Stat(location)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
