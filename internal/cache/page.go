// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides the two-tier full-page HTML cache. L1 is an in-process
// map with a short TTL; L2 is Valkey, shared between instances. Keys are
// public request paths, so the content store's revalidation paths map
// directly onto cache entries.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"folio/internal/metrics"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays in Valkey.
	DefaultPageTTL = 5 * time.Minute

	// DefaultLocalTTL bounds how long another instance's invalidation can
	// go unnoticed by this one.
	DefaultLocalTTL = 30 * time.Second
)

// PageCache manages full-page caching. A nil Valkey client leaves only the
// in-process tier.
//
// Every invalidation bumps a generation counter. A page rendered under an
// older generation may hold stale content, so Fill refuses to store it.
type PageCache struct {
	local   *gocache.Cache
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics

	mu  sync.Mutex // orders local fills against invalidation
	gen atomic.Uint64
}

// NewPageCache creates a page cache. ttl applies to Valkey entries; the
// local tier keeps entries for at most DefaultLocalTTL.
func NewPageCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	localTTL := min(ttl, DefaultLocalTTL)
	pc := &PageCache{
		local:   gocache.New(localTTL, 2*localTTL),
		client:  client,
		ttl:     ttl,
		metrics: m,
	}
	m.PageCacheEntries(pc.local.ItemCount)
	return pc
}

// Generation returns the current invalidation generation. Read it before
// rendering a page and pass it to Fill.
func (pc *PageCache) Generation() uint64 {
	return pc.gen.Load()
}

// Get retrieves a cached page. An L2 hit is copied into L1.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := pc.local.Get(key); ok {
		pc.metrics.CacheLookup("l1", true)
		return v.([]byte), true
	}
	pc.metrics.CacheLookup("l1", false)

	if pc.client == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		pc.metrics.CacheLookup("l2", false)
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	pc.metrics.CacheLookup("l2", true)
	pc.local.SetDefault(key, val)
	slog.Debug("page cache hit", "key", key, "tier", "l2")
	return val, true
}

// Fill stores a page rendered under generation gen in both tiers. It
// reports false, leaving nothing cached, when an invalidation has run
// since gen was read.
func (pc *PageCache) Fill(ctx context.Context, key string, page []byte, gen uint64) bool {
	pc.mu.Lock()
	if pc.gen.Load() != gen {
		pc.mu.Unlock()
		slog.Debug("page cache fill skipped", "key", key, "reason", "invalidated")
		return false
	}
	pc.local.SetDefault(key, page)
	pc.mu.Unlock()

	if pc.client == nil {
		return true
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, page, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
	// An invalidation that ran between the check and the Valkey write may
	// have deleted the key before it was written.
	if pc.gen.Load() != gen {
		pc.local.Delete(key)
		if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
			slog.Warn("page cache invalidate error", "key", key, "error", err)
		}
		return false
	}
	return true
}

// invalidate bumps the generation and runs drop under the fill lock.
func (pc *PageCache) invalidate(drop func()) {
	pc.mu.Lock()
	pc.gen.Add(1)
	drop()
	pc.mu.Unlock()
}

// RevalidatePaths drops the cached pages for the given request paths.
func (pc *PageCache) RevalidatePaths(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	keys := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	pc.invalidate(func() {
		for _, p := range paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			pc.local.Delete(p)
			keys = append(keys, pageKeyPrefix+p)
		}
	})

	if pc.client != nil {
		if err := pc.client.Del(ctx, keys...).Err(); err != nil {
			slog.Warn("page cache invalidate error", "paths", len(keys), "error", err)
		}
	}
	slog.Debug("page cache invalidated", "paths", keys)
}

// RevalidateAll removes every cached page. Valkey keys are found by
// scanning for the prefix.
func (pc *PageCache) RevalidateAll(ctx context.Context) {
	pc.invalidate(pc.local.Flush)
	if pc.client == nil {
		slog.Info("page cache fully cleared")
		return
	}

	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	slog.Info("page cache fully cleared", "deleted", deleted)
}
