// Package cache owns the ticket snapshot between requests: a read-through
// cache with explicit manual invalidation and no TTL. The triage core never
// sees this cache, only the plain snapshots it hands out.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

const snapshotKey = "ticket-triage:snapshot"

// Fetcher supplies a fresh snapshot from the upstream helpdesk.
type Fetcher interface {
	FetchAll(ctx context.Context) (domain.Snapshot, error)
}

// SnapshotCache serves the current snapshot, fetching on miss. A Redis
// backing store lets a restarted instance reuse the last snapshot; with no
// Redis (or an unreachable one) the cache is memory-only.
type SnapshotCache struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot

	fetcher Fetcher
	redis   *redis.Client
	logger  *zap.Logger
}

// NewSnapshotCache builds the cache. redisClient may be nil.
func NewSnapshotCache(fetcher Fetcher, redisClient *redis.Client, logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{fetcher: fetcher, redis: redisClient, logger: logger}
}

// GetOrFetch returns the cached snapshot, loading it from Redis or the
// upstream API on miss. The returned snapshot is owned by the caller for the
// duration of its invocation and must be treated as immutable.
func (c *SnapshotCache) GetOrFetch(ctx context.Context) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return *c.snapshot, nil
	}

	if snap, ok := c.loadFromRedis(ctx); ok {
		c.snapshot = &snap
		return snap, nil
	}

	snap, err := c.fetcher.FetchAll(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	c.snapshot = &snap
	c.storeToRedis(ctx, snap)
	return snap, nil
}

// Invalidate drops the cached snapshot so the next GetOrFetch refetches.
func (c *SnapshotCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	if c.redis != nil {
		if err := c.redis.Del(ctx, snapshotKey).Err(); err != nil {
			c.logger.Warn("failed to drop cached snapshot from redis", zap.Error(err))
		}
	}
}

// Ping verifies the Redis backing store, when configured.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	if c.redis == nil {
		return errors.New("redis client not configured")
	}
	return c.redis.Ping(ctx).Err()
}

func (c *SnapshotCache) loadFromRedis(ctx context.Context) (domain.Snapshot, bool) {
	if c.redis == nil {
		return domain.Snapshot{}, false
	}
	data, err := c.redis.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read snapshot from redis", zap.Error(err))
		}
		return domain.Snapshot{}, false
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Warn("discarding undecodable snapshot from redis", zap.Error(err))
		return domain.Snapshot{}, false
	}
	return snap, true
}

func (c *SnapshotCache) storeToRedis(ctx context.Context, snap domain.Snapshot) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("failed to encode snapshot for redis", zap.Error(err))
		return
	}
	// No TTL: invalidation is manual via the refresh endpoint.
	if err := c.redis.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		c.logger.Warn("failed to store snapshot in redis", zap.Error(err))
	}
}
