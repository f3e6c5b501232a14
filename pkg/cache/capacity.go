// Package cache keeps capacity snapshots in Redis so repeated scheduling
// calls do not re-expand every work-center calendar.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// SnapshotKey is the Redis key holding the capacity snapshot
const SnapshotKey = "scheduler:capacity:snapshot"

// NewRedisClient parses redisURL and verifies connectivity
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// CapacityCache wraps a capacity.Provider with a Redis-backed snapshot.
//
// A Redis failure is logged and the wrapped provider is used directly; a
// failure of the wrapped provider is always returned, never masked with a
// stale snapshot.
type CapacityCache struct {
	client   *redis.Client
	provider capacity.Provider
	ttl      time.Duration
	logger   *zap.Logger
}

var (
	_ capacity.Provider    = (*CapacityCache)(nil)
	_ capacity.Invalidator = (*CapacityCache)(nil)
)

// NewCapacityCache creates a CapacityCache
func NewCapacityCache(client *redis.Client, provider capacity.Provider, ttl time.Duration, logger *zap.Logger) *CapacityCache {
	return &CapacityCache{
		client:   client,
		provider: provider,
		ttl:      ttl,
		logger:   logger,
	}
}

// GetCapacity returns the cached snapshot, refreshing it on a miss
func (c *CapacityCache) GetCapacity(ctx context.Context) ([]model.WorkCenterCapacity, error) {
	data, err := c.client.Get(ctx, SnapshotKey).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.logger.Debug("Capacity cache miss")
		return c.Refresh(ctx)
	case err != nil:
		c.logger.Warn("Capacity cache read failed, using provider directly", zap.Error(err))
		return c.provider.GetCapacity(ctx)
	}

	var snapshot []model.WorkCenterCapacity
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.logger.Warn("Discarding unreadable capacity snapshot", zap.Error(err))
		return c.Refresh(ctx)
	}

	c.logger.Debug("Capacity cache hit", zap.Int("work_centers", len(snapshot)))
	return snapshot, nil
}

// Refresh rebuilds the snapshot from the wrapped provider and stores it
func (c *CapacityCache) Refresh(ctx context.Context) ([]model.WorkCenterCapacity, error) {
	snapshot, err := c.provider.GetCapacity(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode capacity snapshot: %w", err)
	}

	if err := c.client.Set(ctx, SnapshotKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to store capacity snapshot", zap.Error(err))
	}

	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next read rebuilds it
func (c *CapacityCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, SnapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate capacity snapshot: %w", err)
	}
	return nil
}
