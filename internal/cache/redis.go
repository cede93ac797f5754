// Package cache stores ATS results in Redis. Analysis is deterministic, so a
// hit is indistinguishable from a fresh analysis of the same text.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abdellahzou/HiResume/internal/types"
)

// Config holds the Redis connection settings
type Config struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// DefaultTTL is used when Config.TTL is zero.
const DefaultTTL = 24 * time.Hour

// ResultCache implements ats.Cache on a Redis client
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and pings it.
func New(ctx context.Context, cfg Config) (*ResultCache, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewWithClient(client, cfg.TTL), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached result for key, if any.
func (c *ResultCache) Get(ctx context.Context, key string) (types.AtsResult, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.AtsResult{}, false, nil
	}
	if err != nil {
		return types.AtsResult{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var r types.AtsResult
	if err := json.Unmarshal(data, &r); err != nil {
		// drop entries written by an incompatible version
		_ = c.client.Del(ctx, key).Err()
		return types.AtsResult{}, false, nil
	}
	return r, true, nil
}

// Set stores r under key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, r types.AtsResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal ats result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (c *ResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the client.
func (c *ResultCache) Close() error {
	return c.client.Close()
}
