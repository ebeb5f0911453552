package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

const keyPrefix = "carrierd:name:"

// Cache implements the CacheRepository interface on top of Redis. Mappings
// are stored as JSON under a lowercased key so lookups stay case-insensitive.
type Cache struct {
	client *redis.Client
}

// New creates a Redis-backed cache from the given configuration
func New(cfg *ports.RedisConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client}
}

// NewWithClient wraps an existing Redis client
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Ping verifies the Redis connection
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get retrieves a mapping from cache
func (c *Cache) Get(ctx context.Context, originalName string) (*models.CarrierNameMapping, error) {
	data, err := c.client.Get(ctx, cacheKey(originalName)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrMappingNotFound
		}
		return nil, fmt.Errorf("failed to get cached mapping: %w", err)
	}

	var mapping models.CarrierNameMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to decode cached mapping: %w", err)
	}

	return &mapping, nil
}

// Set stores a mapping in cache
func (c *Cache) Set(ctx context.Context, originalName string, mapping *models.CarrierNameMapping, ttlSeconds int) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if err := c.client.Set(ctx, cacheKey(originalName), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache mapping: %w", err)
	}

	return nil
}

// Delete removes a mapping from cache
func (c *Cache) Delete(ctx context.Context, originalName string) error {
	if err := c.client.Del(ctx, cacheKey(originalName)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached mapping: %w", err)
	}
	return nil
}

func cacheKey(originalName string) string {
	return keyPrefix + strings.ToLower(originalName)
}

var _ ports.CacheRepository = (*Cache)(nil)
