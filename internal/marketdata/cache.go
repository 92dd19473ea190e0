package marketdata

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Eras256/FlowFi/internal/adapter"
)

const (
	DEFAULT_CACHE_TTL    = 60 * time.Second
	DEFAULT_CACHE_PREFIX = "flowfi:market:"
	memoryCacheSize      = 256
)

// Cache keeps upstream responses for a fixed time
//
//go:generate mockgen -source=cache.go -destination=../mocks/marketdata_cache.go -package=mocks -mock_names=Cache=MockMarketCache
type Cache interface {
	// Get returns the cached body, or false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the body until the cache TTL elapses
	Set(ctx context.Context, key string, value []byte) error
}

type redisCache struct {
	client adapter.RedisClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache shared by every API instance
func NewRedisCache(client adapter.RedisClient, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = DEFAULT_CACHE_TTL
	}
	return &redisCache{client: client, prefix: DEFAULT_CACHE_PREFIX, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.prefix+key)
	if errors.Is(err, adapter.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.prefix+key, value, c.ttl)
}

type memoryCache struct {
	entries *lru.LRU[string, []byte]
}

// NewMemoryCache creates an in-process cache used when Redis is not configured
func NewMemoryCache(ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = DEFAULT_CACHE_TTL
	}
	return &memoryCache{entries: lru.NewLRU[string, []byte](memoryCacheSize, nil, ttl)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries.Get(key)
	return value, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.entries.Add(key, value)
	return nil
}
