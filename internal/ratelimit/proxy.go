package ratelimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/config"
	"github.com/Eras256/FlowFi/internal/logger"
)

// Upstream provider names
const (
	ProviderGemini    = "gemini"
	ProviderPinata    = "pinata"
	ProviderCSPRCloud = "csprcloud"
)

const redisRecheckInterval = 30 * time.Second

// RequestFunc performs the actual upstream request
type RequestFunc func(ctx context.Context) (interface{}, error)

type requestResult struct {
	value interface{}
	err   error
}

// Proxy throttles outbound requests per upstream provider
//
//go:generate mockgen -source=proxy.go -destination=../mocks/ratelimit_proxy.go -package=mocks -mock_names=Proxy=MockRateLimitProxy
type Proxy interface {
	// Request runs fn once a token for the provider is available
	Request(ctx context.Context, providerName string, fn RequestFunc) (interface{}, error)

	// Close waits for in-flight requests and stops the worker pool
	Close() error
}

type proxy struct {
	config    config.RateLimiterConfig
	pool      pond.ResultPool[*requestResult]
	limiters  map[string]*providerLimiter
	redis     adapter.RedisClient
	clock     adapter.Clock
	closed    atomic.Bool
	closeOnce sync.Once

	redisAvailable atomic.Bool
	mu             sync.Mutex
	lastRedisCheck time.Time
}

type providerLimiter struct {
	name               string
	config             config.RateLimitConfig
	distributedLimiter adapter.RedisRateLimiter
	localLimiter       *rate.Limiter
}

// NewProxy creates a rate-limiting proxy. With a nil Redis client every provider is limited
// in-process only; with Redis the limit is shared across api and cli instances.
func NewProxy(cfg config.RateLimiterConfig, rc adapter.RedisClient, clock adapter.Clock) (Proxy, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	p := &proxy{
		config:   cfg,
		limiters: make(map[string]*providerLimiter),
		redis:    rc,
		clock:    clock,
	}

	var distributed adapter.RedisRateLimiter
	if rc != nil {
		distributed = rc.NewRateLimiter()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting locally", zap.Error(err))
		}
		p.redisAvailable.Store(err == nil)
		p.lastRedisCheck = clock.Now()
	}

	for name, providerConfig := range cfg.Providers {
		p.limiters[name] = &providerLimiter{
			name:               name,
			config:             providerConfig,
			distributedLimiter: distributed,
			localLimiter:       rate.NewLimiter(rate.Limit(providerConfig.RequestsPerSecond), providerConfig.Burst),
		}
	}

	p.pool = pond.NewResultPool[*requestResult](cfg.MaxWorkers, pond.WithQueueSize(cfg.MaxQueueSize))

	logger.Info("Rate limit proxy initialized",
		zap.Int("max_workers", cfg.MaxWorkers),
		zap.Int("providers", len(cfg.Providers)),
		zap.Bool("distributed", p.redisAvailable.Load()),
	)

	return p, nil
}

// Request runs fn through the proxy and returns its typed result.
// A nil proxy runs fn directly.
func Request[T any](ctx context.Context, p Proxy, providerName string, fn func(ctx context.Context) (T, error)) (T, error) {
	if p == nil {
		return fn(ctx)
	}

	var zero T
	result, err := p.Request(ctx, providerName, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

func (p *proxy) Request(ctx context.Context, providerName string, fn RequestFunc) (interface{}, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("proxy is closed")
	}

	limiter, ok := p.limiters[providerName]
	if !ok {
		// Unconfigured providers are not throttled
		return fn(ctx)
	}

	queueCtx, cancel := context.WithTimeout(ctx, limiter.config.MaxQueueTime)
	defer cancel()

	task := p.pool.Submit(func() *requestResult {
		if err := p.acquireToken(queueCtx, limiter); err != nil {
			return &requestResult{err: fmt.Errorf("rate limit wait for %s: %w", providerName, err)}
		}
		// The request itself runs on the caller's context, not the queue deadline
		value, err := fn(ctx)
		return &requestResult{value: value, err: err}
	})

	result, err := task.Wait()
	if err != nil {
		return nil, err
	}
	return result.value, result.err
}

func (p *proxy) acquireToken(ctx context.Context, limiter *providerLimiter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !p.useRedis(ctx) || limiter.distributedLimiter == nil {
			return limiter.localLimiter.Wait(ctx)
		}

		key := p.config.RedisKeyPrefix + limiter.name
		res, err := limiter.distributedLimiter.Allow(ctx, key, redis_rate.PerSecond(limiter.config.RequestsPerSecond))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("Redis rate limiter error, falling back to local",
				zap.String("provider", limiter.name),
				zap.Error(err),
			)
			p.redisAvailable.Store(false)
			continue
		}

		if res.Allowed > 0 {
			return nil
		}

		// spread retries over 50-150% of the advertised wait
		jitter := time.Duration(float64(res.RetryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("provider", limiter.name),
			zap.Duration("retry_after", jitter),
		)
		if err := p.clock.Wait(ctx, jitter); err != nil {
			return err
		}
	}
}

// useRedis reports whether the distributed limiter should be used, re-probing an
// unavailable Redis at most every redisRecheckInterval
func (p *proxy) useRedis(ctx context.Context) bool {
	if p.redis == nil {
		return false
	}
	if p.redisAvailable.Load() {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clock.Since(p.lastRedisCheck) < redisRecheckInterval {
		return false
	}
	p.lastRedisCheck = p.clock.Now()

	if err := p.redis.Ping(ctx); err != nil {
		return false
	}
	logger.Info("Redis connection restored")
	p.redisAvailable.Store(true)
	return true
}

func (p *proxy) Close() error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.pool.StopAndWait()
		logger.Info("Rate limit proxy shutdown complete")
	})
	return nil
}

func validateConfig(cfg *config.RateLimiterConfig) error {
	for name, provider := range cfg.Providers {
		if provider.RequestsPerSecond <= 0 {
			return fmt.Errorf("provider %s: requests_per_second must be positive", name)
		}
		if provider.Burst <= 0 {
			provider.Burst = provider.RequestsPerSecond
		}
		if provider.MaxQueueTime <= 0 {
			provider.MaxQueueTime = time.Minute
		}
		cfg.Providers[name] = provider
	}

	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "flowfi:limiter:"
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 16
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 1024
	}

	return nil
}
