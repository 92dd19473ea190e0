package marketdata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/providers/csprcloud"
)

// Dashboard endpoints fetched together
const (
	ENDPOINT_OVERVIEW     = "market/overview"
	ENDPOINT_TOKENS       = "market/tokens"
	ENDPOINT_POOLS        = "dex/pools"
	ENDPOINT_TRANSACTIONS = "transactions/recent?limit=20"

	dashboardWorkers = 4
)

// Source tells where a response body came from
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Result is a market data response body
type Result struct {
	Endpoint string          `json:"endpoint"`
	Source   Source          `json:"source"`
	Data     json.RawMessage `json:"data"`
}

// Dashboard is the combined analytics view
type Dashboard struct {
	Overview     json.RawMessage `json:"overview"`
	Tokens       json.RawMessage `json:"tokens"`
	Pools        json.RawMessage `json:"pools"`
	Transactions json.RawMessage `json:"transactions"`
	FetchedAt    time.Time       `json:"fetched_at"`
}

// Service proxies CSPR.cloud market data with caching and static fallbacks
//
//go:generate mockgen -source=service.go -destination=../mocks/marketdata_service.go -package=mocks -mock_names=Service=MockMarketData
type Service interface {
	// Get returns the body for an API path. Upstream failures are answered with the
	// fallback body; only an invalid endpoint is an error.
	Get(ctx context.Context, endpoint string) (*Result, error)

	// Dashboard fetches the overview, tokens, pools and recent transactions concurrently
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Close stops the dashboard worker pool
	Close()
}

type service struct {
	client csprcloud.Client
	cache  Cache
	clock  adapter.Clock
	pool   pond.ResultPool[*Result]
}

// NewService creates a market data service. A nil cache disables caching.
func NewService(client csprcloud.Client, cache Cache, clock adapter.Clock) Service {
	return &service{
		client: client,
		cache:  cache,
		clock:  clock,
		pool:   pond.NewResultPool[*Result](dashboardWorkers),
	}
}

func (s *service) Get(ctx context.Context, endpoint string) (*Result, error) {
	if endpoint == "" {
		endpoint = ENDPOINT_OVERVIEW
	}
	path, err := csprcloud.NormalizeEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, path)
		if err != nil {
			logger.WarnCtx(ctx, "Market data cache read failed", zap.String("endpoint", path), zap.Error(err))
		} else if ok {
			return &Result{Endpoint: path, Source: SourceCache, Data: cached}, nil
		}
	}

	body, err := s.client.Get(ctx, path)
	if err != nil || !json.Valid(body) {
		logger.WarnCtx(ctx, "Market data unavailable, using fallback data",
			zap.String("endpoint", path),
			zap.Error(err),
		)
		return &Result{Endpoint: path, Source: SourceFallback, Data: Fallback(path)}, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, path, body); err != nil {
			logger.WarnCtx(ctx, "Market data cache write failed", zap.String("endpoint", path), zap.Error(err))
		}
	}

	return &Result{Endpoint: path, Source: SourceLive, Data: body}, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	endpoints := []string{ENDPOINT_OVERVIEW, ENDPOINT_TOKENS, ENDPOINT_POOLS, ENDPOINT_TRANSACTIONS}

	group := s.pool.NewGroup()
	for _, endpoint := range endpoints {
		group.Submit(func() *Result {
			result, err := s.Get(ctx, endpoint)
			if err != nil {
				return &Result{Endpoint: endpoint, Source: SourceFallback, Data: Fallback(endpoint)}
			}
			return result
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview:     results[0].Data,
		Tokens:       results[1].Data,
		Pools:        results[2].Data,
		Transactions: results[3].Data,
		FetchedAt:    s.clock.Now().UTC(),
	}, nil
}

func (s *service) Close() {
	s.pool.StopAndWait()
}
