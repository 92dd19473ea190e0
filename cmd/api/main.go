package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/analyzer"
	"github.com/Eras256/FlowFi/internal/api/middleware"
	"github.com/Eras256/FlowFi/internal/api/rest"
	"github.com/Eras256/FlowFi/internal/api/server"
	"github.com/Eras256/FlowFi/internal/api/shared/executor"
	"github.com/Eras256/FlowFi/internal/config"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/marketdata"
	"github.com/Eras256/FlowFi/internal/messaging"
	"github.com/Eras256/FlowFi/internal/mirror"
	casperrpc "github.com/Eras256/FlowFi/internal/providers/casper"
	"github.com/Eras256/FlowFi/internal/providers/csprcloud"
	"github.com/Eras256/FlowFi/internal/providers/gemini"
	"github.com/Eras256/FlowFi/internal/providers/jetstream"
	"github.com/Eras256/FlowFi/internal/ratelimit"
	"github.com/Eras256/FlowFi/internal/records"
	"github.com/Eras256/FlowFi/internal/store"
	"github.com/Eras256/FlowFi/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         rest.SERVICE_NAME,
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": rest.SERVICE_NAME,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting FlowFi API")

	health := make(map[string]rest.HealthCheck)
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.HTTPTimeout)

	// Remote invoice store is optional; without it the mirror is the only record
	var remote store.Store
	if cfg.Database.Enabled() {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)
		remote = store.NewPGStore(db)
		health["database"] = remote.Ping
	} else {
		logger.WarnCtx(ctx, "Database not configured, invoices are kept in the local mirror only")
	}

	var redisClient adapter.RedisClient
	if cfg.Redis.Enabled() {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() { _ = redisClient.Close() }()
		health["redis"] = redisClient.Ping
	}

	var publisher messaging.Publisher = messaging.NewNoopPublisher()
	if cfg.NATS.Enabled() {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	}
	defer publisher.Close()

	proxy, err := ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limit proxy", zap.Error(err))
	}
	defer func() { _ = proxy.Close() }()

	// Upstream providers
	geminiClient := gemini.NewClient(httpClient, proxy, cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Models)
	if cfg.Gemini.APIKey == "" {
		logger.WarnCtx(ctx, "Gemini API key not configured, every analysis uses the native assessment")
	}
	rpcClient := casperrpc.NewClient(httpClient, cfg.RPCEndpoints(), cfg.CSPRCloud.NodeURL, cfg.CSPRCloud.AccessToken)
	cloudClient := csprcloud.NewClient(httpClient, proxy, cfg.CSPRCloud.APIURL, cfg.CSPRCloud.AccessToken)

	d, err := deployer.New(deployer.Config{
		ChainName:       cfg.Casper.ChainName,
		ContractHash:    cfg.Casper.ContractHash,
		RegisterPayment: cfg.Casper.RegisterPayment,
		MintPayment:     cfg.Casper.MintPayment,
		TransferPayment: cfg.Casper.TransferPayment,
		GasPrice:        cfg.Casper.GasPrice,
		TTL:             cfg.Casper.DeployTTL,
	}, rpcClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create deployer", zap.Error(err))
	}

	// Market data cache is shared through Redis when available
	var cache marketdata.Cache
	if redisClient != nil {
		cache = marketdata.NewRedisCache(redisClient, cfg.CSPRCloud.CacheTTL)
	} else {
		cache = marketdata.NewMemoryCache(cfg.CSPRCloud.CacheTTL)
	}
	market := marketdata.NewService(cloudClient, cache, clock)
	defer market.Close()

	var stream csprcloud.Stream
	if cfg.CSPRCloud.AccessToken != "" && cfg.CSPRCloud.StreamURL != "" {
		stream = csprcloud.NewStream(adapter.NewWebSocketDialer(cfg.HTTPTimeout), cfg.CSPRCloud.StreamURL, cfg.CSPRCloud.AccessToken)
		if err := stream.Start(ctx); err != nil {
			logger.WarnCtx(ctx, "CSPR.cloud stream unavailable, streaming disabled", zap.Error(err))
			stream = nil
		} else {
			defer func() { _ = stream.Close() }()
		}
	}

	recordStore := records.NewStore(remote, newMirror(cfg, redisClient), publisher, clock)

	exec := executor.NewExecutor(executor.Deps{
		Analyzer:   analyzer.NewService(geminiClient),
		RPC:        rpcClient,
		Deployer:   d,
		MarketData: market,
		Stream:     stream,
		Records:    recordStore,
		Resolver: uri.NewResolver(&uri.Config{
			IPFSGateways: cfg.URI.IPFSGateways,
			ExplorerURL:  cfg.Casper.ExplorerURL,
		}),
	})

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}
	srv := server.New(serverConfig, exec, health)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("message", "Server forced to shutdown"))
	}

	logger.Info("API server stopped")
}

func newMirror(cfg *config.APIConfig, redisClient adapter.RedisClient) mirror.Mirror {
	if cfg.Mirror.Backend == mirror.BackendRedis {
		if redisClient == nil {
			logger.Fatal("Mirror backend is redis but Redis is not configured")
		}
		return mirror.New(mirror.NewRedisBackend(redisClient, domain.MIRROR_KEY))
	}
	return mirror.New(mirror.NewFileBackend(adapter.NewFileSystem(), cfg.Mirror.Path))
}
