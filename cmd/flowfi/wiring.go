package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/analyzer"
	"github.com/Eras256/FlowFi/internal/casper"
	"github.com/Eras256/FlowFi/internal/config"
	"github.com/Eras256/FlowFi/internal/deployer"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/messaging"
	"github.com/Eras256/FlowFi/internal/mirror"
	casperrpc "github.com/Eras256/FlowFi/internal/providers/casper"
	"github.com/Eras256/FlowFi/internal/providers/gemini"
	"github.com/Eras256/FlowFi/internal/providers/jetstream"
	"github.com/Eras256/FlowFi/internal/providers/pinata"
	"github.com/Eras256/FlowFi/internal/ratelimit"
	"github.com/Eras256/FlowFi/internal/records"
	"github.com/Eras256/FlowFi/internal/store"
	"github.com/Eras256/FlowFi/internal/workflow"
)

// app holds the collaborators shared by every command
type app struct {
	cfg      *config.CLIConfig
	clock    adapter.Clock
	analyzer analyzer.Analyzer
	uploader pinata.Client
	rpc      casperrpc.Client
	deployer deployer.Deployer
	wallet   deployer.Wallet
	records  records.Store
	closers  []func()
}

func newApp(ctx context.Context, cfg *config.CLIConfig, apiURL string) (*app, error) {
	a := &app{cfg: cfg, clock: adapter.NewClock()}
	httpClient := adapter.NewHTTPClient(cfg.HTTPTimeout)
	fs := adapter.NewFileSystem()

	var redisClient adapter.RedisClient
	if cfg.Redis.Enabled() {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
	}

	proxy, err := ratelimit.NewProxy(cfg.RateLimiter, redisClient, a.clock)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create rate limit proxy: %w", err)
	}
	a.closers = append(a.closers, func() { _ = proxy.Close() })

	if apiURL != "" {
		a.analyzer = analyzer.NewRemote(httpClient, apiURL)
	} else {
		a.analyzer = analyzer.NewDirect(gemini.NewClient(httpClient, proxy, cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Models))
	}
	a.uploader = pinata.NewClient(httpClient, proxy, a.clock, cfg.Pinata.APIURL, cfg.Pinata.JWT)
	a.rpc = casperrpc.NewClient(httpClient, cfg.RPCEndpoints(), cfg.CSPRCloud.NodeURL, cfg.CSPRCloud.AccessToken)

	a.deployer, err = deployer.New(deployer.Config{
		ChainName:       cfg.Casper.ChainName,
		ContractHash:    cfg.Casper.ContractHash,
		RegisterPayment: cfg.Casper.RegisterPayment,
		MintPayment:     cfg.Casper.MintPayment,
		TransferPayment: cfg.Casper.TransferPayment,
		GasPrice:        cfg.Casper.GasPrice,
		TTL:             cfg.Casper.DeployTTL,
	}, a.rpc, a.clock)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create deployer: %w", err)
	}
	a.wallet = deployer.NewKeyFileWallet(fs, cfg.Wallet.KeyPath)

	var remote store.Store
	if cfg.Database.Enabled() {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to configure connection pool: %w", err)
		}
		remote = store.NewPGStore(db)
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
			// Events are best effort for the CLI
			logger.WarnCtx(ctx, "NATS unavailable, invoice events are not published", zap.Error(err))
			publisher = messaging.NewNoopPublisher()
		}
	}
	a.closers = append(a.closers, publisher.Close)

	var backend mirror.Backend
	if cfg.Mirror.Backend == mirror.BackendRedis && redisClient != nil {
		backend = mirror.NewRedisBackend(redisClient, domain.MIRROR_KEY)
	} else {
		backend = mirror.NewFileBackend(fs, cfg.Mirror.Path)
	}
	a.records = records.NewStore(remote, mirror.New(backend), publisher, a.clock)

	return a, nil
}

func (a *app) minter() *workflow.Minter {
	return workflow.NewMinter(workflow.MintDeps{
		Analyzer:   a.analyzer,
		Uploader:   a.uploader,
		Deployer:   a.deployer,
		Wallet:     a.wallet,
		Records:    a.records,
		Clock:      a.clock,
		JCS:        adapter.NewJCS(),
		SettleWait: a.cfg.Casper.SettleWait,
	})
}

func (a *app) funder() (*workflow.Funder, error) {
	vault, err := casper.ParsePublicKeyHex(a.cfg.Casper.VaultPublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid vault public key: %w", err)
	}
	return workflow.NewFunder(workflow.FundDeps{
		Deployer: a.deployer,
		Wallet:   a.wallet,
		Records:  a.records,
		Clock:    a.clock,
		Vault:    vault,
	}), nil
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
