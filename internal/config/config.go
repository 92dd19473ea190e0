package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Eras256/FlowFi/internal/domain"
)

const envPrefix = "FLOWFI"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool          `mapstructure:"debug"`
	SentryDSN   string        `mapstructure:"sentry_dsn"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// URIConfig holds URI resolver configuration
type URIConfig struct {
	IPFSGateways []string `mapstructure:"ipfs_gateways"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int      `mapstructure:"idle_timeout"`  // in seconds
	CORSOrigins  []string `mapstructure:"cors_origins"`  // empty allows every origin
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// CasperConfig holds Casper network and contract configuration
type CasperConfig struct {
	NodeURL             string        `mapstructure:"node_url"`
	FallbackNodeURLs    []string      `mapstructure:"fallback_node_urls"`
	ChainName           string        `mapstructure:"chain_name"`
	ContractHash        string        `mapstructure:"contract_hash"`
	ContractPackageHash string        `mapstructure:"contract_package_hash"`
	ExplorerURL         string        `mapstructure:"explorer_url"`
	VaultPublicKey      string        `mapstructure:"vault_public_key"`
	MintPayment         uint64        `mapstructure:"mint_payment"`
	RegisterPayment     uint64        `mapstructure:"register_payment"`
	TransferPayment     uint64        `mapstructure:"transfer_payment"`
	GasPrice            uint64        `mapstructure:"gas_price"`
	DeployTTL           time.Duration `mapstructure:"deploy_ttl"`
	SettleWait          time.Duration `mapstructure:"settle_wait"`
}

// CSPRCloudConfig holds CSPR.cloud API configuration
type CSPRCloudConfig struct {
	AccessToken string        `mapstructure:"access_token"`
	APIURL      string        `mapstructure:"api_url"`
	NodeURL     string        `mapstructure:"node_url"`
	StreamURL   string        `mapstructure:"stream_url"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// GeminiConfig holds risk scoring model configuration
type GeminiConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	BaseURL string   `mapstructure:"base_url"`
	Models  []string `mapstructure:"models"`
}

// PinataConfig holds IPFS pinning configuration
type PinataConfig struct {
	JWT    string `mapstructure:"jwt"`
	APIURL string `mapstructure:"api_url"`
}

// MirrorConfig holds local invoice mirror configuration
type MirrorConfig struct {
	// Backend is "file" or "redis"
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// WalletConfig holds the CLI signing key location
type WalletConfig struct {
	KeyPath string `mapstructure:"key_path"`
}

// RateLimitConfig holds the limits of one upstream provider
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds the outbound rate limiter configuration
type RateLimiterConfig struct {
	RedisKeyPrefix string                     `mapstructure:"redis_key_prefix"`
	MaxWorkers     int                        `mapstructure:"max_workers"`
	MaxQueueSize   int                        `mapstructure:"max_queue_size"`
	Providers      map[string]RateLimitConfig `mapstructure:"providers"`
}

// APIConfig holds configuration for the api service
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Casper      CasperConfig      `mapstructure:"casper"`
	CSPRCloud   CSPRCloudConfig   `mapstructure:"csprcloud"`
	Gemini      GeminiConfig      `mapstructure:"gemini"`
	Pinata      PinataConfig      `mapstructure:"pinata"`
	Mirror      MirrorConfig      `mapstructure:"mirror"`
	URI         URIConfig         `mapstructure:"uri"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
}

// CLIConfig holds configuration for the flowfi command line tool
type CLIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Casper      CasperConfig      `mapstructure:"casper"`
	CSPRCloud   CSPRCloudConfig   `mapstructure:"csprcloud"`
	Gemini      GeminiConfig      `mapstructure:"gemini"`
	Pinata      PinataConfig      `mapstructure:"pinata"`
	Mirror      MirrorConfig      `mapstructure:"mirror"`
	Wallet      WalletConfig      `mapstructure:"wallet"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
}

// LoadAPIConfig loads configuration for the api service
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("uri.ipfs_gateways", []string{domain.DEFAULT_IPFS_GATEWAY, "https://gateway.pinata.cloud"})
	v.SetDefault("nats.connection_name", "flowfi-api")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadCLIConfig loads configuration for the flowfi command line tool
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("flowfi", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("wallet.key_path", "secret_key.pem")
	v.SetDefault("nats.connection_name", "flowfi-cli")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config CLIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.stream_name", "FLOWFI_INVOICES")
	v.SetDefault("nats.subject_prefix", "invoice")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("casper.node_url", domain.DEFAULT_NODE_URL)
	v.SetDefault("casper.fallback_node_urls", []string{
		domain.DEFAULT_NODE_URL,
		"https://rpc.testnet.casperlabs.io/rpc",
	})
	v.SetDefault("casper.chain_name", domain.DEFAULT_CHAIN_NAME)
	v.SetDefault("casper.contract_hash", domain.DEFAULT_CONTRACT_HASH)
	v.SetDefault("casper.contract_package_hash", domain.DEFAULT_CONTRACT_PACKAGE_HASH)
	v.SetDefault("casper.explorer_url", domain.DEFAULT_EXPLORER_URL)
	v.SetDefault("casper.vault_public_key", domain.DEFAULT_VAULT_PUBLIC_KEY)
	v.SetDefault("casper.mint_payment", domain.DEFAULT_MINT_PAYMENT)
	v.SetDefault("casper.register_payment", domain.DEFAULT_REGISTER_PAYMENT)
	v.SetDefault("casper.transfer_payment", domain.DEFAULT_TRANSFER_PAYMENT)
	v.SetDefault("casper.gas_price", domain.DEFAULT_GAS_PRICE)
	v.SetDefault("casper.deploy_ttl", domain.DEFAULT_DEPLOY_TTL)
	v.SetDefault("casper.settle_wait", domain.DEFAULT_SETTLE_WAIT)
	v.SetDefault("csprcloud.api_url", domain.DEFAULT_CSPR_CLOUD_API_URL)
	v.SetDefault("csprcloud.node_url", domain.DEFAULT_CSPR_CLOUD_NODE_URL)
	v.SetDefault("csprcloud.stream_url", domain.DEFAULT_CSPR_CLOUD_STREAM_URL)
	v.SetDefault("csprcloud.cache_ttl", "60s")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.models", []string{"gemini-2.0-flash-exp", "gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"})
	v.SetDefault("pinata.api_url", "https://api.pinata.cloud")
	v.SetDefault("mirror.backend", "file")
	v.SetDefault("mirror.path", "data/"+domain.MIRROR_KEY+".json")
	v.SetDefault("rate_limiter.redis_key_prefix", "flowfi:limiter:")
	v.SetDefault("rate_limiter.max_workers", 32)
	v.SetDefault("rate_limiter.max_queue_size", 1024)
	v.SetDefault("rate_limiter.providers", map[string]interface{}{
		"gemini":    map[string]interface{}{"requests_per_second": 2, "burst": 2, "max_queue_time": "30s"},
		"pinata":    map[string]interface{}{"requests_per_second": 3, "burst": 3, "max_queue_time": "30s"},
		"csprcloud": map[string]interface{}{"requests_per_second": 10, "burst": 10, "max_queue_time": "10s"},
	})
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// legacyEnvNames maps keys to the variable names the web app deployment already uses
var legacyEnvNames = map[string][]string{
	"gemini.api_key":               {"GEMINI_API_KEY"},
	"pinata.jwt":                   {"PINATA_JWT", "NEXT_PUBLIC_PINATA_JWT"},
	"csprcloud.access_token":       {"CSPR_CLOUD_ACCESS_TOKEN", "NEXT_PUBLIC_CSPR_CLOUD_ACCESS_TOKEN"},
	"casper.node_url":              {"NEXT_PUBLIC_CASPER_NODE_URL"},
	"casper.chain_name":            {"NEXT_PUBLIC_CASPER_CHAIN_NAME"},
	"casper.contract_hash":         {"NEXT_PUBLIC_CONTRACT_HASH"},
	"casper.contract_package_hash": {"NEXT_PUBLIC_CONTRACT_PACKAGE_HASH"},
}

func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		"http_timeout",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Casper
		"casper.fallback_node_urls",
		"casper.explorer_url",
		"casper.vault_public_key",
		"casper.mint_payment",
		"casper.register_payment",
		"casper.transfer_payment",
		"casper.gas_price",
		"casper.deploy_ttl",
		"casper.settle_wait",
		// CSPR.cloud
		"csprcloud.api_url",
		"csprcloud.node_url",
		"csprcloud.stream_url",
		"csprcloud.cache_ttl",
		// Providers
		"gemini.base_url",
		"gemini.models",
		"pinata.api_url",
		// Mirror and wallet
		"mirror.backend",
		"mirror.path",
		"wallet.key_path",
		// URI
		"uri.ipfs_gateways",
		// Rate limiter
		"rate_limiter.redis_key_prefix",
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}

	for key, names := range legacyEnvNames {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(append([]string{key, prefixed}, names...)...)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// Enabled reports whether a database host is configured
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Enabled reports whether a Redis address is configured
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Enabled reports whether a NATS URL is configured
func (c *NATSConfig) Enabled() bool {
	return c.URL != ""
}

// RPCEndpoints returns the ordered RPC endpoint cascade. The CSPR.cloud node comes first
// when an access token is configured, then the configured node, then public fallbacks.
func (c *APIConfig) RPCEndpoints() []string {
	return rpcEndpoints(c.Casper, c.CSPRCloud)
}

// RPCEndpoints returns the ordered RPC endpoint cascade
func (c *CLIConfig) RPCEndpoints() []string {
	return rpcEndpoints(c.Casper, c.CSPRCloud)
}

func rpcEndpoints(casper CasperConfig, cloud CSPRCloudConfig) []string {
	var endpoints []string
	seen := make(map[string]bool)
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		endpoints = append(endpoints, u)
	}

	if cloud.AccessToken != "" {
		add(cloud.NodeURL)
	}
	add(casper.NodeURL)
	for _, u := range casper.FallbackNodeURLs {
		add(u)
	}
	return endpoints
}
