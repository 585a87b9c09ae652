package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/wekeepgrowing/juansite-billing/pkg/config"
	"github.com/wekeepgrowing/juansite-billing/pkg/logger"
)

// ServiceName selects configs/<env>/billing.yaml and the BILLING_ env prefix.
const ServiceName = "billing"

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      logger.Config  `mapstructure:"log"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Expiry   ExpiryConfig   `mapstructure:"expiry"`
	Relay    RelayConfig    `mapstructure:"relay"`
}

// Defaults is the configuration used for every key the file and environment leave unset.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                ServiceName,
		"service.environment":         "dev",
		"service.version":             "0.1.0",
		"service.auth.jwt_secret":     "",
		"database.driver":             "memory",
		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "juansite",
		"database.user":               "postgres",
		"database.password":           "",
		"database.sslmode":            "disable",
		"database.max_open_conns":     20,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"database.auto_migrate":       true,
		"database.slow_threshold":     "200ms",
		"redis.addr":                  "",
		"redis.password":              "",
		"redis.db":                    0,
		"redis.lock_ttl":              "30s",
		"server.http.host":            "0.0.0.0",
		"server.http.port":            8080,
		"server.grpc.host":            "0.0.0.0",
		"server.grpc.port":            9090,
		"server.cors_origins":         []string{"*"},
		"log.level":                   "info",
		"log.format":                  "json",
		"log.output":                  "stdout",
		"payment.method":              "paymaya",
		"payment.checkout_url":        "https://paymaya.me/elchannah",
		"payment.verifier":            VerifierTrust,
		"payment.reference_pattern":   "",
		"payment.stripe.secret_key":   "",
		"payment.stripe.api_url":      "",
		"catalog.file":                "",
		"expiry.enabled":              false,
		"expiry.pending_ttl":          "72h",
		"expiry.interval":             "10m",
		"expiry.batch_size":           100,
		"relay.enabled":               true,
		"relay.interval":              "5s",
		"relay.batch_size":            50,
		"relay.channel":               "subscription.upgraded",
	}
}

// LoadConfig reads the billing configuration through the shared viper loader.
func LoadConfig() (*Config, error) {
	loaded, err := pkgconfig.Load(ServiceName, Defaults())
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := loaded.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Payment.Verifier {
	case VerifierTrust:
	case VerifierPattern:
		if c.Payment.ReferencePattern == "" {
			return fmt.Errorf("payment.reference_pattern is required for the %s verifier", VerifierPattern)
		}
	case VerifierStripe:
		if c.Payment.Stripe.SecretKey == "" {
			return fmt.Errorf("payment.stripe.secret_key is required for the %s verifier", VerifierStripe)
		}
	default:
		return fmt.Errorf("unsupported payment verifier: %q", c.Payment.Verifier)
	}

	if c.Payment.CheckoutURL == "" {
		return fmt.Errorf("payment.checkout_url is required")
	}
	if c.Expiry.Enabled && c.Expiry.PendingTTL <= 0 {
		return fmt.Errorf("expiry.pending_ttl must be positive when expiry is enabled")
	}
	return nil
}

type ServiceConfig struct {
	Name        string     `mapstructure:"name"`
	Environment string     `mapstructure:"environment"`
	Version     string     `mapstructure:"version"`
	Auth        AuthConfig `mapstructure:"auth"`
}

type AuthConfig struct {
	// JWTSecret verifies HS256 tokens issued by the identity provider.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type ServerConfig struct {
	HTTP        ListenConfig `mapstructure:"http"`
	GRPC        ListenConfig `mapstructure:"grpc"`
	CORSOrigins []string     `mapstructure:"cors_origins"`
}

type ListenConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (l ListenConfig) Address() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

type RedisConfig struct {
	// Addr enables distributed locks and event relay when set.
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

const (
	VerifierTrust   = "trust"
	VerifierPattern = "pattern"
	VerifierStripe  = "stripe"
)

type PaymentConfig struct {
	Method      string `mapstructure:"method"`
	CheckoutURL string `mapstructure:"checkout_url"`
	// Verifier is one of trust, pattern or stripe.
	Verifier         string       `mapstructure:"verifier"`
	ReferencePattern string       `mapstructure:"reference_pattern"`
	Stripe           StripeConfig `mapstructure:"stripe"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	// APIURL overrides the Stripe API base URL.
	APIURL string `mapstructure:"api_url"`
}

type CatalogConfig struct {
	// File optionally overrides names, prices and features of the built-in tiers.
	File string `mapstructure:"file"`
}

// ExpiryConfig controls the pending transaction sweeper. It is off by default so
// a customer may return with a reference at any time after paying.
type ExpiryConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	PendingTTL time.Duration `mapstructure:"pending_ttl"`
	Interval   time.Duration `mapstructure:"interval"`
	BatchSize  int           `mapstructure:"batch_size"`
}

type RelayConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Channel   string        `mapstructure:"channel"`
}
