package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Gateway  GatewayConfig  `koanf:"gateway"`
	DNS      DNSConfig      `koanf:"dns"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
}

type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required"`
	HoldAge   time.Duration `koanf:"hold_age" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port              string        `koanf:"port" validate:"required"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout       time.Duration `koanf:"idle_timeout" validate:"required"`
	TrustedProxies    []string      `koanf:"trusted_proxies" validate:"omitempty,dive,cidr|ip"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// Missing status policies.
const (
	MissingStatusHold   = "hold"
	MissingStatusReject = "reject"
)

// Sandbox credentials published by Cornerstone for test mode.
const (
	SandboxMerchantID  = "10000100"
	SandboxMerchantKey = "46f0cd694581a"
)

// GatewayConfig parameterizes the single Cornerstone/Solidstone integration.
type GatewayConfig struct {
	MerchantID        string        `koanf:"merchant_id"`
	MerchantKey       string        `koanf:"merchant_key"`
	LiveURL           string        `koanf:"live_url" validate:"required,url"`
	SandboxURL        string        `koanf:"sandbox_url" validate:"required,url"`
	TestMode          bool          `koanf:"test_mode"`
	Debug             bool          `koanf:"debug"`
	CurrencyAllowlist []string      `koanf:"currency_allowlist" validate:"required,min=1,dive,len=3"`
	TrustedHosts      []string      `koanf:"trusted_hosts" validate:"required,min=1,dive,hostname"`
	OriginCacheTTL    time.Duration `koanf:"origin_cache_ttl"`
	CallbackURL       string        `koanf:"callback_url" validate:"required,url"`
	ReturnURL         string        `koanf:"return_url" validate:"required,url"`
	StoreName         string        `koanf:"store_name" validate:"required"`
	MissingStatus     string        `koanf:"missing_status_policy" validate:"required,oneof=hold reject"`
	ReconcileAmount   bool          `koanf:"reconcile_amount"`
}

func (c GatewayConfig) validateCredentials() error {
	if c.TestMode {
		return nil
	}
	if c.MerchantID == "" || c.MerchantKey == "" {
		return errors.New("gateway.merchant_id and gateway.merchant_key are required outside test mode")
	}
	return nil
}

// CheckoutURL is where the shopper is posted to: the sandbox in test mode.
func (c GatewayConfig) CheckoutURL() string {
	if c.TestMode {
		return c.SandboxURL
	}
	return c.LiveURL
}

// Credentials returns the merchant id and key to send, substituting the
// sandbox pair in test mode.
func (c GatewayConfig) Credentials() (merchantID, merchantKey string) {
	if c.TestMode {
		return SandboxMerchantID, SandboxMerchantKey
	}
	return c.MerchantID, c.MerchantKey
}

// AuditEnabled reports whether per-callback diagnostics should be written.
func (c GatewayConfig) AuditEnabled() bool {
	return c.TestMode || c.Debug
}

type DNSConfig struct {
	LookupTimeout time.Duration `koanf:"lookup_timeout" validate:"required"`
	BaseDelay     time.Duration `koanf:"base_delay"`
	MaxRetries    int           `koanf:"max_retries" validate:"min=1"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

func defaults() map[string]any {
	return map[string]any{
		"gateway.live_url":              "https://give.cornerstone.cc/The+Page+of+Infinite+Testing/checkout",
		"gateway.sandbox_url":           "https://give.cornerstone.cc/The+Page+of+Infinite+Testing/checkout",
		"gateway.test_mode":             true,
		"gateway.currency_allowlist":    []string{"USD"},
		"gateway.trusted_hosts":         []string{"give.cornerstone.cc", "checkout.cornerstone.cc"},
		"gateway.missing_status_policy": MissingStatusHold,
		"gateway.reconcile_amount":      true,
		"dns.lookup_timeout":            "5s",
		"dns.base_delay":                "200ms",
		"dns.max_retries":               3,
		"logger.level":                  "info",
		"logger.format":                 "text",
		"worker.interval":               "5m",
		"worker.batch_size":             100,
		"worker.hold_age":               "24h",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load default configuration", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if err := mainConfig.Gateway.validateCredentials(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
