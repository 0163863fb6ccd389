package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/solecrafted/pkg/config"
)

// Payment gateway modes.
const (
	PaymentModeSimulated = "simulated"
	PaymentModeHTTP      = "http"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart and wishlist TTL in hours (default: 30 days, matching how long
	// a browser keeps the persisted stores around)
	StoreTTL int `env:"STORE_TTL_HOURS" envDefault:"720"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Payment gateway
	PaymentMode        string        `env:"PAYMENT_MODE" envDefault:"simulated"`
	PaymentGatewayURL  string        `env:"PAYMENT_GATEWAY_URL" envDefault:""`
	PaymentLatency     time.Duration `env:"PAYMENT_SIMULATED_LATENCY" envDefault:"2s"`
	PaymentFailureRate float64       `env:"PAYMENT_SIMULATED_FAILURE_RATE" envDefault:"0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.StoreTTL < 1 {
		return fmt.Errorf("STORE_TTL_HOURS must be positive: %d", c.StoreTTL)
	}
	switch c.PaymentMode {
	case PaymentModeSimulated:
	case PaymentModeHTTP:
		if c.PaymentGatewayURL == "" {
			return fmt.Errorf("PAYMENT_GATEWAY_URL is required when PAYMENT_MODE is %q", PaymentModeHTTP)
		}
	default:
		return fmt.Errorf("PAYMENT_MODE must be %q or %q: %q", PaymentModeSimulated, PaymentModeHTTP, c.PaymentMode)
	}
	if c.PaymentFailureRate < 0 || c.PaymentFailureRate > 1 {
		return fmt.Errorf("PAYMENT_SIMULATED_FAILURE_RATE must be between 0.0 and 1.0: %f", c.PaymentFailureRate)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0: %f", c.OTELSampleRate)
	}
	return nil
}

// StoreTTLDuration returns the cart and wishlist TTL as a duration.
func (c *Config) StoreTTLDuration() time.Duration {
	return time.Duration(c.StoreTTL) * time.Hour
}
