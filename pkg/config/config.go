package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Provider adapter names accepted by PROVIDER
const (
	ProviderStub      = "stub"
	ProviderReplicate = "replicate"
	ProviderGemini    = "gemini"
	ProviderRemote    = "remote"
)

// Config holds the configuration for the logo image service. It is built once
// at startup and handed to each stage's constructor.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" yaml:"service_name"`
	Environment     string        `env:"ENVIRONMENT" yaml:"environment"`
	HTTPPort        int           `env:"HTTP_PORT" yaml:"http_port"`
	LogLevel        string        `env:"LOG_LEVEL" yaml:"log_level"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`

	// Provider selects the adapter behind the validation gateway
	Provider    string `env:"PROVIDER" yaml:"provider"`
	ProviderURL string `env:"PROVIDER_URL" yaml:"provider_url"`

	ReplicateAPIToken string `env:"REPLICATE_API_TOKEN" yaml:"replicate_api_token"`
	ReplicateBaseURL  string `env:"REPLICATE_BASE_URL" yaml:"replicate_base_url"`
	ReplicateModel    string `env:"REPLICATE_MODEL" yaml:"replicate_model"`

	GeminiAPIKey string `env:"GEMINI_API_KEY" yaml:"gemini_api_key"`
	GeminiModel  string `env:"GEMINI_MODEL" yaml:"gemini_model"`

	Timeouts TimeoutConfig `yaml:"timeouts"`

	EnableTracing  bool   `env:"ENABLE_TRACING" yaml:"enable_tracing"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"otlp_endpoint"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" yaml:"metrics_enabled"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServiceName:      "logo-image-ai",
		Environment:      "development",
		HTTPPort:         3000,
		LogLevel:         "info",
		ShutdownTimeout:  10 * time.Second,
		Provider:         ProviderStub,
		ReplicateBaseURL: "https://api.replicate.com/v1",
		ReplicateModel:   "flux-schnell",
		GeminiModel:      "imagen-3.0-generate-002",
		Timeouts:         DefaultTimeouts(),
		MetricsEnabled:   true,
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing priority.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

// LoadFile overlays values from a YAML file onto c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("http port must be between 1 and 65535")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if err := c.Timeouts.Validate(); err != nil {
		return err
	}

	switch c.Provider {
	case ProviderStub:
	case ProviderReplicate:
		if c.ReplicateAPIToken == "" {
			return fmt.Errorf("REPLICATE_API_TOKEN is required when PROVIDER is %q", ProviderReplicate)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when PROVIDER is %q", ProviderGemini)
		}
	case ProviderRemote:
		if err := c.validateProviderURL(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if c.EnableTracing && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when ENABLE_TRACING is true")
	}

	return nil
}

// validateProviderURL requires an absolute remote URL that is not this
// service's own listener.
func (c *Config) validateProviderURL() error {
	raw := strings.TrimSpace(c.ProviderURL)
	if raw == "" {
		return fmt.Errorf("PROVIDER_URL is required when PROVIDER is %q", ProviderRemote)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("PROVIDER_URL %q must be an absolute http(s) URL", raw)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	if port == strconv.Itoa(c.HTTPPort) && isLocalHost(u.Hostname()) {
		return fmt.Errorf("PROVIDER_URL %q points at this service (%s)", raw, c.Addr())
	}
	return nil
}

func isLocalHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
