package config

import (
	"fmt"
	"time"
)

// TimeoutConfig bounds every outbound hop in the generation chain
type TimeoutConfig struct {
	// Relay bounds the relay's call into the validation gateway
	Relay time.Duration `env:"RELAY_TIMEOUT" yaml:"relay"`

	// Provider bounds the gateway's call into the provider adapter
	Provider time.Duration `env:"PROVIDER_TIMEOUT" yaml:"provider"`

	// PollInterval is how often to check Replicate prediction status
	PollInterval time.Duration `env:"REPLICATE_POLL_INTERVAL" yaml:"poll_interval"`
}

// DefaultTimeouts returns the default timeout configuration
func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		Relay:        10 * time.Second,
		Provider:     5 * time.Second,
		PollInterval: 2 * time.Second,
	}
}

// TestTimeouts returns timeout configuration suitable for testing
func TestTimeouts() TimeoutConfig {
	return TimeoutConfig{
		Relay:        2 * time.Second,
		Provider:     1 * time.Second,
		PollInterval: 10 * time.Millisecond,
	}
}

// Validate checks the timeouts are positive and nest correctly
func (t TimeoutConfig) Validate() error {
	if t.Relay <= 0 || t.Provider <= 0 || t.PollInterval <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	// The relay waits on the gateway, which waits on the provider.
	if t.Relay < t.Provider {
		return fmt.Errorf("relay timeout (%v) must not be shorter than provider timeout (%v)", t.Relay, t.Provider)
	}
	return nil
}
