// Package config provides configuration management for bazelshim.
package config

import (
	"time"

	"github.com/victoralfred/bazelshim/observability"
	"github.com/victoralfred/bazelshim/pool"
	"github.com/victoralfred/bazelshim/resilience"
	"github.com/victoralfred/bazelshim/targets"
)

// Config is the main configuration for bazelshim.
type Config struct {
	Executor    ExecutorConfig                `yaml:"executor"`
	Discovery   DiscoveryConfig               `yaml:"discovery"`
	RateLimiter resilience.RateLimiterConfig  `yaml:"rate_limiter"`
	Telemetry   observability.TelemetryConfig `yaml:"telemetry"`
	Audit       observability.AuditConfig     `yaml:"audit"`
	Pool        pool.Config                   `yaml:"pool"`
}

// ExecutorConfig configures the executor and dispatch boundary.
type ExecutorConfig struct {
	// QueryTimeout bounds run-to-completion query operations. Streaming
	// operations (build, test, run) are unbounded; their lifetime belongs
	// to the caller's context.
	QueryTimeout time.Duration `yaml:"query_timeout"`

	// DefaultFlags apply to streaming operations whose request carries
	// no flags of its own. The defaults keep tool output
	// machine-consumable; caller flags replace them.
	DefaultFlags []string `yaml:"default_flags"`
}

// DiscoveryConfig configures target discovery.
type DiscoveryConfig struct {
	// Kinds are the tracked target kinds.
	Kinds []string `yaml:"kinds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Executor: ExecutorConfig{
			QueryTimeout: 5 * time.Minute,
			DefaultFlags: []string{"--color=no", "--curses=no"},
		},
		Discovery: DiscoveryConfig{
			Kinds: targets.DefaultKinds,
		},
		RateLimiter: resilience.DefaultRateLimiterConfig(),
		Telemetry:   observability.DefaultTelemetryConfig(),
		Audit:       observability.DefaultAuditConfig(),
		Pool:        pool.DefaultConfig(),
	}
}

// DevelopmentConfig returns configuration suitable for development.
func DevelopmentConfig() Config {
	cfg := DefaultConfig()
	cfg.Executor.QueryTimeout = 15 * time.Minute
	cfg.RateLimiter.DefaultLimit = 100
	cfg.RateLimiter.DefaultBurst = 200
	cfg.Audit.Enabled = false
	return cfg
}

// Validate normalizes the configuration, filling zero values with
// defaults.
func (c *Config) Validate() error {
	if c.Executor.QueryTimeout <= 0 {
		c.Executor.QueryTimeout = 5 * time.Minute
	}
	if len(c.Discovery.Kinds) == 0 {
		c.Discovery.Kinds = targets.DefaultKinds
	}
	if c.Pool.Workers <= 0 {
		c.Pool.Workers = pool.DefaultConfig().Workers
	}
	if c.RateLimiter.DefaultLimit <= 0 {
		c.RateLimiter.DefaultLimit = resilience.DefaultRateLimiterConfig().DefaultLimit
	}
	if c.RateLimiter.DefaultBurst <= 0 {
		c.RateLimiter.DefaultBurst = resilience.DefaultRateLimiterConfig().DefaultBurst
	}
	return nil
}
