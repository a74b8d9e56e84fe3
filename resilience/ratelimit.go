// Package resilience provides rate limiting for tool invocations.
package resilience

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter controls invocation rate per operation verb.
type RateLimiter interface {
	// Allow reports whether an invocation is allowed right now.
	Allow(operation string) bool

	// Wait blocks until an invocation is allowed or the context ends.
	Wait(ctx context.Context, operation string) error

	// SetLimit updates the rate limit for an operation.
	SetLimit(operation string, limit rate.Limit, burst int)
}

// RateLimiterConfig configures the rate limiter.
type RateLimiterConfig struct {
	// DefaultLimit is the default invocations per second.
	DefaultLimit float64

	// DefaultBurst is the default burst size.
	DefaultBurst int

	// PerOperation enables per-operation limiting; otherwise one global
	// bucket applies.
	PerOperation bool

	// OperationLimits contains per-operation overrides.
	OperationLimits map[string]OperationLimit
}

// OperationLimit defines the rate limit for one operation verb.
type OperationLimit struct {
	Limit float64
	Burst int
}

// DefaultRateLimiterConfig returns default configuration. Builds and
// tests are heavyweight; queries run at discovery fan-out rates.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		DefaultLimit: 10,
		DefaultBurst: 20,
		PerOperation: true,
		OperationLimits: map[string]OperationLimit{
			"build": {Limit: 2, Burst: 4},
			"test":  {Limit: 2, Burst: 4},
			"run":   {Limit: 2, Burst: 4},
		},
	}
}

type rateLimiter struct {
	config        RateLimiterConfig
	globalLimiter *rate.Limiter
	opLimiters    map[string]*rate.Limiter
	mu            sync.RWMutex
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(config RateLimiterConfig) RateLimiter {
	rl := &rateLimiter{
		config:        config,
		globalLimiter: rate.NewLimiter(rate.Limit(config.DefaultLimit), config.DefaultBurst),
		opLimiters:    make(map[string]*rate.Limiter),
	}

	for op, limit := range config.OperationLimits {
		rl.opLimiters[op] = rate.NewLimiter(rate.Limit(limit.Limit), limit.Burst)
	}

	return rl
}

// Allow implements RateLimiter.Allow.
func (rl *rateLimiter) Allow(operation string) bool {
	if !rl.config.PerOperation {
		return rl.globalLimiter.Allow()
	}
	return rl.getLimiter(operation).Allow()
}

// Wait implements RateLimiter.Wait.
func (rl *rateLimiter) Wait(ctx context.Context, operation string) error {
	if !rl.config.PerOperation {
		return rl.globalLimiter.Wait(ctx)
	}
	return rl.getLimiter(operation).Wait(ctx)
}

// SetLimit implements RateLimiter.SetLimit.
func (rl *rateLimiter) SetLimit(operation string, limit rate.Limit, burst int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.opLimiters[operation]; ok {
		limiter.SetLimit(limit)
		limiter.SetBurst(burst)
	} else {
		rl.opLimiters[operation] = rate.NewLimiter(limit, burst)
	}
}

func (rl *rateLimiter) getLimiter(operation string) *rate.Limiter {
	rl.mu.RLock()
	limiter, ok := rl.opLimiters[operation]
	rl.mu.RUnlock()

	if ok {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.opLimiters[operation]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(rl.config.DefaultLimit), rl.config.DefaultBurst)
	rl.opLimiters[operation] = limiter
	return limiter
}
