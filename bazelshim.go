package bazelshim

import (
	"context"
	"errors"

	"github.com/victoralfred/bazelshim/config"
	"github.com/victoralfred/bazelshim/dispatch"
	"github.com/victoralfred/bazelshim/executor"
	"github.com/victoralfred/bazelshim/hooks"
	"github.com/victoralfred/bazelshim/observability"
	"github.com/victoralfred/bazelshim/pool"
	"github.com/victoralfred/bazelshim/resilience"
	"github.com/victoralfred/bazelshim/targets"
	"github.com/victoralfred/bazelshim/validation"
	"github.com/victoralfred/bazelshim/workspace"
)

// =============================================================================
// Core Types
// =============================================================================

// Target is a validated build target label.
type Target = validation.Target

// Flag is a validated tool flag.
type Flag = validation.Flag

// Query is a validated query expression.
type Query = validation.Query

// RuntimeArg is a validated runtime argument.
type RuntimeArg = validation.RuntimeArg

// Executor invokes the tool from validated inputs.
type Executor = executor.Executor

// Handle is a live streaming invocation.
type Handle = executor.Handle

// Line is one streamed output line tagged with its channel.
type Line = executor.Line

// Sink receives streamed lines.
type Sink = executor.Sink

// Result is the outcome of one tool invocation.
type Result = executor.Result

// Hook is a named, prioritized invocation lifecycle hook.
type Hook = hooks.Hook

// Snapshot is one immutable aggregation of discovered targets.
type Snapshot = targets.Snapshot

// Config is the main configuration.
type Config = config.Config

// Request and response types for the dispatch layer.
type (
	Request            = dispatch.Request
	Response           = dispatch.Response
	ListTargetsRequest = dispatch.ListTargetsRequest
	QueryRequest       = dispatch.QueryRequest
	BuildRequest       = dispatch.BuildRequest
	TestRequest        = dispatch.TestRequest
	RunRequest         = dispatch.RunRequest
	SetupRequest       = dispatch.SetupRequest
)

// =============================================================================
// Error Variables
// =============================================================================

// Common errors returned by the library.
var (
	// ErrNotWorkspace indicates the directory is not a workspace root.
	ErrNotWorkspace = workspace.ErrNotWorkspace

	// ErrQueryFailed indicates a query ran and exited non-zero.
	ErrQueryFailed = executor.ErrQueryFailed

	// ErrSpawnFailed indicates the tool could not be spawned.
	ErrSpawnFailed = executor.ErrSpawnFailed

	// ErrForbiddenCharacter indicates a denylisted character in an input.
	ErrForbiddenCharacter = validation.ErrForbiddenCharacter
)

// =============================================================================
// Shim
// =============================================================================

// Shim bundles the executor, target cache, and dispatcher for one
// validated workspace.
type Shim struct {
	// Exec is the underlying executor.
	Exec *executor.Executor

	// Cache is the target snapshot cache.
	Cache *targets.Cache

	// Dispatcher routes typed requests.
	Dispatcher *dispatch.Dispatcher

	pool  pool.Pool
	audit observability.AuditLogger
}

// Option configures New.
type Option func(*options)

type options struct {
	cfg   Config
	sink  executor.Sink
	hooks []hooks.Hook
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithSink sets the sink for streamed tool output.
func WithSink(sink Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithHook registers an additional invocation lifecycle hook. Hooks run
// in priority order alongside the built-in audit hook.
func WithHook(h Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, h)
	}
}

// New validates repoRoot as a workspace and wires the full shim:
// executor with rate limiting, telemetry, and audit logging; discovery
// over a bounded worker pool; the snapshot cache; and the dispatcher.
func New(repoRoot string, opts ...Option) (*Shim, error) {
	o := &options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := workspace.Validate(repoRoot)
	if err != nil {
		return nil, err
	}

	telemetry := observability.NewTelemetry(cfg.Telemetry)

	registry := hooks.NewRegistry()
	for _, h := range o.hooks {
		registry.Register(h)
	}
	var audit observability.AuditLogger
	if cfg.Audit.Enabled {
		audit, err = observability.NewFileAuditLogger(cfg.Audit)
		if err != nil {
			return nil, err
		}
		registry.Register(observability.NewAuditHook(audit))
	}

	exec, err := executor.NewBuilder().
		WithWorkspace(root).
		WithRateLimiter(resilience.NewRateLimiter(cfg.RateLimiter)).
		WithTelemetry(telemetry).
		WithHooks(registry.Hooks()...).
		Build()
	if err != nil {
		return nil, err
	}

	workerPool := pool.New(cfg.Pool)
	discoverer := targets.NewDiscoverer(exec, root,
		targets.WithKinds(cfg.Discovery.Kinds),
		targets.WithPool(workerPool),
		targets.WithTelemetry(telemetry),
	)
	cache := targets.NewCache(discoverer)

	dispatchOpts := []dispatch.Option{
		dispatch.WithDefaultFlags(cfg.Executor.DefaultFlags),
		dispatch.WithQueryTimeout(cfg.Executor.QueryTimeout),
		dispatch.WithTelemetry(telemetry),
	}
	if o.sink != nil {
		dispatchOpts = append(dispatchOpts, dispatch.WithSink(o.sink))
	}

	return &Shim{
		Exec:       exec,
		Cache:      cache,
		Dispatcher: dispatch.New(exec, cache, dispatchOpts...),
		pool:       workerPool,
		audit:      audit,
	}, nil
}

// Dispatch routes one request through the dispatcher.
func (s *Shim) Dispatch(ctx context.Context, req Request) (*Response, error) {
	return s.Dispatcher.Dispatch(ctx, req)
}

// Shutdown releases the shim's resources.
func (s *Shim) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.pool.Shutdown(ctx); err != nil && !errors.Is(err, pool.ErrPoolShutdown) {
		errs = append(errs, err)
	}
	if s.audit != nil {
		if err := s.audit.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// =============================================================================
// Validation
// =============================================================================

// ValidateTarget validates a single target label.
func ValidateTarget(target string) (Target, error) {
	return validation.ValidateTarget(target)
}

// ValidateTargets validates a list of target labels.
func ValidateTargets(targetList []string) ([]Target, error) {
	return validation.ValidateTargets(targetList)
}

// ValidateFlag validates a single tool flag.
func ValidateFlag(flag string) (Flag, error) {
	return validation.ValidateFlag(flag)
}

// ValidateQuery validates a query expression.
func ValidateQuery(expr string) (Query, error) {
	return validation.ValidateQuery(expr)
}

// =============================================================================
// Configuration
// =============================================================================

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.DefaultConfig()
}

// LoadConfig loads configuration from a YAML file path split into its
// directory and filename.
func LoadConfig(ctx context.Context, basePath, configFile string) (*Config, error) {
	loader, err := config.NewLoader(basePath, configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx)
}
