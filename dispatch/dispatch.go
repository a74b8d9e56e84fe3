package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/victoralfred/bazelshim/executor"
	"github.com/victoralfred/bazelshim/targets"
	"github.com/victoralfred/bazelshim/validation"
)

// ErrUnknownRequest indicates a request variant the dispatcher does not
// handle.
var ErrUnknownRequest = errors.New("unknown request type")

// setupScripts are the fixed workspace setup scripts, workspace-relative.
// The install script is skipped on request.
const (
	setupCacheScript = "tools/setup_cache.sh"
	installScript    = "install/install_all.sh"
)

// Counter counts dispatch events. The observability telemetry satisfies
// this interface.
type Counter interface {
	RecordCounter(name string, labels map[string]string)
}

// Dispatcher validates request payloads and routes them to the executor
// and target cache. The executor receives only validated, typed inputs.
type Dispatcher struct {
	exec         *executor.Executor
	cache        *targets.Cache
	sink         executor.Sink
	telemetry    Counter
	defaultFlags []string
	queryTimeout time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSink sets the sink receiving streamed output lines. The default
// sink discards lines.
func WithSink(sink executor.Sink) Option {
	return func(d *Dispatcher) {
		d.sink = sink
	}
}

// WithDefaultFlags sets flags used for streaming operations when the
// request supplies none.
func WithDefaultFlags(flags []string) Option {
	return func(d *Dispatcher) {
		d.defaultFlags = flags
	}
}

// WithQueryTimeout bounds query operations. Zero disables the bound.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.queryTimeout = timeout
	}
}

// WithTelemetry counts validation failures per input category.
func WithTelemetry(c Counter) Option {
	return func(d *Dispatcher) {
		d.telemetry = c
	}
}

// New creates a dispatcher over the given executor and target cache.
func New(exec *executor.Executor, cache *targets.Cache, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		exec:         exec,
		cache:        cache,
		sink:         func(executor.Line) {},
		defaultFlags: []string{"--color=no", "--curses=no"},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes one request. Validation failures are returned before
// any subprocess is spawned; streaming operations report tool failure
// through the response exit code, not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Response, error) {
	switch r := req.(type) {
	case ListTargetsRequest:
		return d.listTargets(ctx, r)
	case QueryRequest:
		return d.query(ctx, r)
	case BuildRequest:
		return d.build(ctx, r)
	case TestRequest:
		return d.test(ctx, r)
	case RunRequest:
		return d.run(ctx, r)
	case SetupRequest:
		return d.setup(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}
}

func (d *Dispatcher) listTargets(ctx context.Context, req ListTargetsRequest) (*Response, error) {
	if req.Refresh {
		d.cache.Invalidate()
	}
	snap, err := d.cache.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return &Response{Text: string(data)}, nil
}

func (d *Dispatcher) query(ctx context.Context, req QueryRequest) (*Response, error) {
	expr, err := validation.ValidateQuery(req.Expr)
	if err != nil {
		return nil, d.validationFailure("query", err)
	}
	flags, err := validation.ValidateFlags(req.Flags)
	if err != nil {
		return nil, d.validationFailure("query", err)
	}

	if d.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.queryTimeout)
		defer cancel()
	}

	results, err := d.exec.Query(ctx, expr, flags)
	if err != nil {
		return nil, err
	}

	text := "(no matches)"
	if len(results) > 0 {
		text = strings.Join(results, "\n")
	}
	return &Response{Text: text}, nil
}

func (d *Dispatcher) build(ctx context.Context, req BuildRequest) (*Response, error) {
	targetList, err := validation.ValidateTargets(req.Targets)
	if err != nil {
		return nil, d.validationFailure("build", err)
	}
	flags, err := validation.ValidateFlags(d.streamFlags(req.Flags))
	if err != nil {
		return nil, d.validationFailure("build", err)
	}

	handle, err := d.exec.Build(ctx, targetList, flags)
	if err != nil {
		return nil, err
	}
	return d.stream(ctx, handle)
}

func (d *Dispatcher) test(ctx context.Context, req TestRequest) (*Response, error) {
	raw := req.Targets
	if len(raw) == 0 {
		raw = []string{"//..."}
	}
	targetList, err := validation.ValidateTargets(raw)
	if err != nil {
		return nil, d.validationFailure("test", err)
	}
	flags, err := validation.ValidateFlags(d.streamFlags(req.Flags))
	if err != nil {
		return nil, d.validationFailure("test", err)
	}

	handle, err := d.exec.Test(ctx, targetList, flags)
	if err != nil {
		return nil, err
	}
	return d.stream(ctx, handle)
}

func (d *Dispatcher) run(ctx context.Context, req RunRequest) (*Response, error) {
	target, err := validation.ValidateTarget(req.Target)
	if err != nil {
		return nil, d.validationFailure("run", err)
	}
	flags, err := validation.ValidateFlags(d.streamFlags(req.Flags))
	if err != nil {
		return nil, d.validationFailure("run", err)
	}
	args, err := validation.ValidateRuntimeArgs(req.Args)
	if err != nil {
		return nil, d.validationFailure("run", err)
	}

	handle, err := d.exec.Run(ctx, target, flags, args)
	if err != nil {
		return nil, err
	}
	return d.stream(ctx, handle)
}

// setup runs the fixed setup scripts that exist in the workspace, then
// invalidates the target cache: setup may have changed what is buildable.
func (d *Dispatcher) setup(ctx context.Context, req SetupRequest) (*Response, error) {
	scripts := []string{setupCacheScript}
	if !req.SkipInstall {
		scripts = append(scripts, installScript)
	}

	var lines []string
	exitCode := 0
	for _, script := range scripts {
		if _, err := os.Stat(filepath.Join(d.exec.WorkspaceRoot(), script)); err != nil {
			lines = append(lines, fmt.Sprintf("skipping %s (not found)", script))
			continue
		}

		handle, err := d.exec.RunScript(ctx, script)
		if err != nil {
			return nil, err
		}
		result, err := handle.Stream(ctx, d.sink)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("%s exited with code %d", script, result.ExitCode))
		if result.ExitCode != 0 {
			exitCode = result.ExitCode
		}
	}

	d.cache.Invalidate()
	return &Response{Text: strings.Join(lines, "\n"), ExitCode: exitCode}, nil
}

// stream consumes a streaming handle to completion.
func (d *Dispatcher) stream(ctx context.Context, handle *executor.Handle) (*Response, error) {
	result, err := handle.Stream(ctx, d.sink)
	if err != nil {
		return nil, err
	}
	return &Response{
		Text:     fmt.Sprintf("%s completed with exit code %d", result.Op, result.ExitCode),
		ExitCode: result.ExitCode,
	}, nil
}

// streamFlags supplies the default streaming flags when the request
// carries none. Caller flags replace the defaults entirely, so a caller
// can opt back into color or curses output.
func (d *Dispatcher) streamFlags(flags []string) []string {
	if len(flags) == 0 {
		return d.defaultFlags
	}
	return flags
}

func (d *Dispatcher) validationFailure(operation string, err error) error {
	if d.telemetry != nil {
		labels := map[string]string{"operation": operation}
		var verr *validation.Error
		if errors.As(err, &verr) {
			labels["field"] = verr.Field
		}
		d.telemetry.RecordCounter("validation_failures_total", labels)
	}
	return err
}
