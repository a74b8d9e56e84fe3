package executor

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/victoralfred/bazelshim/internal/envutil"
	internalexec "github.com/victoralfred/bazelshim/internal/exec"
	"github.com/victoralfred/bazelshim/validation"
)

// RateLimiter controls invocation rate per operation verb.
type RateLimiter interface {
	// Wait blocks until an invocation is allowed or the context ends.
	Wait(ctx context.Context, operation string) error
}

// Telemetry provides observability for invocations.
type Telemetry interface {
	// StartSpan starts a trace span; the returned func ends it.
	StartSpan(ctx context.Context, name string) (context.Context, func())

	// RecordCounter increments a counter.
	RecordCounter(name string, labels map[string]string)

	// RecordDuration records a duration in seconds.
	RecordDuration(name string, seconds float64, labels map[string]string)
}

// Hook defines invocation lifecycle extension points.
type Hook interface {
	// PreInvoke is called before the process is spawned. An error
	// aborts the invocation.
	PreInvoke(ctx context.Context, inv *Invocation) error

	// PostInvoke is called after the invocation completes or fails to
	// spawn (result.Ran is false in the latter case).
	PostInvoke(ctx context.Context, inv *Invocation, result *Result) error
}

// Executor builds argument vectors from validated inputs and invokes the
// tool. The executable is resolved once at build time via the fixed
// override precedence, never from request data. The validated parameter
// types come from the validation package; the executor trusts them and
// performs no content re-checking.
type Executor struct {
	runner        *internalexec.Runner
	binary        string
	workspaceRoot string
	env           []string
	rateLimiter   RateLimiter
	telemetry     Telemetry
	hooks         []Hook
}

// Builder creates configured Executor instances.
type Builder struct {
	workspaceRoot string
	rateLimiter   RateLimiter
	telemetry     Telemetry
	hooks         []Hook
}

// NewBuilder creates a new executor builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithWorkspace sets the workspace root all invocations run in. The
// directory is assumed to have already passed workspace validation.
func (b *Builder) WithWorkspace(root string) *Builder {
	b.workspaceRoot = root
	return b
}

// WithRateLimiter sets the rate limiter.
func (b *Builder) WithRateLimiter(rl RateLimiter) *Builder {
	b.rateLimiter = rl
	return b
}

// WithTelemetry sets the telemetry provider.
func (b *Builder) WithTelemetry(t Telemetry) *Builder {
	b.telemetry = t
	return b
}

// WithHooks adds invocation hooks.
func (b *Builder) WithHooks(hooks ...Hook) *Builder {
	b.hooks = append(b.hooks, hooks...)
	return b
}

// Build creates the executor, resolving the tool executable.
func (b *Builder) Build() (*Executor, error) {
	if b.workspaceRoot == "" {
		return nil, ErrNoWorkspace
	}
	return &Executor{
		runner:        internalexec.NewRunner(),
		binary:        ResolveTool(),
		workspaceRoot: b.workspaceRoot,
		env:           envutil.Build(envutil.ToolEnvironment()),
		rateLimiter:   b.rateLimiter,
		telemetry:     b.telemetry,
		hooks:         b.hooks,
	}, nil
}

// WorkspaceRoot returns the workspace root invocations run in.
func (e *Executor) WorkspaceRoot() string {
	return e.workspaceRoot
}

// Handle is a live streaming invocation. Build, test, run, and setup
// operations return a Handle; the caller consumes it with Stream.
type Handle struct {
	exec *Executor
	inv  *Invocation
	proc *internalexec.Process
}

// Invocation returns the invocation this handle belongs to.
func (h *Handle) Invocation() *Invocation {
	return h.inv
}

// Pid returns the subprocess identifier.
func (h *Handle) Pid() int {
	return h.proc.Pid()
}

// Kill terminates the subprocess. A killed process reports a non-zero
// exit code through Stream rather than hanging.
func (h *Handle) Kill() error {
	return h.proc.Kill()
}

// Stream drains both output channels to the sink and, only after both
// are fully drained, waits for process exit. It returns the invocation
// result carrying the exit code; a non-zero exit is not an error.
func (h *Handle) Stream(ctx context.Context, sink Sink) (*Result, error) {
	pumpStreams(h.proc.Stdout(), h.proc.Stderr(), sink)

	code, duration, err := h.proc.Wait()
	result := &Result{
		InvocationID: h.inv.ID,
		Op:           h.inv.Op,
		ExitCode:     code,
		Ran:          true,
		Duration:     duration,
	}
	h.exec.finish(ctx, h.inv, result)
	return result, err
}

// Query executes a query to completion and returns the non-empty trimmed
// lines of standard output, order and duplicates preserved. A non-zero
// exit returns a *QueryError carrying the decoded standard-error text.
func (e *Executor) Query(ctx context.Context, expr validation.Query, flags []validation.Flag) ([]string, error) {
	inv := newInvocation(OpQuery, e.binary, e.workspaceRoot, queryArgs(expr, flags))

	ctx, end, err := e.begin(ctx, inv)
	if err != nil {
		return nil, err
	}
	defer end()

	runResult, err := e.runner.Run(ctx, e.runConfig(inv))
	if err != nil {
		e.finish(ctx, inv, &Result{InvocationID: inv.ID, Op: inv.Op, Ran: false})
		return nil, &SpawnError{Binary: inv.Binary, Err: err}
	}

	result := &Result{
		InvocationID: inv.ID,
		Op:           inv.Op,
		ExitCode:     runResult.ExitCode,
		Ran:          true,
		Duration:     runResult.Duration,
	}
	e.finish(ctx, inv, result)

	if runResult.ExitCode != 0 {
		return nil, &QueryError{
			ExitCode: runResult.ExitCode,
			Stderr:   decodeText(string(runResult.Stderr)),
		}
	}

	return splitLines(decodeText(string(runResult.Stdout))), nil
}

// Build starts a build of the given targets and returns a streaming
// handle. It never waits for completion.
func (e *Executor) Build(ctx context.Context, targets []validation.Target, flags []validation.Flag) (*Handle, error) {
	inv := newInvocation(OpBuild, e.binary, e.workspaceRoot, targetArgs("build", targets, flags))
	return e.start(ctx, inv)
}

// Test starts a test run of the given targets and returns a streaming
// handle.
func (e *Executor) Test(ctx context.Context, targets []validation.Target, flags []validation.Flag) (*Handle, error) {
	inv := newInvocation(OpTest, e.binary, e.workspaceRoot, targetArgs("test", targets, flags))
	return e.start(ctx, inv)
}

// Run starts a single binary target with runtime arguments forwarded
// after the -- separator and returns a streaming handle.
func (e *Executor) Run(ctx context.Context, target validation.Target, flags []validation.Flag, runtimeArgs []validation.RuntimeArg) (*Handle, error) {
	inv := newInvocation(OpRun, e.binary, e.workspaceRoot, runArgs(target, flags, runtimeArgs))
	return e.start(ctx, inv)
}

// RunScript starts a fixed workspace setup script and returns a streaming
// handle. The script path must be workspace-relative and local; it is
// invoked as a direct argument vector, never through a composed command
// string. Callers pass only fixed, known script paths.
func (e *Executor) RunScript(ctx context.Context, script string) (*Handle, error) {
	if script == "" || filepath.IsAbs(script) || !filepath.IsLocal(script) {
		return nil, ErrScriptNotAllowed
	}
	abs := filepath.Join(e.workspaceRoot, script)
	inv := newInvocation(OpSetup, "bash", e.workspaceRoot, []string{abs})
	return e.start(ctx, inv)
}

func (e *Executor) start(ctx context.Context, inv *Invocation) (*Handle, error) {
	ctx, end, err := e.begin(ctx, inv)
	if err != nil {
		return nil, err
	}
	// The span for a streaming operation covers the spawn only; the
	// process outlives this call by design.
	defer end()

	proc, err := e.runner.Start(ctx, e.runConfig(inv))
	if err != nil {
		e.finish(ctx, inv, &Result{InvocationID: inv.ID, Op: inv.Op, Ran: false})
		return nil, &SpawnError{Binary: inv.Binary, Err: err}
	}

	return &Handle{exec: e, inv: inv, proc: proc}, nil
}

// begin applies rate limiting, opens a span, and runs pre-invoke hooks.
func (e *Executor) begin(ctx context.Context, inv *Invocation) (context.Context, func(), error) {
	if e.rateLimiter != nil {
		if err := e.rateLimiter.Wait(ctx, inv.Op.String()); err != nil {
			return ctx, nil, err
		}
	}

	end := func() {}
	if e.telemetry != nil {
		ctx, end = e.telemetry.StartSpan(ctx, "executor."+inv.Op.String())
	}

	for _, hook := range e.hooks {
		if err := hook.PreInvoke(ctx, inv); err != nil {
			end()
			return ctx, nil, err
		}
	}

	return ctx, end, nil
}

// finish records metrics and runs post-invoke hooks. Hook errors are not
// propagated: the invocation outcome is already determined.
func (e *Executor) finish(ctx context.Context, inv *Invocation, result *Result) {
	if e.telemetry != nil {
		labels := map[string]string{
			"operation": inv.Op.String(),
			"exit_code": strconv.Itoa(result.ExitCode),
			"ran":       strconv.FormatBool(result.Ran),
		}
		e.telemetry.RecordCounter("invocations_total", labels)
		e.telemetry.RecordDuration("invocation_duration_seconds", result.Duration.Seconds(), labels)
	}

	for _, hook := range e.hooks {
		//nolint:errcheck // post-invoke observation must not mask the result
		_ = hook.PostInvoke(ctx, inv, result)
	}
}

func (e *Executor) runConfig(inv *Invocation) *internalexec.RunConfig {
	return &internalexec.RunConfig{
		Binary:     inv.Binary,
		Args:       inv.Args,
		Env:        e.env,
		WorkingDir: inv.WorkspaceRoot,
	}
}

// splitLines returns the non-empty trimmed lines of s in order,
// duplicates preserved. Deduplication is the caller's responsibility.
func splitLines(s string) []string {
	lines := make([]string, 0, 64)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
