// Package exec provides the internal subprocess wrapper.
// This is the ONLY package in the entire module that imports os/exec.
// All tool invocation MUST go through this package.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"
	"time"
)

// ErrNotStarted indicates the process could not be spawned at all.
var ErrNotStarted = errors.New("process not started")

// Runner invokes subprocesses using os/exec.CommandContext.
// No shell is ever involved: the binary and arguments are always passed
// as a discrete argument vector.
type Runner struct{}

// NewRunner creates a new subprocess runner.
func NewRunner() *Runner {
	return &Runner{}
}

// RunConfig contains configuration for one subprocess invocation.
type RunConfig struct {
	// Binary is the executable path or command name.
	Binary string

	// Args are the command arguments (excluding the binary name).
	Args []string

	// Env is the environment. If nil, the process inherits the parent
	// environment filtered by the caller (see internal/envutil).
	Env []string

	// WorkingDir is the working directory for the invocation.
	WorkingDir string
}

// RunResult contains the outcome of a run-to-completion invocation.
type RunResult struct {
	// ExitCode is the process exit code.
	ExitCode int

	// Signal is the signal that terminated the process, if any.
	Signal syscall.Signal

	// Stdout contains captured standard output.
	Stdout []byte

	// Stderr contains captured standard error.
	Stderr []byte

	// Duration is the wall clock time of the invocation.
	Duration time.Duration
}

// Run executes a command to completion, capturing both output channels.
// A non-zero exit code is NOT an error at this layer: the result carries
// the exit code and the error return is reserved for spawn failures and
// context cancellation before start.
func (r *Runner) Run(ctx context.Context, config *RunConfig) (*RunResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// #nosec G204 -- binary and arguments are validated upstream and passed
	// as discrete arguments, never interpreted by a shell
	cmd := exec.CommandContext(ctx, config.Binary, config.Args...)

	if len(config.Env) > 0 {
		cmd.Env = config.Env
	}
	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}
	cmd.SysProcAttr = defaultSysProcAttr()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	runErr := cmd.Run()
	result := &RunResult{
		Duration: time.Since(start),
		Stdout:   stdoutBuf.Bytes(),
		Stderr:   stderrBuf.Bytes(),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process never ran.
			return nil, runErr
		}
	}

	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
		if sig, ok := extractSignal(cmd.ProcessState.Sys()); ok {
			result.Signal = sig
		}
	}

	return result, nil
}

// Process is a live subprocess handle with piped output channels.
// The caller must fully drain Stdout and Stderr before calling Wait:
// os/exec closes the pipes as part of Wait, and a child blocked on a
// full pipe buffer would otherwise deadlock against a waiting parent.
type Process struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  io.ReadCloser
	started time.Time
}

// Start spawns a command for streaming consumption. It never waits.
func (r *Runner) Start(ctx context.Context, config *RunConfig) (*Process, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// #nosec G204 -- binary and arguments are validated upstream
	cmd := exec.CommandContext(ctx, config.Binary, config.Args...)

	if len(config.Env) > 0 {
		cmd.Env = config.Env
	}
	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}
	cmd.SysProcAttr = defaultSysProcAttr()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &Process{
		cmd:     cmd,
		stdout:  stdout,
		stderr:  stderr,
		started: time.Now(),
	}, nil
}

// Stdout returns the standard output channel of the process.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stderr returns the standard error channel of the process.
func (p *Process) Stderr() io.Reader {
	return p.stderr
}

// Pid returns the process identifier.
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Wait waits for the process to exit and returns its exit code and wall
// duration. Both output channels must already be drained to end-of-stream.
// A terminated process reports its non-zero exit code, not an error; the
// error return is reserved for wait failures.
func (p *Process) Wait() (int, time.Duration, error) {
	err := p.cmd.Wait()
	duration := time.Since(p.started)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), duration, nil
		}
		return -1, duration, err
	}
	return 0, duration, nil
}

// Kill terminates the process.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return ErrNotStarted
	}
	return p.cmd.Process.Kill()
}
