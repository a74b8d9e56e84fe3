package executor

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrSpawnFailed indicates the tool process could not be started.
	ErrSpawnFailed = errors.New("tool could not be spawned")

	// ErrQueryFailed indicates a query ran and exited non-zero.
	ErrQueryFailed = errors.New("query failed")

	// ErrNoWorkspace indicates the executor was built without a
	// workspace root.
	ErrNoWorkspace = errors.New("workspace root not configured")

	// ErrScriptNotAllowed indicates a setup script path outside the
	// workspace or not on the fixed script list.
	ErrScriptNotAllowed = errors.New("script not allowed")
)

// QueryError is returned when a query operation exits non-zero. It
// carries the decoded standard-error text of the tool, which is the only
// useful diagnostic a query failure produces.
type QueryError struct {
	// ExitCode is the tool's exit code.
	ExitCode int

	// Stderr is the decoded standard-error output.
	Stderr string
}

// Error returns the failure message.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed (exit code %d): %s", e.ExitCode, e.Stderr)
}

// Unwrap returns ErrQueryFailed for errors.Is matching.
func (e *QueryError) Unwrap() error {
	return ErrQueryFailed
}

// SpawnError is returned when the tool process never started.
type SpawnError struct {
	// Binary is the executable that failed to start.
	Binary string

	// Err is the underlying start failure.
	Err error
}

// Error returns the failure message.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %s: %v", e.Binary, e.Err)
}

// Unwrap returns the underlying error chain.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches ErrSpawnFailed or the underlying
// start failure.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawnFailed || errors.Is(e.Err, target)
}
