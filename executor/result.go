package executor

import "time"

// Result is the outcome of one streaming tool invocation. A Result with
// Ran set records that the process actually executed; the exit code then
// distinguishes success from failure. A failed build or test is observed
// through the exit code, not an error, since its output has already been
// fully streamed by the time failure is known.
type Result struct {
	// InvocationID identifies the invocation in audit logs and traces.
	InvocationID string

	// Op is the operation kind.
	Op Operation

	// ExitCode is the process exit code. Undefined when Ran is false.
	ExitCode int

	// Ran reports whether the process executed at all.
	Ran bool

	// Duration is the wall clock time from start to exit.
	Duration time.Duration
}

// Success reports whether the invocation ran and exited zero.
func (r *Result) Success() bool {
	return r.Ran && r.ExitCode == 0
}
