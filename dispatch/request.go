// Package dispatch routes named operations to the execution subsystem.
// Each operation has its own request payload type; dispatch is over the
// request variant, not over operation-name strings.
package dispatch

// Op identifies a dispatchable operation.
type Op int

const (
	// OpListTargets returns the discovered target snapshot.
	OpListTargets Op = iota
	// OpQuery runs a query expression.
	OpQuery
	// OpBuild builds targets.
	OpBuild
	// OpTest runs test targets.
	OpTest
	// OpRun launches a binary target.
	OpRun
	// OpSetup runs the workspace setup scripts.
	OpSetup
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpListTargets:
		return "list_targets"
	case OpQuery:
		return "query"
	case OpBuild:
		return "build"
	case OpTest:
		return "test"
	case OpRun:
		return "run"
	case OpSetup:
		return "setup"
	default:
		return "unknown"
	}
}

// Request is one operation request. Implementations carry raw
// caller-supplied strings; the dispatcher validates them before anything
// reaches the executor.
type Request interface {
	Op() Op
}

// ListTargetsRequest returns the cached target snapshot, optionally
// forcing a fresh discovery pass.
type ListTargetsRequest struct {
	Refresh bool
}

// Op implements Request.
func (ListTargetsRequest) Op() Op { return OpListTargets }

// QueryRequest runs a query expression with optional flags.
type QueryRequest struct {
	Expr  string
	Flags []string
}

// Op implements Request.
func (QueryRequest) Op() Op { return OpQuery }

// BuildRequest builds one or more targets with streamed output.
type BuildRequest struct {
	Targets []string
	Flags   []string
}

// Op implements Request.
func (BuildRequest) Op() Op { return OpBuild }

// TestRequest runs test targets with streamed output. An empty target
// list defaults to the all-targets wildcard.
type TestRequest struct {
	Targets []string
	Flags   []string
}

// Op implements Request.
func (TestRequest) Op() Op { return OpTest }

// RunRequest launches a single binary target. Args are forwarded to the
// binary after the argument separator.
type RunRequest struct {
	Target string
	Flags  []string
	Args   []string
}

// Op implements Request.
func (RunRequest) Op() Op { return OpRun }

// SetupRequest runs the fixed workspace setup scripts.
type SetupRequest struct {
	SkipInstall bool
}

// Op implements Request.
func (SetupRequest) Op() Op { return OpSetup }

// Response is the outcome of a dispatched operation.
type Response struct {
	// Text is the human-readable result body.
	Text string

	// ExitCode is the tool exit code for operations that ran it.
	ExitCode int
}
