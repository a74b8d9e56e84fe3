// Package bazelshim exposes Bazel commands to untrusted callers through
// a validated, shell-free execution layer.
//
// Bazelshim sits between a caller supplying target labels, flags, query
// expressions, and runtime arguments, and the local Bazel toolchain.
// Caller-supplied strings are treated as hostile: every input is
// validated against an allowlist grammar and a shell-metacharacter
// denylist before it can reach an argument vector, and the tool is
// always spawned as a discrete argument vector against a resolved
// executable, never through a shell.
//
// # Components
//
//   - validation: pure input validation, the security boundary
//   - executor: argument vector construction and subprocess invocation
//   - targets: target discovery and the single snapshot cache
//   - dispatch: typed request routing over the executor
//   - workspace: workspace root recognition
//   - config: configuration with YAML loading
//   - observability: OpenTelemetry metrics/tracing and audit logging
//   - resilience: per-operation rate limiting
//   - pool: bounded worker pool for concurrent discovery
//   - hooks: invocation lifecycle extension points
//
// # Basic Usage
//
//	shim, err := bazelshim.New("/path/to/workspace")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shim.Shutdown(context.Background())
//
//	resp, err := shim.Dispatch(ctx, bazelshim.QueryRequest{
//	    Expr: "deps(//src:app)",
//	})
//
// # Security Model
//
// Validation is two-layer: obviously hostile input (shell
// metacharacters, oversized values, grammar mismatches) is rejected
// locally before any process is spawned, and semantic validity is left
// to the tool itself at execution time. The tool executable is resolved
// from a fixed override precedence (BAZEL_PATH, then BAZELISK, then the
// bare command name) and never from request data.
package bazelshim
