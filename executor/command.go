// Package executor builds argument vectors for tool operations from
// validated inputs and invokes the tool as a subprocess, with no shell
// interpretation at any point.
package executor

import (
	"github.com/google/uuid"

	"github.com/victoralfred/bazelshim/validation"
)

// Operation identifies a tool operation kind.
type Operation int

const (
	// OpQuery runs a query expression to completion.
	OpQuery Operation = iota
	// OpBuild builds targets with streamed output.
	OpBuild
	// OpTest runs test targets with streamed output.
	OpTest
	// OpRun launches a single binary target with streamed output.
	OpRun
	// OpSetup runs a workspace setup script with streamed output.
	OpSetup
)

// String returns the tool verb for the operation.
func (op Operation) String() string {
	switch op {
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

// Invocation is one concrete tool invocation: the resolved executable and
// the complete argument vector. Invocations are immutable once built.
type Invocation struct {
	// ID uniquely identifies the invocation for audit and tracing.
	ID string

	// Op is the operation kind.
	Op Operation

	// Binary is the resolved executable (never caller-supplied).
	Binary string

	// Args is the full argument vector after the binary name.
	Args []string

	// WorkspaceRoot is the working directory for the invocation.
	WorkspaceRoot string
}

func newInvocation(op Operation, binary, root string, args []string) *Invocation {
	return &Invocation{
		ID:            uuid.New().String(),
		Op:            op,
		Binary:        binary,
		Args:          args,
		WorkspaceRoot: root,
	}
}

// queryArgs builds the argument vector for a query operation:
// query <expr> [flags...]
func queryArgs(expr validation.Query, flags []validation.Flag) []string {
	args := make([]string, 0, 2+len(flags))
	args = append(args, "query", string(expr))
	for _, f := range flags {
		args = append(args, string(f))
	}
	return args
}

// targetArgs builds the argument vector for build and test operations:
// <verb> <targets...> [flags...]
func targetArgs(verb string, targets []validation.Target, flags []validation.Flag) []string {
	args := make([]string, 0, 1+len(targets)+len(flags))
	args = append(args, verb)
	for _, t := range targets {
		args = append(args, string(t))
	}
	for _, f := range flags {
		args = append(args, string(f))
	}
	return args
}

// runArgs builds the argument vector for a run operation:
// run <target> [flags...] -- [runtimeArgs...]
// Run flags must precede the separator and binary-destined arguments must
// follow it; the separator position is fixed here and cannot be moved by
// caller input.
func runArgs(target validation.Target, flags []validation.Flag, runtimeArgs []validation.RuntimeArg) []string {
	args := make([]string, 0, 3+len(flags)+len(runtimeArgs))
	args = append(args, "run", string(target))
	for _, f := range flags {
		args = append(args, string(f))
	}
	args = append(args, "--")
	for _, a := range runtimeArgs {
		args = append(args, string(a))
	}
	return args
}
