package executor

import (
	"reflect"
	"testing"

	"github.com/victoralfred/bazelshim/validation"
)

func TestQueryArgs(t *testing.T) {
	args := queryArgs("deps(//src:app)", []validation.Flag{"--output=label", "--keep_going"})

	want := []string{"query", "deps(//src:app)", "--output=label", "--keep_going"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("queryArgs = %v, want %v", args, want)
	}
}

func TestQueryArgs_NoFlags(t *testing.T) {
	args := queryArgs("deps(//src:app)", nil)

	want := []string{"query", "deps(//src:app)"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("queryArgs = %v, want %v", args, want)
	}
}

func TestTargetArgs(t *testing.T) {
	targets := []validation.Target{"//src:app", "//src:tool"}
	flags := []validation.Flag{"--config=opt"}

	args := targetArgs("build", targets, flags)

	want := []string{"build", "//src:app", "//src:tool", "--config=opt"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("targetArgs = %v, want %v", args, want)
	}
}

func TestRunArgs_SeparatorOrdering(t *testing.T) {
	args := runArgs("//src:app", []validation.Flag{"--config=opt"}, []validation.RuntimeArg{"--port=8080"})

	want := []string{"run", "//src:app", "--config=opt", "--", "--port=8080"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("runArgs = %v, want %v", args, want)
	}
}

func TestRunArgs_SeparatorAlwaysPresent(t *testing.T) {
	// The separator is emitted even with no runtime arguments, so a
	// tool flag can never be reinterpreted as a binary argument or vice
	// versa regardless of caller input.
	args := runArgs("//src:app", nil, nil)

	want := []string{"run", "//src:app", "--"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("runArgs = %v, want %v", args, want)
	}
}

func TestRunArgs_FlagsNeverAfterSeparator(t *testing.T) {
	args := runArgs("//src:app", []validation.Flag{"--config=opt", "--jobs=4"}, []validation.RuntimeArg{"serve", "--debug"})

	sep := -1
	for i, a := range args {
		if a == "--" {
			sep = i
			break
		}
	}
	if sep == -1 {
		t.Fatal("Expected separator in argument vector")
	}
	for _, a := range args[:sep] {
		if a == "serve" || a == "--debug" {
			t.Errorf("Runtime argument %q appears before separator", a)
		}
	}
	for _, a := range args[sep+1:] {
		if a == "--config=opt" || a == "--jobs=4" {
			t.Errorf("Tool flag %q appears after separator", a)
		}
	}
}

func TestNewInvocation_UniqueIDs(t *testing.T) {
	a := newInvocation(OpBuild, "bazel", "/ws", []string{"build", "//..."})
	b := newInvocation(OpBuild, "bazel", "/ws", []string{"build", "//..."})

	if a.ID == "" || b.ID == "" {
		t.Fatal("Expected non-empty invocation IDs")
	}
	if a.ID == b.ID {
		t.Error("Expected distinct invocation IDs")
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpQuery, "query"},
		{OpBuild, "build"},
		{OpTest, "test"},
		{OpRun, "run"},
		{OpSetup, "setup"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Operation(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
