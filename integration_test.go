//go:build integration

package bazelshim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/victoralfred/bazelshim/executor"
	"github.com/victoralfred/bazelshim/hooks"
)

func newTestWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "MODULE.bazel"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = false
	return cfg
}

// TestIntegration_CompleteWorkflow exercises the full wiring: workspace
// validation, dispatch, streaming, the target cache, and shutdown. The
// tool is stubbed with /bin/echo, which reflects the argument vector.
func TestIntegration_CompleteWorkflow(t *testing.T) {
	t.Setenv(executor.EnvToolPath, "/bin/echo")
	t.Setenv(executor.EnvLauncher, "")
	ctx := context.Background()

	var lines []Line
	shim, err := New(newTestWorkspace(t),
		WithConfig(testConfig()),
		WithSink(func(line Line) { lines = append(lines, line) }),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() {
		if shutdownErr := shim.Shutdown(context.Background()); shutdownErr != nil {
			t.Errorf("Shutdown failed: %v", shutdownErr)
		}
	}()

	resp, err := shim.Dispatch(ctx, QueryRequest{Expr: "deps(//src:app)"})
	if err != nil {
		t.Fatalf("Query dispatch failed: %v", err)
	}
	if resp.Text != "query deps(//src:app)" {
		t.Errorf("Unexpected query response: %q", resp.Text)
	}

	resp, err = shim.Dispatch(ctx, BuildRequest{Targets: []string{"//src:app"}})
	if err != nil {
		t.Fatalf("Build dispatch failed: %v", err)
	}
	if resp.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", resp.ExitCode)
	}
	if len(lines) == 0 {
		t.Error("Expected streamed build output")
	}

	resp, err = shim.Dispatch(ctx, ListTargetsRequest{})
	if err != nil {
		t.Fatalf("ListTargets dispatch failed: %v", err)
	}
	if !strings.Contains(resp.Text, "workspaceRoot") {
		t.Errorf("Expected snapshot JSON, got %q", resp.Text)
	}
	if shim.Cache.Current() == nil {
		t.Error("Expected populated target cache after listing")
	}
}

func TestIntegration_HooksRunInPriorityOrder(t *testing.T) {
	t.Setenv(executor.EnvToolPath, "/bin/echo")
	t.Setenv(executor.EnvLauncher, "")

	var order []string
	pre := func(name string) func(context.Context, *executor.Invocation) error {
		return func(context.Context, *executor.Invocation) error {
			order = append(order, name)
			return nil
		}
	}

	shim, err := New(newTestWorkspace(t),
		WithConfig(testConfig()),
		WithHook(&hooks.FuncHook{HookName: "second", HookPriority: 20, Pre: pre("second")}),
		WithHook(&hooks.FuncHook{HookName: "first", HookPriority: 10, Pre: pre("first")}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer shim.Shutdown(context.Background()) //nolint:errcheck

	if _, err := shim.Dispatch(context.Background(), QueryRequest{Expr: "deps(//src:app)"}); err != nil {
		t.Fatalf("Query dispatch failed: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected hooks in priority order, got %v", order)
	}
}

func TestIntegration_RejectsNonWorkspace(t *testing.T) {
	_, err := New(t.TempDir(), WithConfig(testConfig()))
	if !errors.Is(err, ErrNotWorkspace) {
		t.Errorf("Expected ErrNotWorkspace, got %v", err)
	}
}

func TestIntegration_ValidationBlocksHostileInput(t *testing.T) {
	t.Setenv(executor.EnvToolPath, "/bin/echo")
	t.Setenv(executor.EnvLauncher, "")

	shim, err := New(newTestWorkspace(t), WithConfig(testConfig()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer shim.Shutdown(context.Background()) //nolint:errcheck

	_, err = shim.Dispatch(context.Background(), BuildRequest{
		Targets: []string{"//src:app; rm -rf /"},
	})
	if !errors.Is(err, ErrForbiddenCharacter) {
		t.Errorf("Expected ErrForbiddenCharacter, got %v", err)
	}
}
