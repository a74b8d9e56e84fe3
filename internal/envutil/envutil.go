// Package envutil builds the environment passed to tool subprocesses.
package envutil

import (
	"fmt"
	"os"
	"sort"
)

// passthroughVars are the parent environment variables the tool needs.
// Bazel requires HOME (output user root), PATH, and USER; TMPDIR and the
// locale variables keep its output decodable.
var passthroughVars = []string{
	"PATH",
	"HOME",
	"USER",
	"TMPDIR",
	"LANG",
	"LC_ALL",
}

// ToolEnvironment returns the filtered environment for a tool subprocess.
// Only allowlisted parent variables pass through; everything else is
// dropped so caller-controlled variables cannot reach the tool.
func ToolEnvironment() map[string]string {
	env := map[string]string{
		"LANG":   "C.UTF-8",
		"LC_ALL": "C.UTF-8",
	}
	for _, key := range passthroughVars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			env[key] = v
		}
	}
	return env
}

// Merge combines base and override maps; overrides take precedence.
func Merge(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		result[k] = v
	}
	return result
}

// Build converts an environment map to the KEY=value slice form expected
// by the process runner, in deterministic order.
func Build(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}
