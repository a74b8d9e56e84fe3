package executor

import "os"

// Tool resolution environment variables, in precedence order. The
// executable is never taken from caller-supplied request data.
const (
	// EnvToolPath pins an explicit tool executable path.
	EnvToolPath = "BAZEL_PATH"

	// EnvLauncher selects an alternate launcher (typically bazelisk).
	EnvLauncher = "BAZELISK"

	// DefaultTool is the bare command name used when no override is set,
	// resolved through PATH by the process runner.
	DefaultTool = "bazel"
)

// ResolveTool returns the tool executable to invoke: EnvToolPath if set,
// else EnvLauncher, else DefaultTool.
func ResolveTool() string {
	if p := os.Getenv(EnvToolPath); p != "" {
		return p
	}
	if p := os.Getenv(EnvLauncher); p != "" {
		return p
	}
	return DefaultTool
}
