// Package cmd implements the bazelshim CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim"
	"github.com/victoralfred/bazelshim/config"
	"github.com/victoralfred/bazelshim/executor"
)

var (
	repoRoot string
	cfgFile  string
	quiet    bool

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "bazelshim",
	Short: "Guarded shim around the Bazel build tool",
	Long: "bazelshim validates every target, flag, and query expression before " +
		"handing it to Bazel, streams build output line by line, and keeps a " +
		"cached snapshot of the workspace's targets.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoRoot, "repo", ".", "workspace root directory")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress streamed tool output")

	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
}

// newShim wires a shim for the configured workspace root. Streamed tool
// output goes to stdout/stderr unless --quiet is set.
func newShim(ctx context.Context) (*bazelshim.Shim, error) {
	opts := []bazelshim.Option{}
	if cfgFile != "" {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		cfg, err := bazelshim.LoadConfig(ctx, filepath.Dir(abs), filepath.Base(abs))
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		opts = append(opts, bazelshim.WithConfig(*cfg))
	} else {
		cfg := config.DefaultConfig()
		cfg.Audit.Enabled = false
		opts = append(opts, bazelshim.WithConfig(cfg))
	}
	if !quiet {
		opts = append(opts, bazelshim.WithSink(func(line executor.Line) {
			if line.Channel == executor.ChannelStderr {
				fmt.Fprintln(os.Stderr, line.Text)
				return
			}
			fmt.Fprintln(os.Stdout, line.Text)
		}))
	}
	return bazelshim.New(repoRoot, opts...)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("bazelshim %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
