package cmd

import (
	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

var runFlags []string

var runCmd = &cobra.Command{
	Use:   "run <target> [-- arg...]",
	Short: "Build and run a single executable target",
	Long: "Run builds the target and executes it. Arguments after -- are " +
		"passed to the built binary, not to the build tool.",
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringArrayVar(&runFlags, "flag", nil, "extra tool flag (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	return dispatchRequest(cmd, dispatch.RunRequest{
		Target: args[0],
		Flags:  runFlags,
		Args:   args[1:],
	})
}
