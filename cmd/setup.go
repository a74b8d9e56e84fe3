package cmd

import (
	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

var setupSkipInstall bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the workspace's cache and install setup scripts",
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupSkipInstall, "skip-install", false, "skip the dependency install script")
}

func runSetup(cmd *cobra.Command, args []string) error {
	return dispatchRequest(cmd, dispatch.SetupRequest{SkipInstall: setupSkipInstall})
}
