package cmd

import (
	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

var buildFlags []string

var buildCmd = &cobra.Command{
	Use:   "build <target>...",
	Short: "Build one or more targets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringArrayVar(&buildFlags, "flag", nil, "extra tool flag (repeatable)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	return dispatchRequest(cmd, dispatch.BuildRequest{Targets: args, Flags: buildFlags})
}
