package cmd

import (
	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

var targetsRefresh bool

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the workspace's targets grouped by kind",
	RunE:  runTargets,
}

func init() {
	targetsCmd.Flags().BoolVar(&targetsRefresh, "refresh", false, "invalidate the cache and rediscover")
}

func runTargets(cmd *cobra.Command, args []string) error {
	return dispatchRequest(cmd, dispatch.ListTargetsRequest{Refresh: targetsRefresh})
}
