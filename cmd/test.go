package cmd

import (
	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

var testFlags []string

var testCmd = &cobra.Command{
	Use:   "test [target]...",
	Short: "Run tests; with no targets, runs the whole workspace",
	RunE:  runTest,
}

func init() {
	testCmd.Flags().StringArrayVar(&testFlags, "flag", nil, "extra tool flag (repeatable)")
}

func runTest(cmd *cobra.Command, args []string) error {
	return dispatchRequest(cmd, dispatch.TestRequest{Targets: args, Flags: testFlags})
}
