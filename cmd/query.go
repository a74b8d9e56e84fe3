package cmd

import (
	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

var queryFlags []string

var queryCmd = &cobra.Command{
	Use:   "query <expression>",
	Short: "Run a query expression against the workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringArrayVar(&queryFlags, "flag", nil, "extra tool flag (repeatable)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	return dispatchRequest(cmd, dispatch.QueryRequest{Expr: args[0], Flags: queryFlags})
}
