package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/victoralfred/bazelshim/dispatch"
)

// dispatchRequest wires a shim, routes one request through it, prints
// the response body, and propagates the tool's exit code.
func dispatchRequest(cmd *cobra.Command, req dispatch.Request) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shim, err := newShim(ctx)
	if err != nil {
		return err
	}
	defer shim.Shutdown(context.Background()) //nolint:errcheck

	resp, err := shim.Dispatch(ctx, req)
	if err != nil {
		return err
	}

	if resp.Text != "" {
		fmt.Fprintln(os.Stdout, resp.Text)
	}
	if resp.ExitCode != 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s exited with code %d", req.Op(), resp.ExitCode)
	}
	return nil
}
