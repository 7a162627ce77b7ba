package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tmulin/wire/internal/buildinfo"
	"github.com/tmulin/wire/internal/infra/logger"
)

// Execute runs the root command. SIGINT/SIGTERM cancel an in-flight load.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wire",
		Short:        "wire: locate and load .wire profile files for a proto schema",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable verbose logging to .wire/logs/wire.log")

	cmd.AddCommand(
		candidatesCmd(),
		loadCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return err
		},
	}
}

// startLogging initializes the file logger under the workspace and returns its cleanup.
// Logging is best effort: a workspace that cannot hold logs still runs.
func startLogging(cmd *cobra.Command, ws *workspaceCtx) func() {
	debug, _ := cmd.Flags().GetBool("debug")

	cleanup, err := logger.Setup(logger.Config{
		Root:  ws.root,
		Dir:   ws.cfg.Paths.LogsDir,
		Debug: debug,
	})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}
