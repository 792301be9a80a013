package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/gobiview/internal/app"
)

// Version is set at build time.
var Version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gobiview: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &app.Options{}

	root := &cobra.Command{
		Use:   "gobiview",
		Short: "Terminal viewer for GoBI reports",
		Long: `gobiview opens a GoBI report in the terminal.

Columns can be sorted, reordered and hidden; the layout is saved between
sessions. Rows open in a detail panel that can be docked beside the table.`,
		Example: `  # Open report 1 on the default server
  gobiview --report 1

  # Poll a remote server every 10 seconds
  gobiview --server http://gobi:8080 --report "/report?id=2" --poll 10`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default: ~/.config/gobiview/config.toml)")
	flags.StringVar(&opts.Server, "server", "", "report server address")
	flags.StringVar(&opts.Storage, "storage", "", "settings backend (file|sqlite)")
	flags.StringVar(&opts.StoragePath, "storage-path", "", "settings file or database path")
	root.Flags().StringVar(&opts.Report, "report", "", "report id or path")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "refresh interval in seconds, negative disables polling")

	_ = root.RegisterFlagCompletionFunc("storage", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"file", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newSettingsCmd(opts))
	root.AddCommand(newDemoCmd())
	root.AddCommand(newLogsCmd(opts))
	return root
}
