package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/gobiview/internal/app"
	"github.com/five82/gobiview/internal/logtail"
)

func newLogsCmd(opts *app.Options) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the gobiview log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var minLevel slog.Level
			if err := minLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
				return fmt.Errorf("parse level: %w", err)
			}
			cfg, err := app.LoadConfig(*opts)
			if err != nil {
				return err
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range logtail.ColorizeLines(logtail.Filter(tail, minLevel)) {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read, 0 for all")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level (debug|info|warn|error)")
	return cmd
}
