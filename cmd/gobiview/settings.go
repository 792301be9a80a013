package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/gobiview/internal/app"
)

func newSettingsCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or clear the saved table layout",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved layout and theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*opts)
			if err != nil {
				return err
			}
			out, err := app.DescribeSettings(cfg, commandLogger(cmd))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove the saved layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*opts)
			if err != nil {
				return err
			}
			if err := app.ResetSettings(cfg, commandLogger(cmd)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Saved layout removed.")
			return nil
		},
	})

	return cmd
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
}
