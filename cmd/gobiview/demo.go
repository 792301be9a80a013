package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/gobiview/internal/demo"
)

func newDemoCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve built-in sample reports",
		Long: `Start a report server with two sample reports. It answers full page
and partial table requests the same way a GoBI server does.`,
		Example: `  gobiview demo --addr 127.0.0.1:8080
  gobiview --report 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			return demo.NewServer(demo.Config{Addr: addr, Logger: logger}).Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", demo.DefaultAddr, "listen address")
	return cmd
}
