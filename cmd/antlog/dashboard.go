package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/grishanin/antlog/internal/dashboard"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	var configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the review dashboard without the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, _, err := openStore(configPath)
			if err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Dashboard.Port
			}

			base := cmd.Context()
			if base == nil {
				base = context.Background()
			}
			ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return dashboard.Start(ctx, dashboard.StartOpts{
				DB:   gormDB,
				Port: port,
				Out:  cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to antlog config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "dashboard port (defaults to config)")
	return cmd
}
