package main

import (
	"context"
	"fmt"

	"github.com/grishanin/antlog/internal/models"
	"github.com/grishanin/antlog/internal/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Kill-stat maintenance commands",
	}

	cmd.AddCommand(newStatsReimportCmd())
	return cmd
}

func newStatsReimportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "reimport",
		Short: "Rebuild the kill-stat table from the snapshot history file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsReimport(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to antlog config file")
	return cmd
}

func runStatsReimport(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, _, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	history := stats.NewHistory(cfg.History)
	snaps, err := history.Load()
	if err != nil {
		return err
	}

	var rows []models.KillStat
	for _, snap := range snaps {
		for alliance, kills := range snap.Stats {
			rows = append(rows, models.KillStat{
				Dt:       snap.DateSec,
				Alliance: alliance,
				UserID:   snap.UserID,
				Username: snap.Username,
				Kills:    kills,
			})
		}
	}

	if err := st.ReplaceKillStats(context.Background(), rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "Reimported %d rows from %d snapshots\n", len(rows), len(snaps))
	return nil
}
