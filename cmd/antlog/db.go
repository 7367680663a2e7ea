package main

import (
	"fmt"

	"github.com/grishanin/antlog/internal/config"
	"github.com/grishanin/antlog/internal/db"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBMigrateCmd())
	cmd.AddCommand(newDBSeedCostsCmd())
	return cmd
}

func newDBMigrateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			gormDB, err := db.Connect(cfg.DB)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gormDB); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(db.AllModels()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to antlog config file")
	return cmd
}

func newDBSeedCostsCmd() *cobra.Command {
	var configPath string
	var costsPath string

	cmd := &cobra.Command{
		Use:   "seed-costs",
		Short: "Rebuild the improvement-cost table from CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			gormDB, err := db.Connect(cfg.DB)
			if err != nil {
				return err
			}
			if err := db.SeedCosts(gormDB, costsPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Improvement costs seeded from %s\n", costsPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to antlog config file")
	cmd.Flags().StringVar(&costsPath, "csv", "db_migrate/improvement_cost.csv", "path to the cost CSV file")
	return cmd
}
