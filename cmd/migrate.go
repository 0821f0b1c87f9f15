package cmd

import (
	"fmt"
	"log/slog"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/db"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(loadConfig(), db.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(loadConfig(), db.Down)
	},
}

func runMigration(cfg config.Config, direction db.Direction) error {
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("migrations need a SQL database, DB_DRIVER is %q", cfg.Database.Driver)
	}
	if err := db.Migrate(cfg.Database, direction); err != nil {
		return err
	}
	slog.Info("migrations applied", "database", cfg.Database.DBName, "host", cfg.Database.Host)
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
