package main

import (
	"fmt"
	"strconv"

	"github.com/mediatekformation/internal/db"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long:  `Apply, roll back or inspect the embedded schema migrations.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(database *db.DB) error {
			if err := database.MigrateUp(); err != nil {
				return err
			}
			return printStatus(cmd, database)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations",
	Long: `Roll back migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  formations migrate down      # Roll back 1 migration
  formations migrate down 2    # Roll back 2 migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number of steps %q", args[0])
			}
			steps = n
		}

		return withDatabase(func(database *db.DB) error {
			cmd.Printf("Rolling back %d migration(s)...\n", steps)
			if err := database.MigrateDown(steps); err != nil {
				return err
			}
			return printStatus(cmd, database)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(database *db.DB) error {
			return printStatus(cmd, database)
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

// withDatabase opens the configured database without migrating it
func withDatabase(fn func(*db.DB) error) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	return fn(database)
}

func printStatus(cmd *cobra.Command, database *db.DB) error {
	status, err := database.MigrationVersion()
	if err != nil {
		return err
	}
	cmd.Printf("Database: %s\n", database.GetDBPath())
	if status.Version == 0 {
		cmd.Println("No migrations have been applied yet")
		return nil
	}
	cmd.Printf("Current version: %d\n", status.Version)
	if status.Dirty {
		cmd.Println("Warning: Database is in a dirty state")
	}
	return nil
}
