package main

import (
	"fmt"
	"os"

	"github.com/mediatekformation/internal/db"
	"github.com/spf13/cobra"
)

var seedFile string

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load playlists, categories and formations from a YAML file",
	Long: `Load fixtures into the database.

The schema is migrated first. Every row is inserted in a single transaction,
so a failing fixture leaves the database untouched.

Example:
  formations seed --file fixtures.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		fixtures, err := db.ParseFixtures(f)
		if err != nil {
			return err
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		database, err := db.Init(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()

		result, err := database.Seed(cmd.Context(), fixtures)
		if err != nil {
			return err
		}

		log.Info("fixtures loaded",
			"file", seedFile,
			"playlists", result.Playlists,
			"categories", result.Categories,
			"formations", result.Formations,
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixtures YAML file")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}
