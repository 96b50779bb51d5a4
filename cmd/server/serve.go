package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mediatekformation/internal/db"
	"github.com/mediatekformation/internal/http"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the administration web server",
	Long: `Run the administration web server.

Pending database migrations are applied before the server starts listening.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		log.Info("starting formations admin",
			"environment", cfg.Environment,
			"database", cfg.DatabasePath,
			"oauth_enabled", cfg.OAuth.Keycloak.Enabled(),
		)

		database, err := db.Init(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()

		server, err := http.NewServer(cfg, database, log)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
