package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mediatekformation/internal/config"
	"github.com/mediatekformation/internal/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "formations",
	Short: "MediaTek86 formations administration",
	Long: `Back-office for the MediaTek86 training catalogue.

Configuration is read from the environment, and from a .env file in the
working directory when one exists.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads .env, the configuration and the logger shared by every command
func bootstrap() (*config.Config, *slog.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.InitLogger(cfg.Environment)
	if envErr != nil {
		log.Debug("no .env file loaded", "error", envErr)
	}

	return cfg, log, nil
}
