package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flotilla/battleship-go/internal/factory"
	redisstorage "github.com/flotilla/battleship-go/internal/storage/redis"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "battleship",
		Short: "Battleship player identity and score service",
		Long: `battleship runs the player identity and score service: account
registration and login, server-side sessions, the admin surface, and the
score endpoint the game server reports results to.

Storage and credentials are configured through the environment:

  STORAGE_TYPE          "memory" (default) or "redis"
  REDIS_URL             Redis connection URL (required for redis storage)
  ADMIN_PASSWORD        bootstrap password for the "admin" account
  SCORE_SERVICE_TOKEN   bearer token the game server presents on score updates
  PORT                  listen port (default 8080)`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAdminCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger creates the JSON logger shared by all commands
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// buildApp wires the application from environment configuration
func buildApp(cfg *Config, logger *slog.Logger) (*factory.App, error) {
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	if factoryCfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	return factory.New(factoryCfg)
}
