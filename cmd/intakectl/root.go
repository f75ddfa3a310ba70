package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/logger"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "intakectl",
	Short: "Administer the client intake API",
	Long: `intakectl manages the datastore behind the client intake API.

It reads the same environment variables, .env file and config.yaml as the
server.

Commands:
  schema apply   - Create the tables if they do not exist
  user create    - Add a login account
  user passwd    - Replace a login account's password

Example:
  intakectl schema apply
  intakectl user create --email agent@example.com --password 's3cret-pass'`,
	Version:       Version,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(userCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads configuration and sets up console logging
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.Init(logger.Config{Level: level, Format: "console", Output: os.Stderr})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printf writes user-facing output to stdout
func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
