// Package cmd provides the command-line interface for the gm wallet
package cmd

import (
	"context"
	"fmt"

	"github.com/gmwallet/gm/internal/config"
	"github.com/gmwallet/gm/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "gm",
	Short: "Terminal wallet for Ethereum",
	Long: `A keyboard-driven terminal wallet. Running gm without a subcommand
starts the interactive interface; the config commands inspect and edit the
persisted settings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLevel(logLevel); err != nil {
			return fmt.Errorf("invalid log level '%s': %w", logLevel, err)
		}
		logger.Log.Debugf("Log level set to: %s", logLevel)

		return nil
	},
	RunE: runInteractive,
}

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return rootCmd.ExecuteContext(ctx)
}

// openStore opens the settings database named by --config, falling back to
// GM_CONFIG and then ~/.gm/config.db.
func openStore() (*config.Store, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	store, err := config.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	logger.Log.Debugf("Using settings at %s", store.Path())

	return store, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set the logging level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings database path (default $GM_CONFIG or ~/.gm/config.db)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file used while the interactive interface runs (default ~/.gm/gm.log)")
}
