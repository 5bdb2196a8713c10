package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gmwallet/gm/internal/logger"
	"github.com/gmwallet/gm/internal/tui"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const logFileName = "gm.log"

var errNotTerminal = errors.New("the interactive interface needs a terminal")

var refreshInterval time.Duration

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive wallet interface",
	Long: `Start the terminal UI.

The home page lists the wallet actions:
- Send: compose a transfer
- Testnet: switch between mainnet and Sepolia
- Settings: currency, theme, network and the Alchemy API key

Press '?' on the home page to see keyboard shortcuts. Logs go to a file
while the interface runs.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().DurationVar(&refreshInterval, "refresh", time.Second, "Interval between background ticks, which expire status messages")
	rootCmd.AddCommand(interactiveCmd)
}

// isTerminal is replaced in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	path := logFile
	if path == "" {
		path = filepath.Join(filepath.Dir(store.Path()), logFileName)
	}

	closer, err := logger.InitFile(path)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	interval := refreshInterval
	if interval <= 0 {
		interval = time.Second
	}

	app, err := tui.NewApp(cmd.Context(), &tui.Config{
		Store:   store,
		Sources: []events.Source{events.Ticker(interval)},
	})
	if err != nil {
		return err
	}

	logger.Log.Infof("Starting interactive interface (settings: %s)", store.Path())
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	logger.Log.Info("Interactive interface exited")

	return nil
}
