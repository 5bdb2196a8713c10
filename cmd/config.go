package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/gmwallet/gm/internal/config"
	"github.com/gmwallet/gm/internal/logger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	revealSecrets  bool
	transfersLimit int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the persisted settings",
	Long:  "Commands for the settings database shared with the interactive interface.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting as YAML",
	Long:  "Print the current settings as YAML. The Alchemy API key is masked unless --reveal is given.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		cfg, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if !revealSecrets {
			cfg = cfg.Redacted()
		}

		return writeYAML(cmd.OutOrStdout(), cfg)
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print one setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSettingKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		cfg, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if !revealSecrets {
			cfg = cfg.Redacted()
		}

		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Keys:
  testnet_mode     : true or false
  currency         : fiat currency for prices (USD, EUR, ...)
  theme            : dark or light
  alchemy_api_key  : API key used to fetch balances`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeSettingKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if _, err := store.Set(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		logger.Log.Debugf("Setting %s updated", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings database path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		return nil
	},
}

var configTransfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "List requested transfers",
	Long:  "Show the transfers requested from the Send page, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transfersLimit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", transfersLimit)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		transfers, err := store.Transfers(cmd.Context(), transfersLimit)
		if err != nil {
			return err
		}

		return renderTransfers(cmd.OutOrStdout(), transfers)
	},
}

func completeSettingKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return enc.Close()
}

// renderTransfers prints the transfer log as a table.
func renderTransfers(w io.Writer, transfers []config.Transfer) error {
	if len(transfers) == 0 {
		fmt.Fprintln(w, "No transfers requested")
		return nil
	}

	tableData := pterm.TableData{{"Requested", "To", "Amount", "Network"}}
	for _, t := range transfers {
		network := "mainnet"
		if t.Testnet {
			network = "testnet"
		}
		tableData = append(tableData, []string{
			t.At.Local().Format(time.DateTime),
			t.To,
			t.Amount + " " + t.Unit,
			network,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(tableData).Render(); err != nil {
		return fmt.Errorf("failed to render transfers: %w", err)
	}
	fmt.Fprintf(w, "\n(%d transfer(s))\n", len(transfers))

	return nil
}

func init() {
	configShowCmd.Flags().BoolVar(&revealSecrets, "reveal", false, "Print secrets in clear")
	configGetCmd.Flags().BoolVar(&revealSecrets, "reveal", false, "Print secrets in clear")
	configTransfersCmd.Flags().IntVar(&transfersLimit, "limit", 20, "Maximum number of transfers to list")

	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configPathCmd, configTransfersCmd)
	rootCmd.AddCommand(configCmd)
}
