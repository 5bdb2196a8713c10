package cmd

import (
	"fmt"

	"github.com/gmwallet/gm/internal/version"
	"github.com/spf13/cobra"
)

var versionYAML bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build metadata for this binary",
	Long:  "Display the version, commit, build date, platform and Go version embedded in the binary.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionYAML {
			return writeYAML(cmd.OutOrStdout(), info)
		}

		fmt.Fprintln(cmd.OutOrStdout(), info.String())

		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionYAML, "yaml", false, "Print the metadata as YAML")
	rootCmd.AddCommand(versionCmd)
}
