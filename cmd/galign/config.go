package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show detected system resources and the configuration galign would run
with after merging defaults, galign.yaml, GALIGN_* variables and flags.

Examples:
  galign config
  GALIGN_WORKERS=4 galign config --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configJSON {
			data, err := json.MarshalIndent(v.AllSettings(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}
		cfg.ShowConfig(os.Stdout)
		return cfg.Validate()
	},
}

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Print the merged settings as JSON")
}
