package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file and flags are applied.

The output is valid YAML and can be saved as ~/.flappyvoid/config.yaml.

Examples:
  flappyvoid config
  flappyvoid config --fps 30 > ~/.flappyvoid/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) {
	cfg, src, err := loadSettings(cmd)
	exitOnError(err)

	data, err := cfg.Marshal()
	exitOnError(err)

	fmt.Printf("# source: %s\n", src)
	fmt.Print(string(data))
}
