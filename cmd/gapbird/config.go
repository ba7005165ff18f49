package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gapbird/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Resolve the game configuration the same way play does and print it
as YAML. The first line names the source it was loaded from.

Search order:
  --config <path>
  ~/.gapbird/gapbird.yaml
  ./configs/gapbird.yaml
  embedded defaults

Examples:
  gapbird config
  gapbird config --config ./my-gapbird.yaml > merged.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("# source: %s\n", source)
	fmt.Print(string(data))
	return nil
}
