// gapbird is a one-button reflex game: keep the bird between the pipes.
//
// Usage:
//
//	gapbird play      - Play in the terminal
//	gapbird window    - Play in a desktop window
//	gapbird serve     - Start SSH server for remote play
//	gapbird config    - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--config <path>  - Use a custom game config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gapbird/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gapbird",
	Short: "gapbird - flap through the gaps",
	Long: `gapbird is a one-button reflex game. Gravity pulls the bird down, every
press flaps it up, and pipes scroll in from the right. Touching a pipe or
leaving the field ends the run.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  config   - Print the effective game configuration

Examples:
  gapbird play
  gapbird play --seed 42 --fps 120
  gapbird window
  gapbird serve --ssh :2222
  gapbird config --config ./my-gapbird.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig resolves the game config from --config or the search path.
func loadGameConfig() (config.GameConfig, error) {
	return config.Load(flagConfig)
}
