package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gapbird/internal/platform/tui"
	"github.com/vovakirdan/gapbird/internal/platform/window"
	"github.com/vovakirdan/gapbird/internal/storage"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a game in a desktop window at the field's native resolution.

Controls:
  Space/Up/W/Enter/Click  - Start, flap, restart
  Esc/Q                   - Quit

Examples:
  gapbird window
  gapbird window --scale 1.5`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale relative to the field")
	windowCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	windowCmd.Flags().StringVar(&flagPlayer, "player", "", "Name to record runs under (default: $USER)")
}

func runWindow(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// The window reuses the terminal's seeding rule
	session, err := tui.NewSession(gameCfg, flagSeed)
	if err != nil {
		return err
	}

	ledger, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		ledger = nil
	}
	if ledger != nil {
		defer ledger.Close()
	}

	if err := window.Run(session, window.Options{
		Scale:    flagScale,
		TickRate: flagFPS,
		Player:   playerName(flagPlayer),
		Ledger:   ledger,
		Logger:   logger,
	}); err != nil {
		return err
	}

	printSummary(session.Runs(), session.DisplayHighScore(), ledger)
	return nil
}
