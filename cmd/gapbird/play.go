package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gapbird/internal/core"
	"github.com/vovakirdan/gapbird/internal/platform/tui"
	"github.com/vovakirdan/gapbird/internal/storage"
)

var (
	flagLogFile string
	flagPlayer  string
)

var summaryStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#2ecc71")).
	Padding(0, 2)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W/Enter  - Start, flap, restart
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Examples:
  gapbird play
  gapbird play --seed 7
  gapbird play --config ./my-gapbird.yaml --log-file gapbird.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name to record runs under (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size early; the model resizes on the first WindowSizeMsg
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	session, err := tui.NewSession(gameCfg, cfg.Seed)
	if err != nil {
		return err
	}

	ledger, err := storage.Open()
	if err != nil {
		// Play still works without the sitting's ledger
		logger.Warn("could not open run ledger", "error", err)
		ledger = nil
	}
	if ledger != nil {
		defer ledger.Close()
	}

	player := playerName(flagPlayer)
	logger.Info("starting", "player", player, "fps", cfg.TickRate, "seed", cfg.Seed)

	if err := tui.Run(session, cfg, tui.Options{
		Ledger:      ledger,
		LedgerLabel: "best this sitting",
		Logger:      logger,
		Player:      player,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	printSummary(session.Runs(), session.DisplayHighScore(), ledger)
	return nil
}

// openLogger returns a file logger, or a discarding one when path is empty.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "gapbird",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func printSummary(runs, best int, ledger *storage.Store) {
	if runs == 0 {
		return
	}

	body := fmt.Sprintf("Runs: %d\nBest: %d", runs, best)
	if ledger != nil {
		if stats, err := ledger.Stats(); err == nil && stats.Runs > 0 {
			body += fmt.Sprintf("\nAverage: %.1f\nTicks survived: %d", stats.AvgScore, stats.TotalTicks)
		}
	}
	fmt.Println(summaryStyle.Render(body))
}
