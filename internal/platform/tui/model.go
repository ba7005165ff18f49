package tui

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gapbird/internal/config"
	"github.com/vovakirdan/gapbird/internal/core"
	"github.com/vovakirdan/gapbird/internal/game"
	"github.com/vovakirdan/gapbird/internal/storage"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a Model beyond the game itself.
type Options struct {
	Ledger      *storage.Store // Optional; finished runs are recorded here
	LedgerLabel string         // Footer label for the ledger's best score
	Logger      *log.Logger    // Optional; discards when nil
	Player      string         // Name runs are recorded under
}

// Model is the Bubble Tea model for a gapbird session.
// Ticks are only scheduled while the session is running.
type Model struct {
	session  *game.Session
	screen   *core.Screen
	config   core.RuntimeConfig
	opts     Options
	keys     KeyMap
	help     help.Model
	board    leaderboard
	ticking  bool // A TickMsg is in flight
	scores   bool // Leaderboard replaces the field
	quitting bool

	// Ledger scores shown in the footer, refreshed on run start and end
	best, own int
}

// NewSession creates a session seeded from cfg.Seed, or from the clock when
// the seed is 0.
func NewSession(gameCfg config.GameConfig, seed int64) (*game.Session, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return game.NewSession(gameCfg, rand.New(rand.NewSource(seed)))
}

// NewModel creates a new Bubble Tea model driving the given session.
func NewModel(session *game.Session, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	if opts.LedgerLabel == "" {
		opts.LedgerLabel = "best"
	}

	m := Model{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:  cfg,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		board:   newLeaderboard(cfg.ScreenW, cfg.ScreenH),
	}
	m.refreshBest()
	return m
}

// Init starts in the idle phase; nothing ticks until the first key press.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		m.board = newLeaderboard(msg.Width, msg.Height)
		if m.scores {
			m.loadBoard()
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Input is applied immediately; Bubble Tea
// serializes it with ticks, so it always lands between two frames.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionScores:
		if m.opts.Ledger == nil || m.session.Phase() == game.PhaseRunning {
			return m, nil
		}
		m.scores = !m.scores
		if m.scores {
			m.loadBoard()
		}
		return m, nil

	case core.ActionPrimary:
		m.scores = false
		ev := m.session.Press()
		switch ev {
		case game.EventStarted, game.EventRestarted:
			m.opts.Logger.Debug("run started", "player", m.opts.Player, "event", ev, "run", m.session.Runs())
			m.refreshBest()
			if !m.ticking {
				m.ticking = true
				return m, tickCmd(m.config.TickRate)
			}
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.session.Tick() == game.EventEnded {
		m.ticking = false
		m.recordRun()
		return m, nil
	}

	if m.session.Phase() != game.PhaseRunning {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// loadBoard refreshes the leaderboard rows; a failed read leaves the old rows.
func (m *Model) loadBoard() {
	if err := m.board.load(m.opts.Ledger); err != nil {
		m.opts.Logger.Warn("could not load leaderboard", "error", err)
	}
}

// refreshBest reloads the footer scores; a failed read keeps the old values.
func (m *Model) refreshBest() {
	if m.opts.Ledger == nil {
		return
	}
	if best, err := m.opts.Ledger.HighScore(); err == nil {
		m.best = best
	}
	if own, err := m.opts.Ledger.PlayerBest(m.opts.Player); err == nil {
		m.own = own
	}
}

// recordRun logs the finished run and adds it to the ledger.
func (m *Model) recordRun() {
	score, ticks := m.session.DisplayScore(), m.session.Ticks()
	m.opts.Logger.Info("run ended",
		"player", m.opts.Player,
		"score", score,
		"high", m.session.DisplayHighScore(),
		"ticks", ticks,
	)

	if m.opts.Ledger == nil {
		return
	}
	if _, err := m.opts.Ledger.RecordRun(m.opts.Player, score, ticks); err != nil {
		m.opts.Logger.Warn("could not record run", "player", m.opts.Player, "error", err)
	}
	m.refreshBest()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footer()
	if m.scores {
		height := max(m.config.ScreenH-lipgloss.Height(footer), 1)
		board := m.board.view("Top runs: " + m.opts.LedgerLabel)
		return lipgloss.Place(m.config.ScreenW, height, lipgloss.Center, lipgloss.Center, board) + "\n" + footer
	}

	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-lipgloss.Height(footer), 1))
	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footer
}

// footer renders key help and, when a ledger is attached, its best score.
func (m Model) footer() string {
	line := m.help.View(m.keys)
	if m.opts.Ledger != nil {
		line += footerStyle.Render(fmt.Sprintf("  •  %s: %d", m.opts.LedgerLabel, m.best))
		if m.own > 0 {
			line += footerStyle.Render(fmt.Sprintf("  •  %s: %d", m.opts.Player, m.own))
		}
	}
	return line
}

// Session returns the driven session.
func (m Model) Session() *game.Session {
	return m.session
}

// ShowingScores reports whether the leaderboard is open.
func (m Model) ShowingScores() bool {
	return m.scores
}

// Ticking reports whether a tick is scheduled.
func (m Model) Ticking() bool {
	return m.ticking
}

// Run starts the Bubble Tea program for a local session.
func Run(session *game.Session, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(session, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
