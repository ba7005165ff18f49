// Package window runs a gapbird session in a desktop window with Ebitengine.
package window

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gapbird/internal/core"
	"github.com/vovakirdan/gapbird/internal/game"
	"github.com/vovakirdan/gapbird/internal/storage"
)

var (
	backgroundColor = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	actorColor      = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	obstacleColor   = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	shadeColor      = color.RGBA{A: 0x80}
)

// debug font glyph size
const (
	glyphW = 6
	glyphH = 16
)

var primaryKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyEnter}

// Options configures the window host.
type Options struct {
	Title    string
	Scale    float64 // Window size relative to the field
	TickRate int
	Player   string
	Ledger   *storage.Store
	Logger   *log.Logger
}

// Game adapts a session to ebiten.Game.
type Game struct {
	session *game.Session
	opts    Options
	input   core.InputFrame
}

// NewGame wraps session for the window host.
func NewGame(session *game.Session, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	return &Game{session: session, opts: opts, input: core.NewInputFrame()}
}

// Update samples input once and advances the session by one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.input.Clear()
	for _, k := range primaryKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.input.Set(core.ActionPrimary)
			break
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.input.Set(core.ActionPrimary)
	}

	g.advance(g.input)
	return nil
}

// advance applies one frame of input and records the run if it ended.
func (g *Game) advance(in core.InputFrame) {
	before := g.session.Runs()
	res := g.session.Step(in)
	if g.session.Runs() != before {
		g.opts.Logger.Debug("run started", "player", g.opts.Player, "run", g.session.Runs())
	}
	if res.Ended {
		g.recordRun(res.State)
	}
}

func (g *Game) recordRun(state core.GameState) {
	g.opts.Logger.Info("run ended",
		"player", g.opts.Player,
		"score", state.Score,
		"high", state.HighScore,
		"ticks", g.session.Ticks(),
	)
	if g.opts.Ledger == nil {
		return
	}
	if _, err := g.opts.Ledger.RecordRun(g.opts.Player, state.Score, g.session.Ticks()); err != nil {
		g.opts.Logger.Warn("could not record run", "player", g.opts.Player, "error", err)
	}
}

// Draw paints the field in logical field coordinates.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, o := range g.session.Obstacles() {
		vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), float32(o.W), float32(o.H), obstacleColor, false)
	}

	a := g.session.Actor()
	vector.DrawFilledRect(screen, float32(a.X), float32(a.Y), float32(a.W), float32(a.H), actorColor, false)

	cfg := g.session.Config()
	switch g.session.Phase() {
	case game.PhaseRunning:
		ebitenutil.DebugPrintAt(screen, strconv.Itoa(g.session.DisplayScore()), int(cfg.Field.Width)/2, 10)
	default:
		vector.DrawFilledRect(screen, 0, 0, float32(cfg.Field.Width), float32(cfg.Field.Height), shadeColor, false)
		drawMessage(screen, g.session.Message(), int(cfg.Field.Width), int(cfg.Field.Height))
	}
}

// Layout keeps the logical screen at field size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.session.Config()
	return int(cfg.Field.Width), int(cfg.Field.Height)
}

func drawMessage(screen *ebiten.Image, msg string, w, h int) {
	lines := strings.Split(msg, "\n")
	y := (h - len(lines)*glyphH) / 3
	for i, line := range lines {
		x := (w - len(line)*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, line, x, y+i*glyphH)
	}
}

// Run opens the window and blocks until it is closed.
func Run(session *game.Session, opts Options) error {
	if opts.Title == "" {
		opts.Title = "gapbird"
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}

	cfg := session.Config()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(int(cfg.Field.Width*opts.Scale), int(cfg.Field.Height*opts.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(NewGame(session, opts))
}
