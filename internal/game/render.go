package game

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/gapbird/internal/core"
)

// Visual characters for rendering
const (
	ActorChar    = '●'
	ObstacleChar = '█'
	BorderChar   = '│'
)

// cellAspect is the height of a terminal cell divided by its width.
const cellAspect = 2.0

// Viewport maps world coordinates onto a terminal grid, letterboxed so the
// field keeps its proportions.
type Viewport struct {
	OffsetX int     // First column of the field
	Width   int     // Field width in cells
	Height  int     // Field height in cells
	ScaleX  float64 // Cells per world unit, horizontally
	ScaleY  float64 // Cells per world unit, vertically
}

// NewViewport fits a fieldW x fieldH world into a screenW x screenH grid.
func NewViewport(fieldW, fieldH float64, screenW, screenH int) Viewport {
	h := max(screenH, 1)
	w := int(math.Round(float64(h) * fieldW / fieldH * cellAspect))
	if w > screenW {
		w = screenW
	}
	w = max(w, 1)

	return Viewport{
		OffsetX: (screenW - w) / 2,
		Width:   w,
		Height:  h,
		ScaleX:  float64(w) / fieldW,
		ScaleY:  float64(h) / fieldH,
	}
}

// Project converts a world box into screen cells.
func (v Viewport) Project(b core.Box) core.Rect {
	r := b.Scale(v.ScaleX, v.ScaleY)
	r.X += v.OffsetX
	return r
}

// Render draws the session into dst: obstacles, the actor, the live score
// and the phase message.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	vp := NewViewport(s.cfg.Field.Width, s.cfg.Field.Height, dst.Width(), dst.Height())
	clip := core.NewRect(vp.OffsetX, 0, vp.Width, vp.Height)

	// Frame the field when there is room beside it
	if vp.OffsetX > 0 {
		for y := 0; y < dst.Height(); y++ {
			dst.SetColored(vp.OffsetX-1, y, BorderChar, core.ColorGray)
			dst.SetColored(vp.OffsetX+vp.Width, y, BorderChar, core.ColorGray)
		}
	}

	for _, o := range s.field.Obstacles() {
		dst.FillRect(intersect(vp.Project(o.Box()), clip), ObstacleChar, core.ColorGreen)
	}

	dst.FillRect(intersect(vp.Project(s.actor.Box()), clip), ActorChar, core.ColorGold)

	if s.phase == PhaseRunning {
		dst.DrawTextColored(vp.OffsetX+1, 0, fmt.Sprintf(" %d ", s.DisplayScore()), core.ColorWhite)
	}

	if msg := s.Message(); msg != "" {
		drawCenteredMessage(dst, strings.Split(msg, "\n"))
	}
}

// intersect clips r to bounds.
func intersect(r, bounds core.Rect) core.Rect {
	x0 := max(r.X, bounds.X)
	y0 := max(r.Y, bounds.Y)
	x1 := min(r.Right(), bounds.Right())
	y1 := min(r.Bottom(), bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// drawCenteredMessage draws a message box centered horizontally in the upper
// third of the screen, clear of the actor's start position.
func drawCenteredMessage(dst *core.Screen, lines []string) {
	w := dst.Width()
	h := dst.Height()

	widest := 0
	for _, l := range lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}

	boxW := widest + 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 3

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, l := range lines {
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawText(x, boxY+1+i, l)
	}
}
