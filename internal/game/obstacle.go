package game

import (
	"math"

	"github.com/vovakirdan/gapbird/internal/core"
)

// Rand is the random source used to place gaps.
// *math/rand.Rand satisfies it; tests inject seeded sources.
type Rand interface {
	Intn(n int) int
}

// Obstacle is one half of an obstacle pair.
type Obstacle struct {
	X, Y   float64 // Top-left corner
	W, H   float64
	Passed bool // Whether the actor has cleared it (for scoring)
}

// Box returns the obstacle's collision box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.W, o.H)
}

// Trailing returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) Trailing() float64 {
	return o.X + o.W
}

// Generator produces obstacle pairs at the right edge of the field.
type Generator struct {
	FieldWidth  float64
	FieldHeight float64
	Width       float64 // Obstacle width
	GapSize     float64
	MinSegment  float64
	Rng         Rand
}

// Pair creates a top and bottom obstacle separated by the gap.
func (g Generator) Pair() (top, bottom Obstacle) {
	return NewPair(g.FieldWidth, g.FieldHeight, g.Width, g.GapSize, g.MinSegment, g.Rng)
}

// NewPair creates two complementary obstacles at x = fieldWidth.
// The top obstacle's height is a uniformly random whole number in
// [minSegment, fieldHeight-gapSize-minSegment]; the bottom obstacle fills the rest
// so that top + gap + bottom == fieldHeight.
// The caller must ensure gapSize+2*minSegment <= fieldHeight.
func NewPair(fieldWidth, fieldHeight, width, gapSize, minSegment float64, rng Rand) (top, bottom Obstacle) {
	maxTop := fieldHeight - gapSize - minSegment
	choices := int(math.Floor(maxTop-minSegment)) + 1
	split := minSegment + float64(rng.Intn(choices))

	top = Obstacle{
		X: fieldWidth,
		Y: 0,
		W: width,
		H: split,
	}
	bottom = Obstacle{
		X: fieldWidth,
		Y: split + gapSize,
		W: width,
		H: fieldHeight - split - gapSize,
	}
	return top, bottom
}
