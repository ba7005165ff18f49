package game

import "github.com/vovakirdan/gapbird/internal/core"

// Actor is the player-controlled bird.
type Actor struct {
	X, Y     float64 // Top-left corner
	W, H     float64
	Velocity float64 // Vertical, positive = down
	Gravity  float64 // Added to Velocity every tick
	Impulse  float64 // Velocity set by Jump, negative = up
}

// ApplyGravity accelerates the actor downward by one tick of gravity.
func (a *Actor) ApplyGravity() {
	a.Velocity += a.Gravity
}

// Integrate moves the actor by its current velocity.
func (a *Actor) Integrate() {
	a.Y += a.Velocity
}

// Jump replaces the current velocity with the impulse.
func (a *Actor) Jump() {
	a.Velocity = a.Impulse
}

// Reset places the actor at (x, y) at rest.
func (a *Actor) Reset(x, y float64) {
	a.X = x
	a.Y = y
	a.Velocity = 0
}

// Box returns the actor's collision box.
func (a *Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.W, a.H)
}
