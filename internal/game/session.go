// Package game implements gapbird: a bird falls under gravity and must pass
// through the gaps of scrolling obstacle pairs.
//
// The package is pure: a host owns the clock and calls Tick at a fixed rate,
// and forwards the single primary input to Press.
package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gapbird/internal/config"
	"github.com/vovakirdan/gapbird/internal/core"
)

// Phase is the run state of a session.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for the start input
	PhaseRunning              // Ticking
	PhaseEnded                // Frozen after a collision
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event describes what a Press or Tick did.
type Event int

const (
	EventNone      Event = iota
	EventStarted         // idle -> running
	EventJumped          // primary input while running
	EventRestarted       // ended -> reset -> running
	EventEnded           // running -> ended
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventStarted:
		return "started"
	case EventJumped:
		return "jumped"
	case EventRestarted:
		return "restarted"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// IdleMessage is shown before the first run.
const IdleMessage = "Press Space to Start"

// Session owns all mutable game state. It is not safe for concurrent use;
// hosts deliver input and ticks from one goroutine.
type Session struct {
	cfg       config.GameConfig
	actor     Actor
	field     *Field
	score     float64
	highScore float64
	phase     Phase
	ticks     int // Ticks in the current run
	runs      int // Runs started, restarts included
}

// NewSession creates an idle session. The configuration is validated and
// rejected rather than adjusted.
func NewSession(cfg config.GameConfig, rng Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("game: nil random source")
	}

	s := &Session{
		cfg: cfg,
		actor: Actor{
			W:       cfg.Actor.Width,
			H:       cfg.Actor.Height,
			Gravity: cfg.Physics.Gravity,
			Impulse: cfg.Physics.JumpImpulse,
		},
		field: NewField(Generator{
			FieldWidth:  cfg.Field.Width,
			FieldHeight: cfg.Field.Height,
			Width:       cfg.Obstacles.Width,
			GapSize:     cfg.Obstacles.GapSize,
			MinSegment:  cfg.Obstacles.MinSegment,
			Rng:         rng,
		}),
	}
	s.reset()
	return s, nil
}

// reset clears the run and returns the actor to its start position.
// The high score survives.
func (s *Session) reset() {
	s.score = 0
	s.ticks = 0
	s.field.Reset()
	s.actor.Reset(s.cfg.Actor.X, (s.cfg.Field.Height-s.cfg.Actor.Height)/2)
	s.phase = PhaseIdle
}

// Press applies the primary input: start when idle, jump when running,
// restart when ended.
func (s *Session) Press() Event {
	switch s.phase {
	case PhaseIdle:
		s.phase = PhaseRunning
		s.runs++
		return EventStarted
	case PhaseRunning:
		s.actor.Jump()
		return EventJumped
	case PhaseEnded:
		s.reset()
		s.phase = PhaseRunning
		s.runs++
		return EventRestarted
	}
	return EventNone
}

// Tick advances one frame. It is a no-op unless the session is running.
// Returns EventEnded on the tick the run ends.
func (s *Session) Tick() Event {
	if s.phase != PhaseRunning {
		return EventNone
	}
	s.ticks++

	s.actor.ApplyGravity()
	s.actor.Integrate()

	s.field.Step(s.cfg.Physics.ObstacleSpeed, s.cfg.Field.Width, s.cfg.Obstacles.SpawnThreshold)

	if Failed(&s.actor, s.field.Obstacles(), s.cfg.Field.Height) {
		s.phase = PhaseEnded
		if s.score > s.highScore {
			s.highScore = s.score
		}
		return EventEnded
	}

	s.score += UpdateScore(&s.actor, s.field)
	return EventNone
}

// Step applies a frame of polled input and then ticks.
// It suits hosts that sample input once per frame.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPrimary) {
		s.Press()
	}
	ended := s.Tick() == EventEnded
	return core.StepResult{State: s.State(), Ended: ended}
}

// State returns a snapshot for the platform layer.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:     s.DisplayScore(),
		HighScore: s.DisplayHighScore(),
		Running:   s.phase == PhaseRunning,
		GameOver:  s.phase == PhaseEnded,
	}
}

// Message returns the overlay text for the current phase; empty while running.
func (s *Session) Message() string {
	switch s.phase {
	case PhaseIdle:
		return IdleMessage
	case PhaseEnded:
		return fmt.Sprintf("Game Over!\nScore: %d\nHigh Score: %d\n\nPress Space to Restart",
			s.DisplayScore(), s.DisplayHighScore())
	}
	return ""
}

// Phase returns the current run state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the accumulated score, including half points.
func (s *Session) Score() float64 { return s.score }

// DisplayScore returns the score rounded down.
func (s *Session) DisplayScore() int { return int(math.Floor(s.score)) }

// HighScore returns the best score of this session's lifetime.
func (s *Session) HighScore() float64 { return s.highScore }

// DisplayHighScore returns the high score rounded down.
func (s *Session) DisplayHighScore() int { return int(math.Floor(s.highScore)) }

// Actor returns a copy of the actor.
func (s *Session) Actor() Actor { return s.actor }

// Obstacles returns the live obstacles. Callers must not modify the slice.
func (s *Session) Obstacles() []Obstacle { return s.field.Obstacles() }

// Ticks returns the number of ticks in the current run.
func (s *Session) Ticks() int { return s.ticks }

// Runs returns the number of runs started.
func (s *Session) Runs() int { return s.runs }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.GameConfig { return s.cfg }
