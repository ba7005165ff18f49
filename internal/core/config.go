package core

// RuntimeConfig contains host settings passed to a session at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is a snapshot of a session for the platform layer.
type GameState struct {
	Score     int  // Floored current score
	HighScore int  // Floored high score
	Running   bool // Whether the tick loop should be driven
	GameOver  bool // Whether the last run has ended
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState
	Ended bool // The run ended on this tick
}
