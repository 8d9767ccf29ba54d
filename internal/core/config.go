package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Target frames per second (default 60)
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

// FrameInterval returns the nominal duration of one frame.
func (c RuntimeConfig) FrameInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// ClampDelta converts a frame delta to seconds and caps it at max seconds.
// Long pauses between frames (suspended terminal, slow SSH link) must not
// turn into one huge simulation step.
func ClampDelta(dt time.Duration, max float64) float64 {
	sec := dt.Seconds()
	if sec < 0 {
		return 0
	}
	if sec > max {
		return max
	}
	return sec
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score         int  // Current score (floored)
	Level         int  // Current level, 1-based
	Running       bool // Simulation is advancing
	GameOver      bool // Whether the game has ended
	Paused        bool // Whether the game is paused
	LevelComplete bool // Waiting for the player to start the next level
	NewBest       bool // Game over with a score above the previous best
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
