package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for round generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the simulated time covered by one Step.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the game status reported to the platform.
type GameState struct {
	Score      int  // Session score
	Streak     int  // Consecutive successful rounds
	BestStreak int  // Longest streak this session
	Round      int  // Current round number, 0 before the first round
	Started    bool // Whether the first round has begun
	Paused     bool // Whether the game is paused
}

// RoundEvent describes one finished round.
type RoundEvent struct {
	Round      int
	Success    bool
	ScoreDelta int
	Streak     int
	Mistakes   int
	Elapsed    time.Duration
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any rounds that finished this tick.
type StepResult struct {
	State  GameState
	Rounds []RoundEvent
	// Ended is set when the player started a new game this tick;
	// EndedScore is the final score of the session that was closed.
	Ended      bool
	EndedScore int
}
