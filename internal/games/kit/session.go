// Package kit holds the pieces every round-based game shares: the session
// lifecycle around an engine, the frame-driven clock, and the HUD.
package kit

import (
	"time"

	"github.com/vovakirdan/chroma-arcade/internal/clock"
	"github.com/vovakirdan/chroma-arcade/internal/config"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
)

// Options configures a Session.
type Options struct {
	Engine      engine.Config
	Runtime     core.RuntimeConfig
	Difficulty  config.DifficultyConfig
	MinDuration time.Duration
}

// Session runs an engine on a frame clock: every Step advances the clock
// by one tick interval, so a seeded game replays identically.
type Session struct {
	eng  *engine.Engine
	clk  *clock.Manual
	tick time.Duration
	diff *config.DifficultyManager

	base  time.Duration
	floor time.Duration

	paused     bool
	lastPhase  engine.Phase
	round      int
	roundScore int // score when the current round began

	events     []core.RoundEvent
	ended      bool
	endedScore int
}

// NewSession validates the engine config and returns an idle session.
func NewSession(opts Options) (*Session, error) {
	clk := clock.NewManual(time.Unix(0, 0))
	eng, err := engine.New(opts.Engine, clk)
	if err != nil {
		return nil, err
	}

	s := &Session{
		eng:   eng,
		clk:   clk,
		tick:  opts.Runtime.TickInterval(),
		diff:  config.NewDifficultyManager(opts.Difficulty),
		base:  opts.Engine.Duration,
		floor: opts.MinDuration,
	}
	eng.Subscribe(s.observe)
	return s, nil
}

// observe turns engine transitions into round events.
func (s *Session) observe(snap engine.Snapshot) {
	if snap.RoundNo != s.round {
		s.round = snap.RoundNo
		s.roundScore = snap.Score
	}
	if snap.Phase == engine.PhaseResult && s.lastPhase == engine.PhaseActive {
		s.events = append(s.events, core.RoundEvent{
			Round:      snap.RoundNo,
			Success:    snap.Success,
			ScoreDelta: snap.Score - s.roundScore,
			Streak:     snap.Streak,
			Mistakes:   len(snap.Mistakes) + snap.Misses,
			Elapsed:    snap.Duration - snap.Remaining,
		})
	}
	s.lastPhase = snap.Phase
}

// Begin advances the clock and handles the lifecycle keys shared by every
// game. It returns true when a round is active and the game should apply
// its own input this tick.
func (s *Session) Begin(in core.InputFrame) bool {
	s.events = nil
	s.ended = false
	s.endedScore = 0

	if in.Has(core.ActionPause) && s.eng.Phase() == engine.PhaseActive {
		s.paused = !s.paused
	}
	if s.paused {
		return false
	}

	// Time moves before input is read, so an action in the tick that
	// crosses the deadline loses to the expiry.
	s.clk.Advance(s.tick)
	s.eng.Tick()

	switch s.eng.Phase() {
	case engine.PhaseIdle:
		if in.Has(core.ActionConfirm) {
			s.startGame()
		}
		return false

	case engine.PhaseResult:
		switch {
		case in.Has(core.ActionNewGame):
			s.newGame()
		case in.Has(core.ActionRestart):
			s.nextRound()
		}
		return false

	default:
		switch {
		case in.Has(core.ActionNewGame):
			s.newGame()
			return false
		case in.Has(core.ActionRestart):
			// Skip: abandon the running round without scoring it.
			s.nextRound()
			return false
		}
		return true
	}
}

func (s *Session) startGame() {
	//nolint:errcheck // duration validated in NewSession
	s.eng.SetDuration(s.diff.Duration(s.base, s.floor, 0, 0))
	//nolint:errcheck // pool and counts validated in NewSession
	s.eng.StartGame()
}

func (s *Session) newGame() {
	if score := s.eng.Snapshot().Score; score > 0 {
		s.ended = true
		s.endedScore = score
	}
	s.startGame()
}

func (s *Session) nextRound() {
	snap := s.eng.Snapshot()
	//nolint:errcheck // duration is always positive
	s.eng.SetDuration(s.diff.Duration(s.base, s.floor, snap.Score, snap.Streak))
	//nolint:errcheck // the session is started in Active and Result
	s.eng.NextRound()
}

// Result builds the StepResult for the tick that Begin opened.
func (s *Session) Result() core.StepResult {
	return core.StepResult{
		State:      s.State(),
		Rounds:     s.events,
		Ended:      s.ended,
		EndedScore: s.endedScore,
	}
}

// State reports the session status.
func (s *Session) State() core.GameState {
	snap := s.eng.Snapshot()
	return core.GameState{
		Score:      snap.Score,
		Streak:     snap.Streak,
		BestStreak: snap.BestStreak,
		Round:      snap.RoundNo,
		Started:    snap.Phase != engine.PhaseIdle,
		Paused:     s.paused,
	}
}

// Engine returns the wrapped engine.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// Snapshot returns the engine snapshot.
func (s *Session) Snapshot() engine.Snapshot {
	return s.eng.Snapshot()
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Now returns the frame clock's time.
func (s *Session) Now() time.Time {
	return s.clk.Now()
}
