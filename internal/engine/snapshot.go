package engine

import (
	"time"

	"github.com/vovakirdan/chroma-arcade/internal/clock"
	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

// Snapshot is an immutable view of the engine for the presentation layer.
// Slices and maps are copies and may be kept or modified freely.
type Snapshot struct {
	Phase   Phase
	Success bool // meaningful in PhaseResult
	Kind    Kind
	RoundNo int
	Token   clock.Token

	Items      []round.Item
	Placements map[round.ItemID]color.Bucket
	Target     *color.Color
	Reading    *color.Color // nearest colour of the last target sample

	Remaining time.Duration
	Duration  time.Duration

	Score      int
	Streak     int
	BestStreak int
	Misses     int
	Mistakes   []round.ItemID
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      e.phase,
		Success:    e.success,
		Kind:       e.cfg.Kind,
		RoundNo:    e.roundNo,
		Token:      e.token,
		Remaining:  e.clock.Remaining(),
		Duration:   e.cfg.Duration,
		Score:      e.score,
		Streak:     e.streak,
		BestStreak: e.best,
		Misses:     e.misses,
	}

	if e.phase == PhaseIdle {
		return s
	}
	s.Duration = e.current.Deadline

	s.Items = make([]round.Item, len(e.current.Items))
	copy(s.Items, e.current.Items)

	s.Placements = make(map[round.ItemID]color.Bucket, len(e.placements))
	for id, b := range e.placements {
		s.Placements[id] = b
	}

	if e.current.Target != nil {
		t := *e.current.Target
		s.Target = &t
	}
	if e.reading != nil {
		r := *e.reading
		s.Reading = &r
	}
	if len(e.mistakes) > 0 {
		s.Mistakes = make([]round.ItemID, len(e.mistakes))
		copy(s.Mistakes, e.mistakes)
	}
	return s
}

// Placed reports whether every item has a bucket.
func (s Snapshot) Placed() bool {
	return len(s.Items) > 0 && len(s.Placements) == len(s.Items)
}

// MistakeNames returns the colour names of the misplaced items.
func (s Snapshot) MistakeNames() []string {
	names := make([]string, 0, len(s.Mistakes))
	for _, id := range s.Mistakes {
		if int(id) < len(s.Items) {
			names = append(names, s.Items[id].Color.Name)
		}
	}
	return names
}
