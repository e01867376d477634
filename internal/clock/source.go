package clock

import "time"

// Source supplies the current time.
type Source interface {
	Now() time.Time
}

type realSource struct{}

func (realSource) Now() time.Time { return time.Now() }

// Real returns a Source backed by the wall clock.
func Real() Source {
	return realSource{}
}

// Manual is a Source that only moves when told to. Games advance it by one
// tick interval per simulation step, which keeps rounds deterministic.
type Manual struct {
	now time.Time
}

// NewManual creates a manual source starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Advance moves the time forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set jumps to t.
func (m *Manual) Set(t time.Time) {
	m.now = t
}
