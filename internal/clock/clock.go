// Package clock implements the round countdown.
//
// A Clock runs at most one countdown at a time. Every Start issues a new
// Token and invalidates the previous one, so events that were produced for
// an earlier round can be recognised and dropped by whoever receives them.
// The clock is not safe for concurrent use; it is owned by a single engine
// and driven from one event loop.
package clock

import "time"

// Token identifies one countdown. Tokens increase strictly per Clock.
type Token uint64

// Event reports the state of a countdown.
type Event struct {
	Token     Token
	Remaining time.Duration
	Expired   bool
}

// Clock is a cancellable countdown timer.
type Clock struct {
	src       Source
	token     Token
	running   bool
	expired   bool
	startedAt time.Time
	duration  time.Duration
	remaining time.Duration
}

// New creates a stopped clock reading time from src.
func New(src Source) *Clock {
	if src == nil {
		src = Real()
	}
	return &Clock{src: src}
}

// Start begins a new countdown of d, cancelling any running one.
// Returns the token of the new countdown.
func (c *Clock) Start(d time.Duration) Token {
	c.token++
	c.running = true
	c.expired = false
	c.startedAt = c.src.Now()
	c.duration = d
	c.remaining = d
	return c.token
}

// Stop cancels the countdown identified by t. Stopping a stale token,
// an expired countdown or an already stopped one does nothing.
func (c *Clock) Stop(t Token) {
	if t != c.token || !c.running {
		return
	}
	c.remaining = c.compute()
	c.running = false
}

// Poll samples the live countdown. It returns false when nothing is running.
// The first poll at or past the deadline reports Expired and stops the clock,
// so expiry is delivered exactly once.
func (c *Clock) Poll() (Event, bool) {
	if !c.running {
		return Event{}, false
	}

	c.remaining = c.compute()
	ev := Event{Token: c.token, Remaining: c.remaining}
	if c.remaining == 0 {
		c.running = false
		c.expired = true
		ev.Expired = true
	}
	return ev, true
}

// Expire force-expires the countdown identified by t. It is the entry point
// for timeout-driven delivery. Returns false for stale tokens or a countdown
// that is no longer running.
func (c *Clock) Expire(t Token) bool {
	if t != c.token || !c.running {
		return false
	}
	c.running = false
	c.expired = true
	c.remaining = 0
	return true
}

// ExpiryAfter returns the live token and the time left until it expires,
// for schedulers that deliver expiry as a delayed event.
func (c *Clock) ExpiryAfter() (Token, time.Duration, bool) {
	if !c.running {
		return c.token, 0, false
	}
	return c.token, c.compute(), true
}

// compute returns the remaining time, clamped to [0, last reading] so the
// value never grows even if the source steps backwards.
func (c *Clock) compute() time.Duration {
	rem := c.duration - c.src.Now().Sub(c.startedAt)
	if rem < 0 {
		rem = 0
	}
	if rem > c.remaining {
		rem = c.remaining
	}
	return rem
}

// Current returns the token of the most recent countdown.
func (c *Clock) Current() Token {
	return c.token
}

// IsCurrent reports whether t belongs to the most recent countdown.
func (c *Clock) IsCurrent(t Token) bool {
	return t == c.token
}

// Running reports whether a countdown is live.
func (c *Clock) Running() bool {
	return c.running
}

// Expired reports whether the most recent countdown reached zero.
func (c *Clock) Expired() bool {
	return c.expired
}

// Remaining returns the last observed remaining time.
func (c *Clock) Remaining() time.Duration {
	return c.remaining
}

// Duration returns the length of the most recent countdown.
func (c *Clock) Duration() time.Duration {
	return c.duration
}
