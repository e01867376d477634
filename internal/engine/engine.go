// Package engine implements the round state machine shared by every
// mini-game: Idle -> Active -> Result -> Active ...
//
// The engine owns the round, the countdown and the score. It is driven
// synchronously by its owner (a game's Step loop or a test) and is not safe
// for concurrent use; each intent is processed to completion before the
// next one is accepted.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/chroma-arcade/internal/clock"
	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

var (
	// ErrConfig wraps every configuration problem detected by New.
	ErrConfig = errors.New("engine: invalid configuration")

	// ErrNotStarted is returned by NextRound before StartGame.
	ErrNotStarted = errors.New("engine: game not started")
)

// Phase is the engine's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseResult
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Kind selects how a round is won.
type Kind int

const (
	// KindSort rounds are won by placing every item in its bucket.
	KindSort Kind = iota
	// KindTarget rounds are won by hitting the target colour.
	KindTarget
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindSort:
		return "sort"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Config describes one game variant.
type Config struct {
	Kind     Kind
	Pool     color.Palette
	Buckets  color.BucketTable // required for KindSort
	Round    round.Options
	Duration time.Duration
	Seed     int64

	// Cooldown ignores target hits for this long after a round starts.
	Cooldown time.Duration
	// ConfirmSamples is the number of consecutive matching samples
	// needed before a target hit counts. Values below 1 mean 1.
	ConfirmSamples int
}

// Engine is the round state machine.
type Engine struct {
	cfg   Config
	gen   *round.Generator
	src   clock.Source
	clock *clock.Clock

	phase   Phase
	success bool
	current round.Round
	roundNo int
	token   clock.Token

	placements map[round.ItemID]color.Bucket
	mistakes   []round.ItemID
	misses     int
	confirm    int
	reading    *color.Color

	score  int
	streak int
	best   int

	listeners    map[int]func(Snapshot)
	nextListener int
}

// New validates cfg and creates an idle engine. A nil src uses the wall clock.
func New(cfg Config, src clock.Source) (*Engine, error) {
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	if src == nil {
		src = clock.Real()
	}

	return &Engine{
		cfg:        cfg,
		gen:        round.NewGenerator(cfg.Seed),
		src:        src,
		clock:      clock.New(src),
		placements: make(map[round.ItemID]color.Bucket),
		listeners:  make(map[int]func(Snapshot)),
	}, nil
}

func validate(cfg *Config) error {
	if cfg.Pool.Len() == 0 {
		return fmt.Errorf("%w: %w", ErrConfig, color.ErrEmptyPalette)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: round duration must be positive", ErrConfig)
	}
	if cfg.Round.Count < 1 {
		return fmt.Errorf("%w: %w", ErrConfig, round.ErrInvalidCount)
	}
	if !cfg.Round.Replacement && cfg.Round.Count > cfg.Pool.Len() {
		return fmt.Errorf("%w: %w", ErrConfig, round.ErrPoolTooSmall)
	}

	switch cfg.Kind {
	case KindSort:
		if cfg.Buckets == nil {
			return fmt.Errorf("%w: sort games need a bucket table", ErrConfig)
		}
		if err := cfg.Buckets.Validate(cfg.Pool); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	case KindTarget:
		cfg.Round.RequireTarget = true
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrConfig, cfg.Kind)
	}

	if cfg.ConfirmSamples < 1 {
		cfg.ConfirmSamples = 1
	}
	return nil
}

// StartGame resets score and streak and starts the first round.
// Valid from any phase.
func (e *Engine) StartGame() error {
	e.score = 0
	e.streak = 0
	return e.beginRound()
}

// NextRound starts a fresh round, keeping score and streak. From Active it
// abandons the running round without scoring it.
func (e *Engine) NextRound() error {
	if e.phase == PhaseIdle {
		return ErrNotStarted
	}
	return e.beginRound()
}

func (e *Engine) beginRound() error {
	r, err := e.gen.Generate(e.cfg.Pool, e.cfg.Round)
	if err != nil {
		return fmt.Errorf("engine: generate round: %w", err)
	}

	// Start issues a new token, so anything tagged with the old one is stale.
	e.token = e.clock.Start(e.cfg.Duration)

	r.Deadline = e.cfg.Duration
	r.StartedAt = e.src.Now()
	e.current = r
	e.roundNo++
	e.phase = PhaseActive
	e.success = false
	e.placements = make(map[round.ItemID]color.Bucket, len(r.Items))
	e.mistakes = nil
	e.misses = 0
	e.confirm = 0
	e.reading = nil

	e.notify()
	return nil
}

// SubmitPlacement assigns an item to a bucket; BucketNone clears it.
// Returns false if the intent was rejected. When the placement completes
// the board the round is evaluated immediately.
func (e *Engine) SubmitPlacement(id round.ItemID, b color.Bucket) bool {
	if e.cfg.Kind != KindSort || !e.acceptingInput() {
		return false
	}
	if _, err := e.current.Item(id); err != nil {
		return false
	}
	if b != color.BucketNone && !b.Valid() {
		return false
	}

	if b == color.BucketNone {
		delete(e.placements, id)
	} else {
		e.placements[id] = b
	}

	if len(e.placements) == len(e.current.Items) {
		e.finish(e.evaluate())
		return true
	}

	e.notify()
	return true
}

// SubmitTargetHit feeds a colour sample (a tile click or a camera reading).
// The sample is matched to the nearest pool colour; a match with the target
// wins the round once ConfirmSamples consecutive matches have been seen.
func (e *Engine) SubmitTargetHit(sample color.RGB) bool {
	if e.cfg.Kind != KindTarget || !e.acceptingInput() {
		return false
	}
	if e.src.Now().Sub(e.current.StartedAt) < e.cfg.Cooldown {
		return false
	}

	nearest := color.Nearest(sample, e.cfg.Pool)
	e.reading = &nearest

	if nearest.Name != e.current.Target.Name {
		e.confirm = 0
		e.misses++
		e.notify()
		return true
	}

	e.confirm++
	if e.confirm >= e.cfg.ConfirmSamples {
		e.finish(true)
		return true
	}
	e.notify()
	return true
}

// SubmitItemHit treats a click on an item as a sample of its exact colour.
func (e *Engine) SubmitItemHit(id round.ItemID) bool {
	if e.cfg.Kind != KindTarget || e.phase != PhaseActive {
		return false
	}
	it, err := e.current.Item(id)
	if err != nil {
		return false
	}
	return e.SubmitTargetHit(it.Color.RGB)
}

// Tick polls the countdown. Call it once per frame.
func (e *Engine) Tick() {
	if e.phase != PhaseActive {
		return
	}
	before := e.clock.Remaining()
	if e.syncClock() {
		return
	}
	if e.clock.Remaining() != before {
		e.notify()
	}
}

// HandleClockEvent accepts a countdown event delivered from outside the
// frame loop. Events carrying a stale token are discarded.
func (e *Engine) HandleClockEvent(ev clock.Event) bool {
	if !e.clock.IsCurrent(ev.Token) || e.phase != PhaseActive {
		return false
	}
	if !ev.Expired {
		return true
	}
	if !e.clock.Expire(ev.Token) {
		return false
	}
	e.finish(false)
	return true
}

// acceptingInput reports whether player actions may mutate the round.
// Expiry wins over a late action: if the deadline has passed the round
// ends here and the action is dropped.
func (e *Engine) acceptingInput() bool {
	if e.phase != PhaseActive {
		return false
	}
	return !e.syncClock()
}

// syncClock polls the clock and ends the round on expiry.
// Returns true if the round just expired.
func (e *Engine) syncClock() bool {
	ev, ok := e.clock.Poll()
	if !ok || !ev.Expired {
		return false
	}
	e.finish(false)
	return true
}

func (e *Engine) finish(success bool) {
	e.clock.Stop(e.token)
	e.phase = PhaseResult
	e.success = success

	if success {
		e.score += e.roundPoints()
		e.streak++
		if e.streak > e.best {
			e.best = e.streak
		}
		e.mistakes = nil
	} else {
		e.streak = 0
		if e.cfg.Kind == KindSort {
			_, e.mistakes = e.mustEvaluate()
		}
	}
	e.notify()
}

func (e *Engine) roundPoints() int {
	if e.cfg.Kind == KindSort {
		return len(e.current.Items)
	}
	return 1
}

func (e *Engine) evaluate() bool {
	ok, _ := e.mustEvaluate()
	return ok
}

// mustEvaluate runs Evaluate on the live round. The bucket table was
// checked against the pool in New, so a classification error here means
// the engine itself is broken.
func (e *Engine) mustEvaluate() (bool, []round.ItemID) {
	ok, wrong, err := Evaluate(e.current.Items, e.placements, e.cfg.Buckets)
	if err != nil {
		panic(err)
	}
	return ok, wrong
}

// SetDuration changes the length of rounds started after this call.
// The running round keeps its deadline.
func (e *Engine) SetDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: round duration must be positive", ErrConfig)
	}
	e.cfg.Duration = d
	return nil
}

// Subscribe registers fn to be called once per state change.
// The returned function removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn
	return func() {
		delete(e.listeners, id)
	}
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.listeners {
		fn(snap)
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Config returns the validated configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
