// Package warmcool implements Warm vs Cool: a board of colour chips that
// must each be sorted into the warm or the cool bucket before the round
// clock runs out.
package warmcool

import (
	"fmt"

	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/config"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
	"github.com/vovakirdan/chroma-arcade/internal/games/kit"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

// ID is the registry and score-table identifier.
const ID = "sort"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom sort.yaml.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the Warm vs Cool game.
type Game struct {
	runtime core.RuntimeConfig
	session *kit.Session
	table   color.BucketTable
	cursor  int
	err     error
}

// New creates a Warm vs Cool game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Warm vs Cool" }

// Description returns the one-line summary.
func (g *Game) Description() string {
	return "Sort every colour chip into warm or cool before time runs out"
}

// Reset loads configuration and returns to the intro screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cursor = 0
	g.session = nil
	g.err = nil

	cfg, err := config.LoadSort(configPath)
	if err != nil {
		g.err = err
		return
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)

	session, table, err := build(cfg, runtime)
	if err != nil {
		g.err = err
		return
	}
	g.session = session
	g.table = table
}

func build(cfg config.SortConfig, runtime core.RuntimeConfig) (*kit.Session, color.BucketTable, error) {
	pals, err := config.LoadPalettes("")
	if err != nil {
		return nil, nil, err
	}
	pool, err := pals.Palette(cfg.Palette)
	if err != nil {
		return nil, nil, err
	}
	pool, err = pool.Without(cfg.Exclude...)
	if err != nil {
		return nil, nil, fmt.Errorf("sort: %w", err)
	}
	table, err := pals.BucketTable()
	if err != nil {
		return nil, nil, err
	}

	limit := 0
	if !cfg.Round.Replacement {
		limit = pool.Len()
	}
	items := config.NewDifficultyManager(cfg.Difficulty).Items(cfg.Round.Items, limit)

	session, err := kit.NewSession(kit.Options{
		Engine: engine.Config{
			Kind:    engine.KindSort,
			Pool:    pool,
			Buckets: table,
			Round: round.Options{
				Count:       items,
				Replacement: cfg.Round.Replacement,
			},
			Duration: cfg.Round.Duration(),
			Seed:     runtime.Seed,
		},
		Runtime:     runtime,
		Difficulty:  cfg.Difficulty,
		MinDuration: cfg.Round.MinDuration(),
	})
	if err != nil {
		return nil, nil, err
	}
	return session, table, nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	roundBefore := g.session.Snapshot().RoundNo
	active := g.session.Begin(in)
	if g.session.Snapshot().RoundNo != roundBefore {
		g.cursor = 0
	}
	if active {
		g.processInput(in)
	}
	return g.session.Result()
}

func (g *Game) processInput(in core.InputFrame) {
	snap := g.session.Snapshot()
	n := len(snap.Items)
	if n == 0 {
		return
	}
	cols := columns(n)

	switch {
	case in.Has(core.ActionLeft):
		g.cursor = core.Wrap(g.cursor-1, n)
	case in.Has(core.ActionRight):
		g.cursor = core.Wrap(g.cursor+1, n)
	case in.Has(core.ActionUp):
		g.cursor = core.Wrap(g.cursor-cols, n)
	case in.Has(core.ActionDown):
		g.cursor = core.Wrap(g.cursor+cols, n)
	}

	var b color.Bucket
	switch {
	case in.Has(core.ActionAssignA):
		b = color.BucketWarm
	case in.Has(core.ActionAssignB):
		b = color.BucketCool
	case in.Has(core.ActionClear):
		g.session.Engine().SubmitPlacement(round.ItemID(g.cursor), color.BucketNone)
		return
	default:
		return
	}

	if g.session.Engine().SubmitPlacement(round.ItemID(g.cursor), b) {
		g.advanceCursor()
	}
}

// advanceCursor moves to the next chip without a bucket.
func (g *Game) advanceCursor() {
	snap := g.session.Snapshot()
	n := len(snap.Items)
	for i := 1; i <= n; i++ {
		next := (g.cursor + i) % n
		if _, placed := snap.Placements[round.ItemID(next)]; !placed {
			g.cursor = next
			return
		}
	}
}

// columns picks the board width for n chips.
func columns(n int) int {
	if n <= 4 {
		return n
	}
	if n <= 8 {
		return (n + 1) / 2
	}
	return 4
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return g.session.State()
}

// Snapshot returns the engine snapshot, for tests and replays.
func (g *Game) Snapshot() engine.Snapshot {
	if g.session == nil {
		return engine.Snapshot{}
	}
	return g.session.Snapshot()
}

// Err reports why the last Reset could not set up a round, usually a bad
// config or palettes file.
func (g *Game) Err() error {
	return g.err
}

// Cursor returns the selected chip.
func (g *Game) Cursor() int {
	return g.cursor
}
