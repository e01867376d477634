// Package rush implements Color Rush: a grid of tiles and a target colour
// to find among them, with a short clock on every round.
package rush

import (
	"github.com/vovakirdan/chroma-arcade/internal/config"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
	"github.com/vovakirdan/chroma-arcade/internal/games/kit"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

// ID is the registry and score-table identifier.
const ID = "rush"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom rush.yaml.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements Color Rush.
type Game struct {
	runtime    core.RuntimeConfig
	session    *kit.Session
	cols, rows int
	cursorX    int
	cursorY    int
	err        error
}

// New creates a Color Rush game.
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
func (g *Game) Title() string { return "Color Rush" }

// Description returns the one-line summary.
func (g *Game) Description() string {
	return "Spot a tile of the target colour before the clock runs out"
}

// Reset loads configuration and returns to the intro screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.session = nil
	g.err = nil

	cfg, err := config.LoadRush(configPath)
	if err != nil {
		g.err = err
		return
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)

	g.cols, g.rows = layout(cfg)
	g.cursorX, g.cursorY = g.cols/2, g.rows/2

	pals, err := config.LoadPalettes("")
	if err != nil {
		g.err = err
		return
	}
	pool, err := pals.Palette(cfg.Palette)
	if err != nil {
		g.err = err
		return
	}

	g.session, g.err = kit.NewSession(kit.Options{
		Engine: engine.Config{
			Kind: engine.KindTarget,
			Pool: pool,
			Round: round.Options{
				Count:       g.cols * g.rows,
				Replacement: cfg.Round.Replacement,
			},
			Duration: cfg.Round.Duration(),
			Seed:     runtime.Seed,
		},
		Runtime:     runtime,
		Difficulty:  cfg.Difficulty,
		MinDuration: cfg.Round.MinDuration(),
	})
}

// layout returns the board size. A missing grid falls back to a single
// row of round.items tiles.
func layout(cfg config.RushConfig) (int, int) {
	if cfg.Grid.Cols > 0 && cfg.Grid.Rows > 0 {
		return cfg.Grid.Cols, cfg.Grid.Rows
	}
	return max(cfg.Round.Items, 1), 1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	if g.session.Begin(in) {
		g.processInput(in)
	}
	return g.session.Result()
}

func (g *Game) processInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.cursorX = core.Wrap(g.cursorX-1, g.cols)
	case in.Has(core.ActionRight):
		g.cursorX = core.Wrap(g.cursorX+1, g.cols)
	case in.Has(core.ActionUp):
		g.cursorY = core.Wrap(g.cursorY-1, g.rows)
	case in.Has(core.ActionDown):
		g.cursorY = core.Wrap(g.cursorY+1, g.rows)
	}

	if in.Has(core.ActionConfirm) {
		g.session.Engine().SubmitItemHit(round.ItemID(g.Cursor()))
	}
}

// Cursor returns the selected tile index.
func (g *Game) Cursor() int {
	return g.cursorY*g.cols + g.cursorX
}

// MoveTo selects the tile at index i.
func (g *Game) MoveTo(i int) {
	if g.cols == 0 {
		return
	}
	i = core.Clamp(i, 0, g.cols*g.rows-1)
	g.cursorX, g.cursorY = i%g.cols, i/g.cols
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return g.session.State()
}

// Err reports why the last Reset could not set up a round.
func (g *Game) Err() error {
	return g.err
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() engine.Snapshot {
	if g.session == nil {
		return engine.Snapshot{}
	}
	return g.session.Snapshot()
}
