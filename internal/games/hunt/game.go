// Package hunt implements Color Hunt: a noisy synthetic camera view and a
// viewfinder the player steers onto the target colour. The viewfinder is
// read with the same cross sampler used on real photos.
package hunt

import (
	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/config"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
	"github.com/vovakirdan/chroma-arcade/internal/games/kit"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/round"
	"github.com/vovakirdan/chroma-arcade/internal/sampler"
)

// ID is the registry and score-table identifier.
const ID = "hunt"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom hunt.yaml.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements Color Hunt.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.HuntConfig
	session *kit.Session
	err     error

	scene      *sampler.Scene
	sceneRound int
	ticks      int // ticks since the round started
}

// New creates a Color Hunt game.
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
func (g *Game) Title() string { return "Color Hunt" }

// Description returns the one-line summary.
func (g *Game) Description() string {
	return "Steer the viewfinder onto the target colour and hold it there"
}

// Reset loads configuration and returns to the intro screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.session = nil
	g.scene = nil
	g.sceneRound = 0
	g.ticks = 0
	g.err = nil

	cfg, err := config.LoadHunt(configPath)
	if err != nil {
		g.err = err
		return
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	if cfg.Scene.Cols <= 0 || cfg.Scene.Rows <= 0 {
		def := config.DefaultHuntConfig().Scene
		cfg.Scene.Cols, cfg.Scene.Rows = def.Cols, def.Rows
	}
	if cfg.Scene.Step <= 0 {
		cfg.Scene.Step = 1
	}
	if cfg.Sampling.EveryTicks <= 0 {
		cfg.Sampling.EveryTicks = 1
	}
	g.cfg = cfg

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
				Count:       cfg.Scene.Cols * cfg.Scene.Rows,
				Replacement: cfg.Round.Replacement,
			},
			Duration:       cfg.Round.Duration(),
			Seed:           runtime.Seed,
			Cooldown:       cfg.Sampling.Cooldown(),
			ConfirmSamples: cfg.Sampling.ConfirmSamples,
		},
		Runtime:     runtime,
		Difficulty:  cfg.Difficulty,
		MinDuration: cfg.Round.MinDuration(),
	})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	active := g.session.Begin(in)
	g.syncScene()
	if active {
		g.processInput(in)
	}
	return g.session.Result()
}

// syncScene lays out a new scene whenever a round starts.
func (g *Game) syncScene() {
	snap := g.session.Snapshot()
	if snap.RoundNo == g.sceneRound || len(snap.Items) == 0 {
		return
	}

	patches := make([]color.Color, len(snap.Items))
	for i, it := range snap.Items {
		patches[i] = it.Color
	}
	g.scene = sampler.NewScene(patches, sampler.SceneOptions{
		Cols:      g.cfg.Scene.Cols,
		Rows:      g.cfg.Scene.Rows,
		PatchSize: g.cfg.Scene.PatchSize,
		Noise:     g.cfg.Scene.Noise,
		Seed:      g.runtime.Seed + int64(snap.RoundNo),
	})
	g.sceneRound = snap.RoundNo
	g.ticks = 0
}

func (g *Game) processInput(in core.InputFrame) {
	step := g.cfg.Scene.Step
	switch {
	case in.Has(core.ActionLeft):
		g.scene.Move(-step, 0)
	case in.Has(core.ActionRight):
		g.scene.Move(step, 0)
	case in.Has(core.ActionUp):
		g.scene.Move(0, -step)
	case in.Has(core.ActionDown):
		g.scene.Move(0, step)
	}

	g.ticks++
	// Confirm takes a reading immediately instead of waiting for the next one.
	if g.ticks%g.cfg.Sampling.EveryTicks == 0 || in.Has(core.ActionConfirm) {
		g.session.Engine().SubmitTargetHit(g.scene.Sample())
	}
}

// Aim centres the viewfinder on the patch at (col, row).
func (g *Game) Aim(col, row int) {
	if g.scene == nil {
		return
	}
	size := g.scene.PatchSize()
	col = core.Clamp(col, 0, g.scene.Cols()-1)
	row = core.Clamp(row, 0, g.scene.Rows()-1)
	vx, vy := g.scene.Viewfinder()
	g.scene.Move(col*size+size/2-vx, row*size+size/2-vy)
}

// Scene returns the current camera view, nil before the first round.
func (g *Game) Scene() *sampler.Scene {
	return g.scene
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
