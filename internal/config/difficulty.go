package config

import (
	"math"
	"time"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "streak" or "none"
	MaxAt int    `yaml:"max_at"` // score/streak at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DurationReduction float64 `yaml:"duration_reduction"` // fraction of round time removed at max difficulty
	ExtraItems        int     `yaml:"extra_items"`        // items added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies a difficulty config for a preset. An empty preset
// leaves the file's settings alone; fixed disables progression.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}

// DifficultyManager calculates round parameters from session progress.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for the session progress.
func (d *DifficultyManager) Level(score, streak int) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "streak":
		progress = float64(streak) / maxAt
	default:
		return d.cfg.InitialLevel
	}

	progress = clampF(progress, 0, 1)
	return d.cfg.InitialLevel + progress*(1-d.cfg.InitialLevel)
}

// Duration shortens the base round length as difficulty rises, never
// going below floor.
func (d *DifficultyManager) Duration(base, floor time.Duration, score, streak int) time.Duration {
	level := d.Level(score, streak)
	out := time.Duration(float64(base) * (1 - level*d.cfg.Scaling.DurationReduction))
	if out < floor {
		out = floor
	}
	if out <= 0 {
		out = base
	}
	return out.Round(time.Millisecond)
}

// Items returns the item count for the level at session start, capped at limit
// (limit <= 0 means no cap).
func (d *DifficultyManager) Items(base, limit int) int {
	out := base + int(math.Round(d.cfg.InitialLevel*float64(d.cfg.Scaling.ExtraItems)))
	if limit > 0 && out > limit {
		out = limit
	}
	if out < 1 {
		out = 1
	}
	return out
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
