package config

import (
	_ "embed"

	"github.com/vovakirdan/chroma-arcade/internal/color"
)

//go:embed defaults/sort.yaml
var defaultSortYAML []byte

//go:embed defaults/rush.yaml
var defaultRushYAML []byte

//go:embed defaults/hunt.yaml
var defaultHuntYAML []byte

//go:embed defaults/palettes.yaml
var defaultPalettesYAML []byte

// DefaultSortConfig returns the default Warm vs Cool configuration.
func DefaultSortConfig() SortConfig {
	return SortConfig{
		Palette: "base",
		Exclude: []string{"white"},
		Round: RoundConfig{
			Items:      8,
			Seconds:    12,
			MinSeconds: 6,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "streak", MaxAt: 10},
			Scaling:     ScalingConfig{DurationReduction: 0.4, ExtraItems: 4},
		},
	}
}

// DefaultRushConfig returns the default Color Rush configuration.
func DefaultRushConfig() RushConfig {
	return RushConfig{
		Palette: "rush",
		Round: RoundConfig{
			Items:       25,
			Seconds:     5,
			MinSeconds:  2,
			Replacement: true,
		},
		Grid: GridConfig{Cols: 5, Rows: 5},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 30},
			Scaling:     ScalingConfig{DurationReduction: 0.5},
		},
	}
}

// DefaultHuntConfig returns the default Color Hunt configuration.
func DefaultHuntConfig() HuntConfig {
	return HuntConfig{
		Palette: "hunt",
		Round: RoundConfig{
			Items:       12,
			Seconds:     30,
			MinSeconds:  10,
			Replacement: true,
		},
		Scene: SceneConfig{Cols: 4, Rows: 3, PatchSize: 48, Noise: 12, Step: 16},
		Sampling: SamplingConfig{
			EveryTicks:     6,
			CooldownMs:     500,
			ConfirmSamples: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 15},
			Scaling:     ScalingConfig{DurationReduction: 0.5},
		},
	}
}

// DefaultPalettes returns the compiled-in palettes and bucket rule.
func DefaultPalettes() PalettesConfig {
	cfg := PalettesConfig{
		Palettes: map[string][]ColorEntry{
			"base": entries(color.BasePalette),
			"rush": entries(color.RushPalette),
			"hunt": entries(color.HuntPalette),
		},
		Buckets: map[string][]string{},
	}
	for _, c := range color.BasePalette.Colors() {
		b, err := color.WarmCool.Classify(c.Name)
		if err != nil {
			continue
		}
		cfg.Buckets[string(b)] = append(cfg.Buckets[string(b)], c.Name)
	}
	return cfg
}

func entries(p color.Palette) []ColorEntry {
	out := make([]ColorEntry, 0, p.Len())
	for _, c := range p.Colors() {
		out = append(out, ColorEntry{Name: c.Name, Hex: c.Hex()})
	}
	return out
}
