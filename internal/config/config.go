// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/chroma-arcade/internal/color"
)

// ErrUnknownPalette is returned when a game names a palette that
// palettes.yaml does not define.
var ErrUnknownPalette = errors.New("config: unknown palette")

// RoundConfig describes the content and length of one round.
type RoundConfig struct {
	Items       int     `yaml:"items"`
	Seconds     float64 `yaml:"seconds"`
	MinSeconds  float64 `yaml:"min_seconds"` // floor when difficulty shortens rounds
	Replacement bool    `yaml:"replacement"`
}

// Duration returns the round length.
func (r RoundConfig) Duration() time.Duration {
	return time.Duration(r.Seconds * float64(time.Second))
}

// MinDuration returns the shortest round difficulty may produce.
func (r RoundConfig) MinDuration() time.Duration {
	return time.Duration(r.MinSeconds * float64(time.Second))
}

// SortConfig contains all configuration for the warm/cool sorting game.
type SortConfig struct {
	Palette    string           `yaml:"palette"`
	Exclude    []string         `yaml:"exclude"` // colours never dealt
	Round      RoundConfig      `yaml:"round"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RushConfig contains all configuration for the Color Rush game.
type RushConfig struct {
	Palette    string           `yaml:"palette"`
	Round      RoundConfig      `yaml:"round"`
	Grid       GridConfig       `yaml:"grid"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig is the tile layout of the rush board.
type GridConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// HuntConfig contains all configuration for the Color Hunt game.
type HuntConfig struct {
	Palette    string           `yaml:"palette"`
	Round      RoundConfig      `yaml:"round"`
	Scene      SceneConfig      `yaml:"scene"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SceneConfig describes the synthetic camera view.
type SceneConfig struct {
	Cols      int `yaml:"cols"`
	Rows      int `yaml:"rows"`
	PatchSize int `yaml:"patch_size"` // pixels per patch
	Noise     int `yaml:"noise"`      // per-channel noise amplitude
	Step      int `yaml:"step"`       // viewfinder movement per key press, in pixels
}

// SamplingConfig controls how often the viewfinder is read and how a hit
// is confirmed.
type SamplingConfig struct {
	EveryTicks     int `yaml:"every_ticks"`
	CooldownMs     int `yaml:"cooldown_ms"`
	ConfirmSamples int `yaml:"confirm_samples"`
}

// Cooldown returns the post-start grace period.
func (s SamplingConfig) Cooldown() time.Duration {
	return time.Duration(s.CooldownMs) * time.Millisecond
}

// PalettesConfig holds every named palette and the warm/cool rule.
type PalettesConfig struct {
	Palettes map[string][]ColorEntry `yaml:"palettes"`
	Buckets  map[string][]string     `yaml:"buckets"` // bucket name -> colour names
}

// ColorEntry is one named colour in palettes.yaml.
type ColorEntry struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// Palette builds the named palette.
func (p PalettesConfig) Palette(name string) (color.Palette, error) {
	entries, ok := p.Palettes[name]
	if !ok {
		return color.Palette{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}

	colors := make([]color.Color, 0, len(entries))
	for _, e := range entries {
		rgb, err := color.ParseHex(e.Hex)
		if err != nil {
			return color.Palette{}, fmt.Errorf("config: palette %s: colour %s: %w", name, e.Name, err)
		}
		colors = append(colors, color.Color{Name: e.Name, RGB: rgb})
	}

	pal, err := color.NewPalette(colors...)
	if err != nil {
		return color.Palette{}, fmt.Errorf("config: palette %s: %w", name, err)
	}
	return pal, nil
}

// BucketTable builds the bucket rule.
func (p PalettesConfig) BucketTable() (color.BucketTable, error) {
	sets := make(map[color.Bucket][]string, len(p.Buckets))
	for name, colors := range p.Buckets {
		b, ok := color.ParseBucket(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown bucket %q", name)
		}
		sets[b] = append(sets[b], colors...)
	}

	table, err := color.NewBucketTable(sets)
	if err != nil {
		return nil, fmt.Errorf("config: buckets: %w", err)
	}
	return table, nil
}
