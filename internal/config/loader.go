package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// palettesPath is the custom palettes file set via CLI.
var palettesPath string

// SetPalettesPath sets a custom palettes.yaml for LoadPalettes("").
func SetPalettesPath(path string) {
	palettesPath = path
}

// load fills out from the first readable source.
// Search order: customPath -> ~/.chroma/configs/<file> -> ./configs/<file> -> embedded.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when absent or invalid.
func load(file, customPath string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return nil
	}

	for _, path := range []string{userConfigPath(file), filepath.Join("configs", file)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	if err := yaml.Unmarshal(embedded, out); err != nil {
		return fmt.Errorf("config: parse embedded %s: %w", file, err)
	}
	return nil
}

// LoadSort loads the Warm vs Cool configuration.
func LoadSort(customPath string) (SortConfig, error) {
	var cfg SortConfig
	if err := load("sort.yaml", customPath, defaultSortYAML, &cfg); err != nil {
		return DefaultSortConfig(), err
	}
	return cfg, nil
}

// LoadRush loads the Color Rush configuration.
func LoadRush(customPath string) (RushConfig, error) {
	var cfg RushConfig
	if err := load("rush.yaml", customPath, defaultRushYAML, &cfg); err != nil {
		return DefaultRushConfig(), err
	}
	return cfg, nil
}

// LoadHunt loads the Color Hunt configuration.
func LoadHunt(customPath string) (HuntConfig, error) {
	var cfg HuntConfig
	if err := load("hunt.yaml", customPath, defaultHuntYAML, &cfg); err != nil {
		return DefaultHuntConfig(), err
	}
	return cfg, nil
}

// LoadPalettes loads the palettes and bucket rule. An empty customPath
// falls back to the path set with SetPalettesPath.
func LoadPalettes(customPath string) (PalettesConfig, error) {
	if customPath == "" {
		customPath = palettesPath
	}
	var cfg PalettesConfig
	if err := load("palettes.yaml", customPath, defaultPalettesYAML, &cfg); err != nil {
		return DefaultPalettes(), err
	}
	return cfg, nil
}

// Dir returns the per-user data directory (~/.chroma), or "" if the home
// directory is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chroma")
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
