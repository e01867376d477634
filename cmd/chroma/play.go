package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chroma-arcade/internal/config"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/games/hunt"
	"github.com/vovakirdan/chroma-arcade/internal/games/rush"
	"github.com/vovakirdan/chroma-arcade/internal/games/warmcool"
	"github.com/vovakirdan/chroma-arcade/internal/platform/tui"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/HJKL - Move
  Enter/Space      - Start, pick a tile, take a reading
  1/Z, 2/X         - Warm, cool (Warm vs Cool)
  0/Backspace      - Clear a chip
  R                - Next round (skips a running round)
  N                - New game
  P                - Pause
  Esc/B            - Back
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Full round time, shortens as you improve
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression, rounds stay at the config's length

Examples:
  chroma play sort
  chroma play rush --difficulty hard
  chroma play hunt --seed 42
  chroma play sort --config ./my-sort.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateDifficulty,
	Run:     runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// validateDifficulty rejects unknown --difficulty values.
func validateDifficulty(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("invalid --difficulty %q: want easy, normal, hard or fixed", flagDifficulty)
	}
	return nil
}

// checkGames creates each game and makes sure it can load its settings,
// so a bad config file stops the command before any screen opens.
func checkGames(cfg core.RuntimeConfig, ids ...string) error {
	for _, id := range ids {
		configureGame(id)
		game, err := registry.Create(id)
		if err != nil {
			return err
		}
		if err := registry.Check(game, cfg); err != nil {
			return err
		}
	}
	return nil
}

// configureGame hands CLI settings to a game before it is created.
func configureGame(gameID string) {
	switch gameID {
	case warmcool.ID:
		warmcool.SetConfigPath(flagConfig)
		warmcool.SetDifficultyPreset(flagDifficulty)
	case rush.ID:
		rush.SetConfigPath(flagConfig)
		rush.SetDifficultyPreset(flagDifficulty)
	case hunt.ID:
		hunt.SetConfigPath(flagConfig)
		hunt.SetDifficultyPreset(flagDifficulty)
	}
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, logging instead of failing:
// games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'chroma list' to see available games.")
		os.Exit(1)
	}

	cfg := terminalConfig()
	if err := checkGames(cfg, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	logger.Debug("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)

	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
