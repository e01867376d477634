package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/platform/tui"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick colour games from an interactive menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game with the arrow keys or j/k and Enter. Leaving a game (Esc)
brings you back here with your records updated.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play the selected game
  Tab          - High scores and round history
  Q            - Quit

Examples:
  chroma menu
  chroma menu --difficulty hard
  chroma menu --palettes ./palettes.yaml`,
	PreRunE: validateDifficulty,
	RunE:    runMenu,
}

// gameIDs lists every registered game.
func gameIDs() []string {
	games := registry.List()
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg := terminalConfig()
	if err := checkGames(cfg, gameIDs()...); err != nil {
		return err
	}

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	notice := ""
	for {
		choice, err := tui.RunMenu(store, cfg, notice)
		if err != nil {
			return err
		}
		cfg, notice = choice.Config, ""

		if choice.Quit {
			return nil
		}
		if choice.WantsScoreboard {
			if !showScores(store, cfg) {
				return nil
			}
			continue
		}

		game, err := registry.Create(choice.GameID)
		if err != nil {
			notice = err.Error()
			continue
		}

		// Fresh rounds each visit unless --seed pins them.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, logger); err != nil {
			notice = fmt.Sprintf("%s stopped: %v", choice.GameID, err)
			logger.Error("game stopped", "game", choice.GameID, "error", err)
		}
	}
}

// showScores opens the scoreboard and reports whether to return to the menu.
func showScores(store *storage.Store, cfg core.RuntimeConfig) bool {
	back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		logger.Error("scoreboard failed", "error", err)
		return true
	}
	return back
}
