// chroma is a terminal arcade of colour-perception mini-games.
//
// Usage:
//
//	chroma list                - List available games
//	chroma play <game>         - Play a game
//	chroma menu                - Start menu to pick games interactively
//	chroma serve               - Start SSH server for remote play
//	chroma scores <game>       - Show high scores for a game
//	chroma stats [game]        - Show round statistics
//	chroma classify <colour>   - Name a colour and its warm/cool bucket
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.chroma/scores.db)
//	--palettes <path>     - Use a custom palettes.yaml
//	--log-level <level>   - debug, info, warn or error
//
// Defaults may also come from CHROMA_* variables or a .env file.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chroma-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/chroma-arcade/internal/games/hunt"
	_ "github.com/vovakirdan/chroma-arcade/internal/games/rush"
	_ "github.com/vovakirdan/chroma-arcade/internal/games/warmcool"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagPalettes string
	flagLogLevel string

	env    = loadEnv()
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chroma",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chroma",
	Short: "Chroma Arcade - colour perception games in your terminal",
	Long: `Chroma Arcade is a set of short, timed colour games you can play
in a terminal or over SSH.

Games:
  sort   - Warm vs Cool: put every chip in the right bucket
  rush   - Color Rush: spot the target colour on a grid
  hunt   - Color Hunt: steer a viewfinder onto the target colour

Examples:
  chroma list
  chroma play sort
  chroma play rush --difficulty hard
  chroma menu
  chroma serve --ssh :2222
  chroma classify "#ff8800"`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// loadEnv reads .env and CHROMA_* variables. They only change flag
// defaults; explicit flags win.
func loadEnv() config.Env {
	//nolint:errcheck // a broken .env falls back to the process environment
	config.LoadDotEnv(".env")
	return config.LoadEnv()
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPalettes, "palettes", "", "Path to custom palettes.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(classifyCmd)
}

// setup applies global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	log.SetDefault(logger)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	config.SetPalettesPath(flagPalettes)
	return nil
}
