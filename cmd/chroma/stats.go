package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show round statistics",
	Long: `Summarise games and rounds played, per game, followed by the
most recent rounds.

Examples:
  chroma stats
  chroma stats hunt --recent 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent rounds to list (0 to hide)")
}

func runStats(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'chroma list' to see available games.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		if gameID == "" || id == gameID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	if len(ids) == 0 {
		fmt.Println("Nothing played yet.")
		return
	}

	fmt.Printf("  %-6s  %-5s  %-5s  %-8s  %-6s  %-6s  %-6s  %s\n",
		"Game", "Games", "Best", "Avg", "Streak", "Rounds", "Acc", "Avg round")
	fmt.Printf("  %-6s  %-5s  %-5s  %-8s  %-6s  %-6s  %-6s  %s\n",
		"----", "-----", "----", "---", "------", "------", "---", "---------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-6s  %-5d  %-5d  %-8.1f  %-6d  %-6d  %-6s  %.1fs\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.BestStreak, st.Rounds,
			fmt.Sprintf("%.0f%%", st.Accuracy()*100), st.AvgRoundDur.Seconds())
	}

	if flagRecent <= 0 {
		return
	}

	rounds, err := store.RecentRounds(gameID, flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}
	if len(rounds) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent rounds:")
	for _, r := range rounds {
		result := "miss"
		if r.Success {
			result = "won"
		}
		fmt.Printf("  %s  %-5s  #%-3d  %-4s  %+d  streak %d  %.1fs",
			r.CreatedAt.Format("2006-01-02 15:04"), r.GameID, r.RoundNo, result,
			r.Delta, r.Streak, r.Duration.Seconds())
		if r.Mistakes > 0 {
			fmt.Printf("  mistakes %d", r.Mistakes)
		}
		fmt.Println()
	}
}
