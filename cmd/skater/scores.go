package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sats-skater/internal/config"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top runs for a difficulty, or for every difficulty
when --difficulty is not given.

Examples:
  skater scores
  skater scores --difficulty hard
  skater scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show per board")
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	boards := config.Presets
	if flagDifficulty != "" {
		boards = []config.DifficultyPreset{config.ParsePreset(flagDifficulty)}
	}

	for i, board := range boards {
		if i > 0 {
			fmt.Println()
		}

		scores, err := store.TopScores(string(board), flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("High Scores - %s\n", board)
		fmt.Println()

		if len(scores) == 0 {
			fmt.Println("  No runs recorded yet.")
			continue
		}

		fmt.Printf("  %-4s  %-16s  %-8s  %-8s  %s\n", "Rank", "Player", "Score", "Dist", "Date")
		fmt.Printf("  %-4s  %-16s  %-8s  %-8s  %s\n", "----", "------", "-----", "----", "----")
		for j, r := range scores {
			fmt.Printf("  %-4d  %-16s  %-8d  %-8s  %s\n", j+1, r.Player, r.Score,
				fmt.Sprintf("%.0fm", r.Distance/10), r.CreatedAt.Format("2006-01-02 15:04"))
		}

		if stats, err := store.GetGameStats(string(board)); err == nil {
			fmt.Println()
			fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Tricks: %d\n",
				stats.RunsCount, stats.HighScore, stats.AvgScore, stats.TotalTricks)
		}
	}
}
