package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/treeclimber/internal/registry"
	"github.com/vovakirdan/treeclimber/internal/score"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the best runs for the specified variant.

With --store gdata only the high score is kept.

Examples:
  treeclimber scores climber
  treeclimber scores climber-exp --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]
	mustExist(gameID)
	info, _ := registry.Info(gameID)

	st, err := openStores()
	if err != nil {
		fail("opening score store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if st.history != nil {
		entries, err := st.history.TopScores(ctx, gameID, flagScoresLimit)
		if err != nil {
			fail("retrieving scores: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println("No runs recorded yet.")
			fmt.Println()
			fmt.Printf("Play 'treeclimber play %s' to set the first high score!\n", gameID)
			return
		}

		fmt.Printf("  %-4s  %-8s  %-8s  %-20s  %s\n", "Rank", "Score", "Segments", "Seed", "Date")
		fmt.Printf("  %-4s  %-8s  %-8s  %-20s  %s\n", "----", "-----", "--------", "----", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-8s  %-8d  %-20d  %s\n",
				i+1, score.Format(e.Score), e.Segments, e.Seed, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	best, err := st.scores.HighScore(ctx, gameID)
	if err != nil {
		fail("retrieving high score: %v", err)
	}
	fmt.Printf("Best: %s\n", score.Format(best))
}
