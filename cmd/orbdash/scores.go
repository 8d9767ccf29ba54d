package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orb-dash/internal/games/runner"
	"github.com/vovakirdan/orb-dash/internal/storage"
)

var (
	flagScoreLimit  int
	flagScoreRecent bool
	flagScoreClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, or the most recent runs, with summary stats.

Examples:
  orbdash scores
  orbdash scores --limit 25
  orbdash scores --recent
  orbdash scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoreRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoreClear, "clear", false, "Delete all recorded runs and the best score")
}

func runScores(_ *cobra.Command, _ []string) {
	gameID := runner.GameID

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoreClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	var scores []storage.ScoreEntry
	title := "High Scores - Orb Dash"
	if flagScoreRecent {
		title = "Recent Runs - Orb Dash"
		scores, err = store.AllScores(gameID)
		if len(scores) > flagScoreLimit && flagScoreLimit > 0 {
			scores = scores[:flagScoreLimit]
		}
	} else {
		scores, err = store.TopScores(gameID, flagScoreLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'orbdash play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %s\n", "Rank", "Score", "Level", "Run", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %s\n", "----", "-----", "-----", "---", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-8s  %s\n", i+1, entry.Score, entry.Level, shortID(entry.RunID), dateStr)
	}

	// Show summary
	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %d  Avg: %.0f  Deepest level: %d\n", stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
