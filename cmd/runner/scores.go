package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the best finished sessions of a variant, or clear them.

Examples:
  runner scores classic
  runner scores lite --limit 20
  runner scores classic --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of scores to show (env: RUNNER_LIMIT)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history and record of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	variant := args[0]
	if err := requireVariant(variant); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(variant); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared all scores for %s.\n", variant)
		return nil
	}

	scores, err := store.TopScores(variant, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", variantTitle(variant))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first high score!\n", variant)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		played := time.Duration(entry.Ticks) * time.Second / time.Duration(flagTPS)
		fmt.Printf("  %-4d  %-8d  %-8s  %s\n", i+1, entry.Score,
			played.Round(100*time.Millisecond), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(variant); err == nil {
		fmt.Printf("Record: %d  Sessions: %d  Average: %.0f\n", stats.Record, stats.Sessions, stats.AvgScore)
	}
	return nil
}

func variantTitle(id string) string {
	for _, v := range registry.List() {
		if v.ID == id {
			return v.Title
		}
	}
	return id
}
