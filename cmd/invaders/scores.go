package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagCSV   string
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for a mode (default: invaders).

With --csv, every recorded score is exported instead. Without a mode,
the export covers all modes. Use "-" to write to stdout.

Examples:
  invaders scores
  invaders scores invaders_wave
  invaders scores --csv scores.csv
  invaders scores invaders_classic --csv -
  invaders scores invaders_wave --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagCSV, "csv", "", "Export all scores as CSV to this file")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagCSV != "":
		err = exportScores(store, gameID, flagCSV)
	case flagClear:
		if gameID == "" {
			gameID = registry.Default
		}
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Cleared scores for %s.\n", gameID)
		}
	default:
		if gameID == "" {
			gameID = registry.Default
		}
		err = printScores(store, gameID)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func exportScores(store *storage.Store, gameID, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	n, err := store.ExportCSV(w, gameID)
	if err != nil {
		return err
	}
	if path != "-" {
		fmt.Printf("Exported %d scores to %s\n", n, path)
	}
	return nil
}

func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'invaders play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "When")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-8s  %s\n", i+1, entry.Player,
			humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %s  Average: %.1f  Last played: %s\n",
			humanize.Comma(int64(stats.GamesCount)), stats.AvgScore, humanize.Time(stats.LastPlayed))
	}
	return nil
}
