package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Aidenn8/Pathfinder/internal/game"
	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best chase runs",
	Long: `Display the top 10 chase runs for a level, or a summary of every level
when no level is given.

Examples:
  pathfinder scores
  pathfinder scores lvl02
  pathfinder scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded chase runs")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	mode := string(game.ModeChase)

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Println("All chase runs deleted.")
		return nil
	}

	if len(args) == 0 {
		return printSummary(store, mode)
	}

	lvl, err := levels.Find(flagLevelsDir, args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	runs, err := store.TopRuns(mode, lvl.ID, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pathfinder play %s' to set the first score!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, r := range runs {
		seconds := float64(r.Ticks) / float64(cfg.Sim.TickRate)
		fmt.Printf("  %-4d  %-8d  %-8s  %s\n", i+1, r.Score, fmt.Sprintf("%.1fs", seconds), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", runs[0].Score)
	return nil
}

// printSummary shows one line per level that has runs.
func printSummary(store *storage.Store, mode string) error {
	stats, err := store.Stats(mode)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %5s  %6s  %8s  %s\n", "Level", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-12s  %5s  %6s  %8s  %s\n", "-----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-12s  %5d  %6d  %8.1f  %s\n", id, s.Runs, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
