package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aidenn8/Pathfinder/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the builtin levels merged with any level files found in the
--levels directory. A file level replaces a builtin level with the same ID.`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, err := levels.Catalog(flagLevelsDir)
	if err != nil {
		return err
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-20s  %5s  %6s  %s\n", maxIDLen, "ID", "Name", "Walls", "Movers", "Source")
	fmt.Printf("  %-*s  %-20s  %5s  %6s  %s\n", maxIDLen, "--", "----", "-----", "------", "------")

	for _, lvl := range lvls {
		source := "builtin"
		if lvl.FilePath != "" {
			source = lvl.FilePath
		}
		fmt.Printf("  %-*s  %-20s  %5d  %6d  %s\n", maxIDLen, lvl.ID, lvl.Name, len(lvl.Walls), len(lvl.Movers), source)
	}

	fmt.Println()
	fmt.Println("Run 'pathfinder play <id>' to play a level.")
	return nil
}
