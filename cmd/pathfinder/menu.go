package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/platform/tui"
	"github.com/Aidenn8/Pathfinder/internal/registry"
	"github.com/Aidenn8/Pathfinder/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a level, left/right to switch between chase
and sandbox, Enter to play. After a run you return to the menu.

Controls:
  Up/Down/j/k     - Pick level
  Left/Right/h/l  - Switch mode
  Enter/Space     - Play
  Tab             - Best runs
  Q               - Quit

Examples:
  pathfinder menu
  pathfinder menu --fps 60
  pathfinder menu --levels ./my-levels`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadConfig(flagDifficulty)
	if err != nil {
		return err
	}

	lvls, err := levels.Catalog(flagLevelsDir)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig(gameCfg)

	for {
		menuResult, err := tui.RunMenu(lvls, store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(lvls, store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		lvl, err := levels.Find(flagLevelsDir, menuResult.LevelID)
		if err != nil {
			return err
		}

		g, err := registry.Create(menuResult.Mode, registry.Setup{Level: lvl, Config: gameCfg})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(g, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
