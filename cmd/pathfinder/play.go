package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aidenn8/Pathfinder/internal/game"
	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/platform/tui"
	"github.com/Aidenn8/Pathfinder/internal/registry"
	"github.com/Aidenn8/Pathfinder/internal/storage"
)

var (
	flagMode       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level (lvl01 when omitted).

Controls:
  Mouse        - The player heads for the cell under the mouse
  Arrows/WASD  - Nudge the target by one cell
  P/Esc        - Pause
  C            - Show where the player would hit a wall
  R            - Restart (after being caught)
  B            - Back (when paused or caught)
  Q/Ctrl+C     - Quit

Difficulty options scale every mover's speed:
  easy   - 0.75x
  normal - 1.0x
  hard   - 1.3x

Examples:
  pathfinder play
  pathfinder play lvl03 --difficulty hard
  pathfinder play lvl02 --mode sandbox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", string(game.ModeChase), "Mode: chase or sandbox")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	levelID := "lvl01"
	if len(args) > 0 {
		levelID = args[0]
	}

	if !registry.Exists(flagMode) {
		return fmt.Errorf("unknown mode %q (want chase or sandbox)", flagMode)
	}

	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		return err
	}

	lvl, err := levels.Find(flagLevelsDir, levelID)
	if err != nil {
		return fmt.Errorf("%w (run 'pathfinder levels' to see available levels)", err)
	}

	g, err := registry.Create(flagMode, registry.Setup{Level: lvl, Config: cfg})
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(g, store, runtimeConfig(cfg)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
