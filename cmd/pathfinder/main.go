// pathfinder is a terminal chase game: movers cross an arena of walls,
// stepping as far as they safely can, while you steer the player with the
// mouse or the arrow keys.
//
// Usage:
//
//	pathfinder levels              - List available levels
//	pathfinder play [level]        - Play a level
//	pathfinder menu                - Pick levels and modes interactively
//	pathfinder simulate <level>    - Run a level headless and log positions
//	pathfinder scores [level]      - Show best chase runs
//	pathfinder serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config)
//	--db <path>      - Set database path (default: ~/.pathfinder/runs.db)
//	--config <path>  - Use a custom config YAML
//	--levels <dir>   - Load extra levels from a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Aidenn8/Pathfinder/internal/config"
	"github.com/Aidenn8/Pathfinder/internal/core"
	// Import modes to register them
	_ "github.com/Aidenn8/Pathfinder/internal/game"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Pathfinder - outrun movers through an arena of walls",
	Long: `Pathfinder is a terminal game built on a small 2D movement simulation.
Movers head for their targets and stop short of walls; in chase mode they
hunt you, in sandbox mode you can watch them bump around.

Available commands:
  levels   - Show all available levels
  play     - Play a level directly
  menu     - Interactive level picker
  simulate - Run a level without a terminal UI
  scores   - View best runs
  serve    - Start SSH server for remote play

Examples:
  pathfinder levels
  pathfinder play lvl02
  pathfinder play lvl03 --mode sandbox
  pathfinder simulate lvl01 --ticks 300 --target 10,10
  pathfinder serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = sim.tick_rate from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pathfinder/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "levels", "Directory with extra level files")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config and applies a difficulty preset.
func loadConfig(difficulty string) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.Config{}, err
	}
	if difficulty != "" {
		config.ApplyPreset(&cfg, preset)
	}

	if flagFPS > 0 {
		cfg.Sim.TickRate = flagFPS
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Sim.TickRate
	return rc
}
