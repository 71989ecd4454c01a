package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Aidenn8/Pathfinder/internal/config"
	"github.com/Aidenn8/Pathfinder/internal/core"
	"github.com/Aidenn8/Pathfinder/internal/game"
	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/levels"
)

var (
	flagTicks   int
	flagTarget  string
	flagVerbose bool
	flagSimMode string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Run a level without a terminal UI",
	Long: `Run a level headless for a number of ticks and log what happens.

The player heads for --target (its start position when omitted). With
--verbose every tick logs the position of each mover.

Examples:
  pathfinder simulate lvl01
  pathfinder simulate lvl02 --ticks 600 --target 20,150 --verbose
  pathfinder simulate lvl03 --mode sandbox`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 300, "Number of ticks to run")
	simulateCmd.Flags().StringVar(&flagTarget, "target", "", "Player target as x,y in world units")
	simulateCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every tick")
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", string(game.ModeChase), "Mode: chase or sandbox")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSimulate(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		return err
	}

	lvl, err := levels.Find(flagLevelsDir, args[0])
	if err != nil {
		return err
	}

	var target *geom.Point
	if flagTarget != "" {
		p, err := parsePoint(flagTarget)
		if err != nil {
			return err
		}
		target = &p
	}

	mode := game.Mode(flagSimMode)
	if mode != game.ModeChase && mode != game.ModeSandbox {
		return fmt.Errorf("unknown mode %q (want chase or sandbox)", flagSimMode)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simulate",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	simulate(lvl, cfg, mode, flagTicks, target, logger)
	return nil
}

// simulate runs a level for up to ticks steps and returns the final result.
// A chase run stops early when the player is caught.
func simulate(lvl levels.Level, cfg config.Config, mode game.Mode, ticks int, target *geom.Point, logger *log.Logger) core.StepResult {
	g := game.New(mode, lvl, cfg)
	g.Reset(core.RuntimeConfig{TickRate: cfg.Sim.TickRate})
	if target != nil {
		g.World().Pointer().Set(*target)
	}

	logger.Info("simulation started",
		"level", lvl.ID,
		"mode", mode,
		"movers", len(lvl.Movers),
		"walls", g.World().Walls().Len(),
	)

	in := core.NewInputFrame()
	var res core.StepResult
	for i := 0; i < ticks; i++ {
		res = g.Step(in)

		if logger.GetLevel() <= log.DebugLevel {
			kv := []any{"tick", res.State.Ticks, "player", g.World().Player().Position()}
			for _, m := range g.World().Movers() {
				kv = append(kv, m.Name(), m.Position())
			}
			logger.Debug("tick", kv...)
		}

		if res.State.GameOver {
			break
		}
	}

	logger.Info("simulation finished",
		"ticks", res.State.Ticks,
		"score", res.State.Score,
		"caught", res.State.GameOver,
		"caught_by", res.CaughtBy,
		"player", g.World().Player().Position(),
	)
	return res
}

// parsePoint reads "x,y".
func parsePoint(s string) (geom.Point, error) {
	var x, y float64
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &y); err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q, want x,y: %w", s, err)
	}
	return geom.Pt(x, y), nil
}
