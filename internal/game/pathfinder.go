// Package game implements the playable modes on top of the simulation: a
// chase mode where movers hunt the player and a sandbox with no catching.
package game

import (
	"github.com/Aidenn8/Pathfinder/internal/config"
	"github.com/Aidenn8/Pathfinder/internal/core"
	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/registry"
	"github.com/Aidenn8/Pathfinder/internal/sim"
)

// Mode selects the rules of a run.
type Mode string

const (
	ModeChase   Mode = "chase"
	ModeSandbox Mode = "sandbox"
)

func init() {
	registry.Register(string(ModeChase), func(s registry.Setup) registry.Game {
		return New(ModeChase, s.Level, s.Config)
	})
	registry.Register(string(ModeSandbox), func(s registry.Setup) registry.Game {
		return New(ModeSandbox, s.Level, s.Config)
	})
}

// Pathfinder is one level played in one mode.
type Pathfinder struct {
	mode  Mode
	level levels.Level
	cfg   config.Config

	world    *sim.World
	view     Viewport
	tickRate int

	state       core.GameState
	caughtBy    string
	showCrashes bool
}

// New creates a game. Nothing is built until Reset.
func New(mode Mode, level levels.Level, cfg config.Config) *Pathfinder {
	return &Pathfinder{mode: mode, level: level, cfg: cfg}
}

// ID returns the mode identifier.
func (g *Pathfinder) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Pathfinder) Title() string {
	if g.mode == ModeSandbox {
		return "Sandbox"
	}
	return "Chase"
}

// LevelID returns the ID of the level being played.
func (g *Pathfinder) LevelID() string {
	return g.level.ID
}

// Level returns the level definition.
func (g *Pathfinder) Level() levels.Level {
	return g.level
}

// World returns the running simulation, or nil before Reset.
func (g *Pathfinder) World() *sim.World {
	return g.world
}

// Reset builds a fresh world from the level.
func (g *Pathfinder) Reset(rc core.RuntimeConfig) {
	g.world = g.level.Build(levels.BuildOptions{
		MoverSpeed:  g.cfg.Sim.MoverSpeed,
		PlayerSpeed: g.cfg.Sim.PlayerSpeed,
		SpeedFactor: g.cfg.Chase.SpeedFactor,
	})
	g.state = core.GameState{}
	g.caughtBy = ""
	g.showCrashes = g.cfg.View.ShowCrashes
	g.Resize(rc)
}

// Resize adapts the viewport to a new screen without restarting the run.
func (g *Pathfinder) Resize(rc core.RuntimeConfig) {
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = g.cfg.Sim.TickRate
	}
	g.view = NewViewport(rc.ScreenW, g.level.Width, g.cfg.View.UnitsPerCell, g.cfg.View.Aspect)
}

// Step applies the frame's input and advances the world by one tick.
func (g *Pathfinder) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.state}
	}

	if in.Has(core.ActionPause) && !g.state.GameOver {
		g.state.Paused = !g.state.Paused
	}
	if in.Has(core.ActionCrashes) {
		g.showCrashes = !g.showCrashes
	}
	if g.state.GameOver || g.state.Paused {
		return core.StepResult{State: g.state, CaughtBy: g.caughtBy}
	}

	g.steer(in)
	g.world.Tick()
	g.state.Ticks = g.world.Ticks()

	if g.mode == ModeChase {
		g.state.Score = g.state.Ticks * g.cfg.Chase.PointsPerSecond / g.tickRate
		if m, d := g.world.Closest(g.world.Player().Position()); m != nil && d <= g.cfg.Chase.CatchRadius {
			g.state.GameOver = true
			g.caughtBy = m.Name()
		}
	}

	return core.StepResult{State: g.state, CaughtBy: g.caughtBy}
}

// steer moves the pointer: the mouse cell wins, arrow keys nudge by a cell.
func (g *Pathfinder) steer(in core.InputFrame) {
	pointer := g.world.Pointer()

	if x, y, ok := in.Pointer(); ok && g.view.arenaRect(g.level.Width, g.level.Height).Contains(x, y) {
		pointer.Set(g.view.ToWorld(x, y))
	}

	dx, dy := g.view.Step()
	var delta geom.Point
	if in.Has(core.ActionUp) {
		delta.Y -= dy
	}
	if in.Has(core.ActionDown) {
		delta.Y += dy
	}
	if in.Has(core.ActionLeft) {
		delta.X -= dx
	}
	if in.Has(core.ActionRight) {
		delta.X += dx
	}
	if delta != (geom.Point{}) {
		pointer.Nudge(delta)
		pointer.Set(clampToArena(pointer.Position(), g.level.Width, g.level.Height))
	}
}

// State returns the current score and status.
func (g *Pathfinder) State() core.GameState {
	return g.state
}

// CaughtBy returns the name of the mover that ended the run, if any.
func (g *Pathfinder) CaughtBy() string {
	return g.caughtBy
}

// ShowCrashes reports whether the blocked-move marker is drawn.
func (g *Pathfinder) ShowCrashes() bool {
	return g.showCrashes
}

// Snapshot captures the positions needed to compare two runs.
type Snapshot struct {
	Tick      int
	Score     int
	Positions []geom.Point // player first, then movers in spawn order
}

// Snapshot returns the current state of the run.
func (g *Pathfinder) Snapshot() Snapshot {
	s := Snapshot{Tick: g.state.Ticks, Score: g.state.Score}
	if g.world != nil {
		s.Positions = g.world.Snapshot()
	}
	return s
}
