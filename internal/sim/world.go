// Package sim runs the tick loop over a set of movers sharing one wall set.
// Everything here is single-threaded: movers are advanced one after another
// in spawn order, and a follower sees its target's position as already
// updated for the current tick.
package sim

import (
	"math"

	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/mover"
	"github.com/Aidenn8/Pathfinder/internal/world"
)

// World is one running simulation: walls, a player that follows a pointer,
// and any number of other movers.
type World struct {
	walls   *world.Walls
	pointer *mover.Pointer
	player  *mover.Mover
	movers  []*mover.Mover
	ticks   int
}

// NewWorld creates an empty world over walls. A nil walls gets an empty set.
func NewWorld(walls *world.Walls) *World {
	if walls == nil {
		walls = world.NewWalls()
	}
	return &World{
		walls:   walls,
		pointer: mover.NewPointer(geom.Point{}),
	}
}

// Walls returns the wall set. Mutate it only between ticks.
func (w *World) Walls() *world.Walls {
	return w.walls
}

// Pointer returns the host-driven target the player follows.
func (w *World) Pointer() *mover.Pointer {
	return w.pointer
}

// Player returns the player, or nil if none was spawned.
func (w *World) Player() *mover.Mover {
	return w.player
}

// Movers returns the non-player movers in spawn order.
func (w *World) Movers() []*mover.Mover {
	return w.movers
}

// Ticks returns the number of ticks simulated so far.
func (w *World) Ticks() int {
	return w.ticks
}

// SpawnPlayer places the player at pos and parks the pointer on it.
// The player follows the pointer. Spawning again replaces the player.
func (w *World) SpawnPlayer(pos geom.Point, speed float64) *mover.Mover {
	w.pointer.Set(pos)
	w.player = mover.New(w.walls, pos,
		mover.WithName("player"),
		mover.WithSpeed(speed),
		mover.WithRule(mover.MoveTo{To: w.pointer}),
	)
	return w.player
}

// Spawn adds a mover with the given rule.
func (w *World) Spawn(pos geom.Point, speed float64, rule mover.Rule, opts ...mover.Option) *mover.Mover {
	all := append([]mover.Option{mover.WithSpeed(speed), mover.WithRule(rule)}, opts...)
	m := mover.New(w.walls, pos, all...)
	w.movers = append(w.movers, m)
	return m
}

// Chase returns a rule that follows the player. It tracks whichever player
// is current when the rule is evaluated, so it survives SpawnPlayer.
func (w *World) Chase() mover.Rule {
	return mover.MoveTo{To: playerLocator{w}}
}

// playerLocator resolves the player lazily.
type playerLocator struct {
	w *World
}

// Position implements mover.Locator. Without a player it reports the pointer.
func (p playerLocator) Position() geom.Point {
	if p.w.player == nil {
		return p.w.pointer.Position()
	}
	return p.w.player.Position()
}

// Tick advances the player, then every other mover in spawn order.
func (w *World) Tick() {
	if w.player != nil {
		w.player.Move()
	}
	for _, m := range w.movers {
		m.Move()
	}
	w.ticks++
}

// Closest returns the non-player mover nearest to p and its distance.
// It returns nil and +Inf when there are no movers.
func (w *World) Closest(p geom.Point) (*mover.Mover, float64) {
	var best *mover.Mover
	bestD := math.Inf(1)
	for _, m := range w.movers {
		if d := m.Position().DistanceTo(p); d < bestD {
			best = m
			bestD = d
		}
	}
	return best, bestD
}

// Snapshot returns every mover position: the player first (when present),
// then the other movers in spawn order.
func (w *World) Snapshot() []geom.Point {
	out := make([]geom.Point, 0, len(w.movers)+1)
	if w.player != nil {
		out = append(out, w.player.Position())
	}
	for _, m := range w.movers {
		out = append(out, m.Position())
	}
	return out
}
