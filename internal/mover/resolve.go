// Package mover implements bounded-speed agents that walk toward a target and
// stop short of walls. Collision is checked along the swept path of each step,
// not just at the destination, so fast movers cannot tunnel through thin walls.
package mover

import (
	"math"

	"github.com/Aidenn8/Pathfinder/internal/geom"
)

// EaseThreshold is the distance below which a blocked mover is considered to
// be touching the wall and stops. At or above it, the mover closes half of the
// remaining gap each step.
const EaseThreshold = 0.5

// Obstacles is the world a mover is tested against.
type Obstacles interface {
	// Intersections returns every point where move crosses an obstacle.
	Intersections(move geom.Segment) []geom.Point
}

// Step returns the position reached by moving from current toward desired
// at no more than speed units, given the obstacles in the way.
//
// A nil obstacles value is treated as an empty world.
func Step(current, desired geom.Point, speed float64, obstacles Obstacles) geom.Point {
	delta := desired.Sub(current)
	d := delta.Len()

	if geom.NearZero(d) {
		return current
	}

	// Top speed clamp
	if d > speed {
		delta = delta.Scale(speed / d)
	}

	target := current.Add(delta)
	if obstacles == nil {
		return target
	}

	crash, blocked := Nearest(current, obstacles.Intersections(geom.Seg(current, target)))
	if !blocked {
		return target
	}

	// Ease toward the wall instead of landing on it
	if current.DistanceTo(crash) >= EaseThreshold {
		return current.Midpoint(crash)
	}
	return current
}

// Nearest returns the crash point closest to from. The first of several
// equally close points wins. It reports false when crashes is empty.
func Nearest(from geom.Point, crashes []geom.Point) (geom.Point, bool) {
	var closest geom.Point
	closestD := math.MaxFloat64
	found := false

	for _, c := range crashes {
		if d := from.DistanceTo(c); d < closestD {
			closest = c
			closestD = d
			found = true
		}
	}
	return closest, found
}
