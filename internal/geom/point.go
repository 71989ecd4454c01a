// Package geom provides the small 2D point and segment toolkit shared by the
// obstacle query and the movement resolver. All floating-point tolerance
// handling lives here so callers never compare raw floats against zero.
package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Epsilon is the tolerance used for near-zero determinants, distances and
// segment parameter bounds.
const Epsilon = 1e-9

// NearZero reports whether v is within Epsilon of zero.
func NearZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

// Point is a position (or displacement) on the plane.
// Coordinates are expected to be finite; NaN input is not handled.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// FromR2 converts an r2.Point.
func FromR2(p r2.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// R2 returns the point as an r2.Point for vector math.
func (p Point) R2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return FromR2(p.R2().Add(q.R2()))
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return FromR2(p.R2().Sub(q.R2()))
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return FromR2(p.R2().Mul(k))
}

// Len returns the length of p treated as a vector.
func (p Point) Len() float64 {
	return p.R2().Norm()
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return q.Sub(p).Len()
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Equal reports whether p and q are within Epsilon of each other.
func (p Point) Equal(q Point) bool {
	return NearZero(p.DistanceTo(q))
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}
