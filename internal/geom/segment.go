package geom

import "math"

// Segment is a finite line segment from A to B.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Vector returns B - A.
func (s Segment) Vector() Point {
	return s.B.Sub(s.A)
}

// Length returns the distance from A to B.
func (s Segment) Length() float64 {
	return s.A.DistanceTo(s.B)
}

// IsDegenerate reports whether the segment collapses to a single point.
func (s Segment) IsDegenerate() bool {
	return NearZero(s.Length())
}

// Bounds returns the lower-left and upper-right corners of the segment's
// axis-aligned bounding box.
func (s Segment) Bounds() (min, max Point) {
	min = Point{X: math.Min(s.A.X, s.B.X), Y: math.Min(s.A.Y, s.B.Y)}
	max = Point{X: math.Max(s.A.X, s.B.X), Y: math.Max(s.A.Y, s.B.Y)}
	return min, max
}

// Contains reports whether p lies on the segment (within Epsilon).
func (s Segment) Contains(p Point) bool {
	if s.IsDegenerate() {
		return s.A.Equal(p)
	}

	d := s.Vector().R2()
	ap := p.Sub(s.A).R2()

	// Perpendicular distance from the carrying line
	if !NearZero(d.Cross(ap) / d.Norm()) {
		return false
	}

	t := d.Dot(ap) / d.Dot(d)
	return inUnit(t)
}

// Intersect returns the point where s crosses other.
//
// Both segments are parametrized (s.A + t*r, other.A + u*q) and the 2x2
// system is solved for t and u; a crossing is reported only when both lie in
// [0, 1]. Parallel and collinear pairs have a near-zero determinant and never
// intersect, even when they overlap. A degenerate segment crosses the other
// only when its single point lies on it.
func (s Segment) Intersect(other Segment) (Point, bool) {
	sDeg, oDeg := s.IsDegenerate(), other.IsDegenerate()
	switch {
	case sDeg && oDeg:
		if s.A.Equal(other.A) {
			return s.A, true
		}
		return Point{}, false
	case sDeg:
		if other.Contains(s.A) {
			return s.A, true
		}
		return Point{}, false
	case oDeg:
		if s.Contains(other.A) {
			return other.A, true
		}
		return Point{}, false
	}

	r := s.Vector().R2()
	q := other.Vector().R2()

	denom := r.Cross(q)
	if NearZero(denom) {
		return Point{}, false
	}

	diff := other.A.Sub(s.A).R2()
	t := diff.Cross(q) / denom
	u := diff.Cross(r) / denom

	if !inUnit(t) || !inUnit(u) {
		return Point{}, false
	}

	return FromR2(s.A.R2().Add(r.Mul(t))), true
}

// inUnit reports whether v lies in [0, 1] widened by Epsilon.
func inUnit(v float64) bool {
	return v >= -Epsilon && v <= 1+Epsilon
}
