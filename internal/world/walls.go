// Package world holds the obstacle set movers are tested against.
// Walls are plain line segments; a spatial index keeps per-tick queries
// cheap on levels with many walls.
package world

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/Aidenn8/Pathfinder/internal/geom"
)

// R-tree tuning and bounding box padding. Axis-aligned walls have zero
// width or height, which rtreego rejects, so every box is padded.
const (
	treeMinChildren = 4
	treeMaxChildren = 16
	boundsPad       = 1e-6
)

// wall is a single indexed segment. idx preserves insertion order.
type wall struct {
	seg    geom.Segment
	idx    int
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (w *wall) Bounds() rtreego.Rect {
	return w.bounds
}

// Walls is the ordered set of wall segments for one level.
// It is read-only while movers query it; Add and Clear must only be called
// between simulation ticks.
type Walls struct {
	walls []*wall
	tree  *rtreego.Rtree
}

// NewWalls creates a wall set containing segs.
func NewWalls(segs ...geom.Segment) *Walls {
	w := &Walls{}
	w.Clear()
	w.Add(segs...)
	return w
}

// Add appends segments to the set.
func (w *Walls) Add(segs ...geom.Segment) {
	for _, s := range segs {
		entry := &wall{
			seg:    s,
			idx:    len(w.walls),
			bounds: segmentRect(s),
		}
		w.walls = append(w.walls, entry)
		w.tree.Insert(entry)
	}
}

// Clear removes every wall.
func (w *Walls) Clear() {
	w.walls = nil
	w.tree = rtreego.NewTree(2, treeMinChildren, treeMaxChildren)
}

// Len returns the number of walls.
func (w *Walls) Len() int {
	return len(w.walls)
}

// Segments returns a copy of the walls in insertion order.
func (w *Walls) Segments() []geom.Segment {
	out := make([]geom.Segment, len(w.walls))
	for i, entry := range w.walls {
		out[i] = entry.seg
	}
	return out
}

// Intersections returns every point where move crosses a wall, or nil if it
// crosses none. A nil *Walls is an empty set. Points are reported in wall
// insertion order; callers must not rely on that order to mean anything
// spatially.
func (w *Walls) Intersections(move geom.Segment) []geom.Point {
	if w == nil || len(w.walls) == 0 {
		return nil
	}

	candidates := w.tree.SearchIntersect(segmentRect(move))
	if len(candidates) == 0 {
		return nil
	}

	hits := make([]*wall, 0, len(candidates))
	for _, c := range candidates {
		hits = append(hits, c.(*wall))
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].idx < hits[j].idx
	})

	var points []geom.Point
	for _, h := range hits {
		if p, ok := move.Intersect(h.seg); ok {
			points = append(points, p)
		}
	}
	return points
}

// segmentRect returns the padded bounding box of s.
func segmentRect(s geom.Segment) rtreego.Rect {
	min, max := s.Bounds()
	origin := rtreego.Point{min.X - boundsPad, min.Y - boundsPad}
	lengths := []float64{
		max.X - min.X + 2*boundsPad,
		max.Y - min.Y + 2*boundsPad,
	}

	// Lengths are always positive, so NewRect cannot fail here.
	r, _ := rtreego.NewRect(origin, lengths)
	return r
}

// Border returns the four walls of the axis-aligned box spanned by min and max.
func Border(min, max geom.Point) []geom.Segment {
	topRight := geom.Pt(max.X, min.Y)
	bottomLeft := geom.Pt(min.X, max.Y)
	return []geom.Segment{
		geom.Seg(min, topRight),
		geom.Seg(topRight, max),
		geom.Seg(max, bottomLeft),
		geom.Seg(bottomLeft, min),
	}
}
