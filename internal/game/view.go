package game

import (
	"math"

	"github.com/Aidenn8/Pathfinder/internal/core"
	"github.com/Aidenn8/Pathfinder/internal/geom"
)

// hudRows is the number of screen rows above the arena.
const hudRows = 1

// Viewport maps world coordinates onto screen cells. A column is
// UnitsPerCell wide and a row is UnitsPerCell*Aspect tall, so round things
// stay round in a terminal whose cells are taller than they are wide.
type Viewport struct {
	OriginX, OriginY int // screen cell of world (0, 0)
	UnitsPerCell     float64
	Aspect           float64
}

// NewViewport centers an arena of the given world size horizontally on the
// screen, below the HUD.
func NewViewport(screenW int, width float64, unitsPerCell, aspect float64) Viewport {
	v := Viewport{OriginY: hudRows, UnitsPerCell: unitsPerCell, Aspect: aspect}
	cols := int(math.Floor(width/unitsPerCell)) + 1
	if screenW > cols {
		v.OriginX = (screenW - cols) / 2
	}
	return v
}

func (v Viewport) rowHeight() float64 {
	return v.UnitsPerCell * v.Aspect
}

// cellF returns the fractional screen position of a world point.
func (v Viewport) cellF(p geom.Point) (float64, float64) {
	return float64(v.OriginX) + p.X/v.UnitsPerCell, float64(v.OriginY) + p.Y/v.rowHeight()
}

// ToCell returns the screen cell containing a world point.
func (v Viewport) ToCell(p geom.Point) (int, int) {
	x, y := v.cellF(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

// ToWorld returns the world point at the center of a screen cell.
func (v Viewport) ToWorld(col, row int) geom.Point {
	return geom.Pt(
		(float64(col-v.OriginX)+0.5)*v.UnitsPerCell,
		(float64(row-v.OriginY)+0.5)*v.rowHeight(),
	)
}

// Step returns the world distance covered by one cell in each direction.
func (v Viewport) Step() (dx, dy float64) {
	return v.UnitsPerCell, v.rowHeight()
}

// RasterSegment walks a segment cell by cell (DDA) and calls plot for every
// cell it covers. A degenerate segment plots one cell.
func (v Viewport) RasterSegment(s geom.Segment, plot func(x, y int)) {
	x0, y0 := v.cellF(s.A)
	x1, y1 := v.cellF(s.B)
	dx, dy := x1-x0, y1-y0

	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if n == 0 {
		plot(int(math.Floor(x0)), int(math.Floor(y0)))
		return
	}

	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		cx := int(math.Floor(x0 + dx*t))
		cy := int(math.Floor(y0 + dy*t))
		if cx == lastX && cy == lastY {
			continue
		}
		plot(cx, cy)
		lastX, lastY = cx, cy
	}
}

// wallRune picks a line character that matches the wall's on-screen slope.
func (v Viewport) wallRune(s geom.Segment) rune {
	x0, y0 := v.cellF(s.A)
	x1, y1 := v.cellF(s.B)
	dx, dy := math.Abs(x1-x0), math.Abs(y1-y0)

	switch {
	case dx >= 2*dy:
		return '─'
	case dy >= 2*dx:
		return '│'
	case (x1-x0)*(y1-y0) > 0:
		return '\\'
	default:
		return '/'
	}
}

// clampToArena keeps a point inside [0, w] x [0, h].
func clampToArena(p geom.Point, w, h float64) geom.Point {
	return geom.Pt(math.Max(0, math.Min(w, p.X)), math.Max(0, math.Min(h, p.Y)))
}

// arenaRect returns the screen cells covered by an arena of the given size.
func (v Viewport) arenaRect(w, h float64) core.Rect {
	x0, y0 := v.ToCell(geom.Pt(0, 0))
	x1, y1 := v.ToCell(geom.Pt(w, h))
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}
