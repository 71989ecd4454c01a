package mover

import (
	"sync"

	"github.com/Aidenn8/Pathfinder/internal/geom"
)

// Rule decides where a mover wants to go on each tick.
// Target is called once per tick; returning false means the mover stays put.
type Rule interface {
	Target(m *Mover) (geom.Point, bool)
}

// Locator is anything with a current position a rule can aim at.
type Locator interface {
	Position() geom.Point
}

// StandStill never moves.
type StandStill struct{}

// Target implements Rule.
func (StandStill) Target(*Mover) (geom.Point, bool) {
	return geom.Point{}, false
}

// MoveTo heads for the locator's position, read fresh every tick.
// Aiming at another *Mover yields follow/chase behavior.
type MoveTo struct {
	To Locator
}

// Target implements Rule.
func (r MoveTo) Target(*Mover) (geom.Point, bool) {
	if r.To == nil {
		return geom.Point{}, false
	}
	return r.To.Position(), true
}

// Fixed is a Locator that never moves.
type Fixed geom.Point

// Position implements Locator.
func (f Fixed) Position() geom.Point {
	return geom.Point(f)
}

// Pointer is a host-owned target such as the mouse cursor.
// The host may Set it from an input goroutine while the simulation reads it.
type Pointer struct {
	mu  sync.RWMutex
	pos geom.Point
}

// NewPointer creates a pointer at p.
func NewPointer(p geom.Point) *Pointer {
	return &Pointer{pos: p}
}

// Set moves the pointer.
func (p *Pointer) Set(pos geom.Point) {
	p.mu.Lock()
	p.pos = pos
	p.mu.Unlock()
}

// Nudge moves the pointer by delta.
func (p *Pointer) Nudge(delta geom.Point) {
	p.mu.Lock()
	p.pos = p.pos.Add(delta)
	p.mu.Unlock()
}

// Position implements Locator.
func (p *Pointer) Position() geom.Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}
