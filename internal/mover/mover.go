package mover

import "github.com/Aidenn8/Pathfinder/internal/geom"

// DefaultSpeed is the per-tick distance bound for movers created without
// WithSpeed.
const DefaultSpeed = 2.0

// Mover is a point agent with a speed bound and a movement rule.
// It keeps a non-owning reference to the obstacles it must not cross.
type Mover struct {
	name      string
	pos       geom.Point
	speed     float64
	rule      Rule
	obstacles Obstacles
}

// Option configures a Mover.
type Option func(*Mover)

// WithSpeed sets the top speed in distance units per tick.
func WithSpeed(speed float64) Option {
	return func(m *Mover) {
		m.speed = speed
	}
}

// WithRule sets the movement rule.
func WithRule(r Rule) Option {
	return func(m *Mover) {
		m.rule = r
	}
}

// WithName sets a display name.
func WithName(name string) Option {
	return func(m *Mover) {
		m.name = name
	}
}

// New creates a mover at pos. Without options it stands still at DefaultSpeed.
func New(obstacles Obstacles, pos geom.Point, opts ...Option) *Mover {
	m := &Mover{
		pos:       pos,
		speed:     DefaultSpeed,
		rule:      StandStill{},
		obstacles: obstacles,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rule == nil {
		m.rule = StandStill{}
	}
	return m
}

// Move advances the mover by one tick according to its rule.
func (m *Mover) Move() {
	if target, ok := m.rule.Target(m); ok {
		m.MoveTo(target)
	}
}

// MoveTo takes one bounded step toward p.
func (m *Mover) MoveTo(p geom.Point) {
	m.pos = Step(m.pos, p, m.speed, m.obstacles)
}

// Position returns the current position. Mover implements Locator, so a
// MoveTo rule can follow another mover.
func (m *Mover) Position() geom.Point {
	return m.pos
}

// SetPosition places the mover without collision checks.
// Only the host should call it, at spawn or reset.
func (m *Mover) SetPosition(p geom.Point) {
	m.pos = p
}

// Speed returns the top speed.
func (m *Mover) Speed() float64 {
	return m.speed
}

// Rule returns the current movement rule.
func (m *Mover) Rule() Rule {
	return m.rule
}

// SetRule replaces the movement rule. A nil rule stands still.
func (m *Mover) SetRule(r Rule) {
	if r == nil {
		r = StandStill{}
	}
	m.rule = r
}

// Name returns the display name.
func (m *Mover) Name() string {
	return m.name
}
