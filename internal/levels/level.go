// Package levels loads arena definitions (walls, player start, movers) from
// YAML files and builds simulation worlds from them.
package levels

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/mover"
	"github.com/Aidenn8/Pathfinder/internal/sim"
	"github.com/Aidenn8/Pathfinder/internal/world"
)

var (
	// ErrNotFound is returned when no level has the requested ID.
	ErrNotFound = errors.New("level not found")

	// ErrInvalid wraps every validation failure from Parse.
	ErrInvalid = errors.New("invalid level")
)

// RuleKind names a mover rule in level files.
type RuleKind string

const (
	RuleStand  RuleKind = "stand"  // never moves
	RuleChase  RuleKind = "chase"  // follows the player
	RuleGoto   RuleKind = "goto"   // heads for a fixed target
	RuleFollow RuleKind = "follow" // follows another mover by index
)

// MoverSpec describes one non-player mover.
type MoverSpec struct {
	Name   string
	Pos    geom.Point
	Speed  float64 // 0 means the build default
	Rule   RuleKind
	Target geom.Point // RuleGoto only
	Follow int        // RuleFollow only
}

// Level is a parsed arena definition.
type Level struct {
	ID       string
	Name     string
	Width    float64
	Height   float64
	Border   bool
	Player   geom.Point
	Walls    []geom.Segment
	Movers   []MoverSpec
	Metadata map[string]string
	FilePath string // empty for built-in levels
}

// BuildOptions carries the speeds used when a level leaves them unset.
type BuildOptions struct {
	MoverSpeed  float64
	PlayerSpeed float64
	SpeedFactor float64 // scales every non-player speed; 0 means 1
}

// DefaultBuildOptions uses mover.DefaultSpeed for everyone.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		MoverSpeed:  mover.DefaultSpeed,
		PlayerSpeed: mover.DefaultSpeed,
		SpeedFactor: 1,
	}
}

// Build creates a fresh world for the level. Each call returns an
// independent world, so a level can be restarted or played concurrently.
func (l *Level) Build(opts BuildOptions) *sim.World {
	walls := world.NewWalls()
	if l.Border {
		walls.Add(world.Border(geom.Pt(0, 0), geom.Pt(l.Width, l.Height))...)
	}
	walls.Add(l.Walls...)

	w := sim.NewWorld(walls)
	w.SpawnPlayer(l.Player, opts.PlayerSpeed)

	factor := opts.SpeedFactor
	if factor <= 0 {
		factor = 1
	}

	spawned := make([]*mover.Mover, len(l.Movers))
	for i, spec := range l.Movers {
		speed := spec.Speed
		if speed <= 0 {
			speed = opts.MoverSpeed
		}
		speed *= factor
		spawned[i] = w.Spawn(spec.Pos, speed, mover.StandStill{}, mover.WithName(spec.Name))
	}

	// Rules are bound after spawning so follow may point at any mover.
	for i, spec := range l.Movers {
		switch spec.Rule {
		case RuleChase:
			spawned[i].SetRule(w.Chase())
		case RuleGoto:
			spawned[i].SetRule(mover.MoveTo{To: mover.Fixed(spec.Target)})
		case RuleFollow:
			spawned[i].SetRule(mover.MoveTo{To: spawned[spec.Follow]})
		}
	}

	return w
}

// Chasers counts movers with the chase rule.
func (l *Level) Chasers() int {
	n := 0
	for _, m := range l.Movers {
		if m.Rule == RuleChase {
			n++
		}
	}
	return n
}

// yamlLevel is the on-disk structure of a level file.
type yamlLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     yamlSize          `yaml:"size"`
	Border   bool              `yaml:"border"`
	Player   *yamlPoint        `yaml:"player,omitempty"`
	Walls    []yamlWall        `yaml:"walls"`
	Movers   []yamlMover       `yaml:"movers"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

type yamlSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlWall struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

type yamlMover struct {
	Name   string     `yaml:"name,omitempty"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Speed  float64    `yaml:"speed,omitempty"`
	Rule   string     `yaml:"rule"`
	Target *yamlPoint `yaml:"target,omitempty"`
	Follow *int       `yaml:"follow,omitempty"`
}

// Parse decodes and validates a YAML level.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if yl.Size.W <= 0 || yl.Size.H <= 0 {
		return Level{}, fmt.Errorf("%w: %s: size must be positive, got %gx%g", ErrInvalid, yl.ID, yl.Size.W, yl.Size.H)
	}

	lvl := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Border:   yl.Border,
		Metadata: yl.Metadata,
	}
	if lvl.Name == "" {
		lvl.Name = yl.ID
	}

	// Player defaults to the arena center
	lvl.Player = geom.Pt(yl.Size.W/2, yl.Size.H/2)
	if yl.Player != nil {
		lvl.Player = geom.Pt(yl.Player.X, yl.Player.Y)
	}

	for _, w := range yl.Walls {
		lvl.Walls = append(lvl.Walls, geom.Seg(geom.Pt(w.X1, w.Y1), geom.Pt(w.X2, w.Y2)))
	}

	for i, m := range yl.Movers {
		spec := MoverSpec{
			Name:  m.Name,
			Pos:   geom.Pt(m.X, m.Y),
			Speed: m.Speed,
			Rule:  RuleKind(m.Rule),
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("mover-%d", i+1)
		}
		if spec.Speed < 0 {
			return Level{}, fmt.Errorf("%w: %s: mover %d has negative speed", ErrInvalid, yl.ID, i)
		}

		switch spec.Rule {
		case "":
			spec.Rule = RuleStand
		case RuleStand, RuleChase:
		case RuleGoto:
			if m.Target == nil {
				return Level{}, fmt.Errorf("%w: %s: mover %d: goto needs a target", ErrInvalid, yl.ID, i)
			}
			spec.Target = geom.Pt(m.Target.X, m.Target.Y)
		case RuleFollow:
			if m.Follow == nil || *m.Follow < 0 || *m.Follow >= len(yl.Movers) || *m.Follow == i {
				return Level{}, fmt.Errorf("%w: %s: mover %d: follow needs another mover index", ErrInvalid, yl.ID, i)
			}
			spec.Follow = *m.Follow
		default:
			return Level{}, fmt.Errorf("%w: %s: mover %d: unknown rule %q", ErrInvalid, yl.ID, i, m.Rule)
		}

		lvl.Movers = append(lvl.Movers, spec)
	}

	return lvl, nil
}
