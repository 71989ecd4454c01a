package levels

import (
	"errors"
	"io"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/mover"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func quietLoader() *Loader {
	l := NewLoader(getTestdataPath())
	l.Logger = log.New(io.Discard)
	return l
}

func TestParseValid(t *testing.T) {
	data := []byte(`
id: t1
name: Test
size: {w: 100, h: 50}
border: true
player: {x: 5, y: 6}
walls:
  - {x1: 50, y1: 0, x2: 50, y2: 30}
movers:
  - {x: 90, y: 10, speed: 1.5, rule: chase}
  - {name: guard, x: 90, y: 40}
  - {x: 10, y: 40, rule: goto, target: {x: 1, y: 2}}
  - {x: 20, y: 40, rule: follow, follow: 0}
`)

	lvl, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "t1", lvl.ID)
	assert.Equal(t, "Test", lvl.Name)
	assert.Equal(t, 100.0, lvl.Width)
	assert.Equal(t, 50.0, lvl.Height)
	assert.True(t, lvl.Border)
	assert.Equal(t, geom.Pt(5, 6), lvl.Player)
	require.Len(t, lvl.Walls, 1)
	assert.Equal(t, geom.Seg(geom.Pt(50, 0), geom.Pt(50, 30)), lvl.Walls[0])

	require.Len(t, lvl.Movers, 4)
	assert.Equal(t, RuleChase, lvl.Movers[0].Rule)
	assert.Equal(t, "mover-1", lvl.Movers[0].Name)
	assert.Equal(t, RuleStand, lvl.Movers[1].Rule)
	assert.Equal(t, "guard", lvl.Movers[1].Name)
	assert.Equal(t, geom.Pt(1, 2), lvl.Movers[2].Target)
	assert.Equal(t, 0, lvl.Movers[3].Follow)
	assert.Equal(t, 1, lvl.Chasers())
}

func TestParsePlayerDefaultsToCenter(t *testing.T) {
	lvl, err := Parse([]byte("id: c\nsize: {w: 40, h: 20}\n"))
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(20, 10), lvl.Player)
	assert.Equal(t, "c", lvl.Name)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "size: {w: 10, h: 10}"},
		{"zero size", "id: x\nsize: {w: 0, h: 10}"},
		{"unknown rule", "id: x\nsize: {w: 10, h: 10}\nmovers:\n  - {x: 1, y: 1, rule: teleport}"},
		{"goto without target", "id: x\nsize: {w: 10, h: 10}\nmovers:\n  - {x: 1, y: 1, rule: goto}"},
		{"follow self", "id: x\nsize: {w: 10, h: 10}\nmovers:\n  - {x: 1, y: 1, rule: follow, follow: 0}"},
		{"follow out of range", "id: x\nsize: {w: 10, h: 10}\nmovers:\n  - {x: 1, y: 1}\n  - {x: 1, y: 1, rule: follow, follow: 5}"},
		{"negative speed", "id: x\nsize: {w: 10, h: 10}\nmovers:\n  - {x: 1, y: 1, speed: -1}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "error %v should wrap ErrInvalid", err)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("id: [unterminated"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestBuildWiresRules(t *testing.T) {
	lvl, err := Parse([]byte(`
id: b
size: {w: 100, h: 100}
player: {x: 50, y: 50}
movers:
  - {x: 50, y: 10, speed: 1, rule: chase}
  - {x: 10, y: 10, rule: stand}
  - {x: 90, y: 90, rule: goto, target: {x: 90, y: 0}}
  - {x: 50, y: 0, speed: 5, rule: follow, follow: 0}
`))
	require.NoError(t, err)

	w := lvl.Build(BuildOptions{MoverSpeed: 2, PlayerSpeed: 3})
	require.NotNil(t, w.Player())
	assert.Equal(t, 3.0, w.Player().Speed())

	ms := w.Movers()
	require.Len(t, ms, 4)
	assert.Equal(t, 1.0, ms[0].Speed())
	assert.Equal(t, 2.0, ms[1].Speed(), "unset speed uses the build default")
	assert.IsType(t, mover.StandStill{}, ms[1].Rule())

	w.Tick()

	assertNear(t, geom.Pt(50, 11), ms[0].Position(), "chaser steps toward the player")
	assert.Equal(t, geom.Pt(10, 10), ms[1].Position())
	assertNear(t, geom.Pt(90, 88), ms[2].Position(), "goto steps toward its target")
	assertNear(t, geom.Pt(50, 5), ms[3].Position(), "follower steps toward the chaser")
}

func TestBuildSpeedFactor(t *testing.T) {
	lvl := Level{
		ID: "f", Width: 100, Height: 100, Player: geom.Pt(50, 50),
		Movers: []MoverSpec{
			{Name: "a", Pos: geom.Pt(10, 10), Speed: 2, Rule: RuleChase},
			{Name: "b", Pos: geom.Pt(20, 10), Rule: RuleStand},
		},
	}

	w := lvl.Build(BuildOptions{MoverSpeed: 1, PlayerSpeed: 3, SpeedFactor: 1.5})
	assert.InDelta(t, 3.0, w.Movers()[0].Speed(), 1e-12)
	assert.InDelta(t, 1.5, w.Movers()[1].Speed(), 1e-12)
	assert.Equal(t, 3.0, w.Player().Speed(), "player speed is not scaled")

	w = lvl.Build(BuildOptions{MoverSpeed: 1, PlayerSpeed: 3})
	assert.Equal(t, 2.0, w.Movers()[0].Speed(), "zero factor means unscaled")
}

func assertNear(t *testing.T, want, got geom.Point, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msg)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msg)
}

func TestBuildBorder(t *testing.T) {
	lvl := Level{ID: "b", Width: 10, Height: 10, Border: true, Player: geom.Pt(5, 5)}
	w := lvl.Build(DefaultBuildOptions())
	assert.Equal(t, 4, w.Walls().Len())

	lvl.Border = false
	w = lvl.Build(DefaultBuildOptions())
	assert.Equal(t, 0, w.Walls().Len())
}

func TestBuildIsIndependent(t *testing.T) {
	lvl, err := Find("", "lvl01")
	require.NoError(t, err)

	a := lvl.Build(DefaultBuildOptions())
	b := lvl.Build(DefaultBuildOptions())

	a.Pointer().Set(geom.Pt(0, 0))
	for i := 0; i < 10; i++ {
		a.Tick()
	}

	assert.Equal(t, lvl.Player, b.Player().Position())
	assert.NotEqual(t, a.Snapshot(), b.Snapshot())
}

func TestLoaderLoadAll(t *testing.T) {
	lvls, err := quietLoader().LoadAll()
	require.NoError(t, err)

	// broken.yaml and notes.txt are skipped
	assert.Equal(t, []string{"alpha", "beta", "lvl01"}, ids(lvls))
	for _, lvl := range lvls {
		assert.NotEmpty(t, lvl.FilePath)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	l := quietLoader()

	lvl, err := l.LoadByID("alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", lvl.Name)
	assert.Len(t, lvl.Walls, 1)
	assert.Len(t, lvl.Movers, 2)

	_, err = l.LoadByID("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoaderListIDs(t *testing.T) {
	got, err := quietLoader().ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "lvl01"}, got)
}

func TestLoaderMissingRoot(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "missing"))
	_, err := l.LoadAll()
	assert.Error(t, err)
}

func TestBuiltinLevels(t *testing.T) {
	lvls, err := Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, lvls)

	for _, lvl := range lvls {
		assert.NotEmpty(t, lvl.Name, lvl.ID)
		assert.True(t, lvl.Border, "%s should be fenced", lvl.ID)
		assert.Positive(t, lvl.Chasers(), "%s needs at least one chaser", lvl.ID)

		// Every built-in level runs without anyone leaving the arena.
		w := lvl.Build(DefaultBuildOptions())
		w.Pointer().Set(geom.Pt(-1000, -1000))
		for i := 0; i < 500; i++ {
			w.Tick()
		}
		for _, p := range w.Snapshot() {
			assert.True(t, p.X > 0 && p.X < lvl.Width && p.Y > 0 && p.Y < lvl.Height,
				"%s: %v left the arena", lvl.ID, p)
		}
	}
}

func TestCatalogOverridesBuiltin(t *testing.T) {
	// Silence warnings about broken.yaml
	prev := log.Default()
	log.SetDefault(log.New(io.Discard))
	defer log.SetDefault(prev)

	lvls, err := Catalog(getTestdataPath())
	require.NoError(t, err)

	lvl, err := find(lvls, "lvl01")
	require.NoError(t, err)
	assert.Equal(t, "Custom Field", lvl.Name)

	_, err = find(lvls, "alpha")
	assert.NoError(t, err)
	_, err = find(lvls, "lvl02")
	assert.NoError(t, err, "builtin levels stay in the catalog")
}

func TestCatalogMissingDir(t *testing.T) {
	lvls, err := Catalog(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)

	builtin, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, ids(builtin), ids(lvls))
}
