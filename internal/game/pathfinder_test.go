package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidenn8/Pathfinder/internal/config"
	"github.com/Aidenn8/Pathfinder/internal/core"
	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/registry"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}

// testLevel is a 100x60 arena: origin at screen cell (27, 1), one column per
// 4 units and one row per 8 units.
func testLevel() levels.Level {
	return levels.Level{
		ID:     "test",
		Name:   "Test Arena",
		Width:  100,
		Height: 60,
		Border: true,
		Player: geom.Pt(10, 30),
		Walls:  []geom.Segment{geom.Seg(geom.Pt(50, 0), geom.Pt(50, 40))},
		Movers: []levels.MoverSpec{
			{Name: "hunter", Pos: geom.Pt(30, 30), Speed: 5, Rule: levels.RuleChase},
		},
	}
}

func newGame(t *testing.T, mode Mode, lvl levels.Level) *Pathfinder {
	t.Helper()
	g := New(mode, lvl, config.Default())
	g.Reset(testRuntime)
	return g
}

func TestRegistered(t *testing.T) {
	for _, mode := range []Mode{ModeChase, ModeSandbox} {
		g, err := registry.Create(string(mode), registry.Setup{Level: testLevel(), Config: config.Default()})
		require.NoError(t, err)
		assert.Equal(t, string(mode), g.ID())
		assert.Equal(t, "test", g.LevelID())
		_, ok := g.(registry.Resizer)
		assert.True(t, ok, "game should resize without restarting")
	}
}

func TestChaseCatchesPlayer(t *testing.T) {
	g := newGame(t, ModeChase, testLevel())
	in := core.NewInputFrame()

	// The player holds still; the chaser closes 5 units per tick from 20 away.
	var res core.StepResult
	for i := 0; i < 3; i++ {
		res = g.Step(in)
		require.False(t, res.State.GameOver, "caught too early at tick %d", i+1)
	}
	res = g.Step(in)
	require.True(t, res.State.GameOver)
	assert.Equal(t, "hunter", res.CaughtBy)
	assert.Equal(t, "hunter", g.CaughtBy())
	assert.Equal(t, 4, res.State.Ticks)
	assert.Equal(t, 4*10/30, res.State.Score)

	// The run is frozen after game over.
	res = g.Step(in)
	assert.Equal(t, 4, res.State.Ticks)
}

func TestChaseScoreGrowsWithTime(t *testing.T) {
	lvl := testLevel()
	lvl.Movers[0].Rule = levels.RuleStand
	g := newGame(t, ModeChase, lvl)

	for i := 0; i < 90; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.False(t, g.State().GameOver)
	assert.Equal(t, 30, g.State().Score, "3 seconds at 10 points per second")
}

func TestSandboxNeverEnds(t *testing.T) {
	g := newGame(t, ModeSandbox, testLevel())
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
	}

	assert.False(t, g.State().GameOver)
	assert.Zero(t, g.State().Score)
	assert.Equal(t, 200, g.State().Ticks)
}

func TestPauseStopsTheClock(t *testing.T) {
	g := newGame(t, ModeChase, testLevel())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	res := g.Step(pause)
	assert.True(t, res.State.Paused)
	assert.Zero(t, res.State.Ticks)

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.Zero(t, g.State().Ticks)
	assert.Equal(t, geom.Pt(30, 30), g.World().Movers()[0].Position())

	res = g.Step(pause)
	assert.False(t, res.State.Paused)
	assert.Equal(t, 1, res.State.Ticks)
}

func TestMouseSetsPointer(t *testing.T) {
	g := newGame(t, ModeSandbox, testLevel())

	in := core.NewInputFrame()
	in.SetPointer(27+5, 1+2)
	g.Step(in)

	assert.Equal(t, geom.Pt(22, 20), g.World().Pointer().Position())
	assert.NotEqual(t, geom.Pt(10, 30), g.World().Player().Position(), "player heads for the pointer")

	// Clicks on the HUD are not arena clicks.
	in.Clear()
	in.SetPointer(30, 0)
	g.Step(in)
	assert.Equal(t, geom.Pt(22, 20), g.World().Pointer().Position())
}

func TestArrowsNudgePointer(t *testing.T) {
	g := newGame(t, ModeSandbox, testLevel())

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionUp)
	g.Step(in)
	assert.Equal(t, geom.Pt(14, 22), g.World().Pointer().Position())

	in.Clear()
	in.Set(core.ActionLeft)
	for i := 0; i < 10; i++ {
		g.Step(in)
	}
	assert.Equal(t, geom.Pt(0, 22), g.World().Pointer().Position(), "pointer stays in the arena")
}

func TestResetRestoresLevel(t *testing.T) {
	g := newGame(t, ModeChase, testLevel())
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	require.True(t, g.State().GameOver)

	g.Reset(testRuntime)
	assert.Equal(t, core.GameState{}, g.State())
	assert.Empty(t, g.CaughtBy())
	assert.Equal(t, []geom.Point{geom.Pt(10, 30), geom.Pt(30, 30)}, g.Snapshot().Positions)
}

func TestDeterminism(t *testing.T) {
	lvl, err := levels.Find("", "lvl03")
	require.NoError(t, err)

	g1 := newGame(t, ModeSandbox, lvl)
	g2 := newGame(t, ModeSandbox, lvl)

	in := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		in.Clear()
		switch {
		case i%50 == 10:
			in.SetPointer(10+i%60, 2+i%20)
		case i%7 == 0:
			in.Set(core.ActionDown)
		case i%5 == 0:
			in.Set(core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestSpeedFactorFromConfig(t *testing.T) {
	cfg := config.Default()
	config.ApplyPreset(&cfg, config.DifficultyHard)

	g := New(ModeChase, testLevel(), cfg)
	g.Reset(testRuntime)
	assert.InDelta(t, 5*1.3, g.World().Movers()[0].Speed(), 1e-12)
	assert.Equal(t, cfg.Sim.PlayerSpeed, g.World().Player().Speed())
}

func TestToggleCrashes(t *testing.T) {
	g := newGame(t, ModeSandbox, testLevel())
	assert.False(t, g.ShowCrashes())

	in := core.NewInputFrame()
	in.Set(core.ActionCrashes)
	g.Step(in)
	assert.True(t, g.ShowCrashes())
	g.Step(in)
	assert.False(t, g.ShowCrashes())
}

func TestBuiltinLevelsStartSafely(t *testing.T) {
	lvls, err := levels.Builtin()
	require.NoError(t, err)

	for _, lvl := range lvls {
		g := newGame(t, ModeChase, lvl)
		res := g.Step(core.NewInputFrame())
		assert.False(t, res.State.GameOver, "%s: caught on the first tick", lvl.ID)
	}
}

func TestStepBeforeReset(t *testing.T) {
	g := New(ModeChase, testLevel(), config.Default())
	assert.NotPanics(t, func() {
		g.Step(core.NewInputFrame())
		g.Render(core.NewScreen(20, 5))
	})
	assert.Nil(t, g.World())
}

func TestRender(t *testing.T) {
	g := newGame(t, ModeChase, testLevel())
	s := core.NewScreen(80, 24)
	g.Render(s)

	assert.Contains(t, s.Row(0), "Test Arena")
	assert.Contains(t, s.Row(0), "score 0")

	player := s.GetCell(29, 4)
	assert.Equal(t, '@', player.Rune)
	assert.Equal(t, core.ColorBrightGreen, player.Color)

	hunter := s.GetCell(34, 4)
	assert.Equal(t, 'X', hunter.Rune)
	assert.Equal(t, core.ColorBrightRed, hunter.Color)

	assert.Equal(t, '│', s.Get(39, 3), "interior wall")
	assert.Equal(t, '─', s.Get(30, 1), "top border")
	assert.Equal(t, '│', s.Get(52, 5), "right border")
}

func TestRenderCrashMarker(t *testing.T) {
	lvl := testLevel()
	lvl.Border = false
	lvl.Walls = []geom.Segment{geom.Seg(geom.Pt(20, 0), geom.Pt(20, 60))}
	lvl.Movers = nil

	cfg := config.Default()
	cfg.View.ShowCrashes = true
	g := New(ModeSandbox, lvl, cfg)
	g.Reset(testRuntime)
	g.World().Pointer().Set(geom.Pt(42, 28))

	s := core.NewScreen(80, 24)
	g.Render(s)
	assert.Equal(t, '*', s.Get(32, 4))
	assert.Equal(t, '+', s.Get(37, 4))
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, ModeChase, testLevel())
	s := core.NewScreen(80, 24)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	g.Render(s)
	assert.Contains(t, s.String(), "PAUSED")

	g.Step(pause)
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(s)
	out := s.String()
	assert.Contains(t, out, "CAUGHT")
	assert.Contains(t, out, "by hunter")
	assert.False(t, strings.Contains(out, "PAUSED"))
}
