package game

import (
	"fmt"

	"github.com/Aidenn8/Pathfinder/internal/core"
	"github.com/Aidenn8/Pathfinder/internal/geom"
	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/mover"
)

const (
	runePlayer  = '@'
	runePointer = '+'
	runeCrash   = '*'
)

// moverGlyph returns how a mover with the given rule is drawn.
func moverGlyph(rule levels.RuleKind) (rune, core.Color) {
	switch rule {
	case levels.RuleChase:
		return 'X', core.ColorBrightRed
	case levels.RuleFollow:
		return 'x', core.ColorMagenta
	case levels.RuleGoto:
		return 'o', core.ColorYellow
	default:
		return 'o', core.ColorGray
	}
}

// Render draws the HUD, the arena and any overlay.
func (g *Pathfinder) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "no level loaded", core.ColorGray)
		return
	}

	g.renderHUD(dst)

	for _, s := range g.world.Walls().Segments() {
		r := g.view.wallRune(s)
		g.view.RasterSegment(s, func(x, y int) {
			dst.SetColored(x, y, r, core.ColorBlue)
		})
	}

	for i, m := range g.world.Movers() {
		var rule levels.RuleKind
		if i < len(g.level.Movers) {
			rule = g.level.Movers[i].Rule
		}
		r, c := moverGlyph(rule)
		g.plot(dst, m.Position(), r, c)
	}

	player := g.world.Player()
	pointer := g.world.Pointer().Position()
	g.plot(dst, pointer, runePointer, core.ColorCyan)

	if g.showCrashes {
		from := player.Position()
		crashes := g.world.Walls().Intersections(geom.Seg(from, pointer))
		if p, ok := mover.Nearest(from, crashes); ok {
			g.plot(dst, p, runeCrash, core.ColorBrightYellow)
		}
	}

	g.plot(dst, player.Position(), runePlayer, core.ColorBrightGreen)

	switch {
	case g.state.GameOver:
		g.renderGameOver(dst)
	case g.state.Paused:
		g.renderPaused(dst)
	}
}

func (g *Pathfinder) plot(dst *core.Screen, p geom.Point, r rune, c core.Color) {
	x, y := g.view.ToCell(p)
	dst.SetColored(x, y, r, c)
}

func (g *Pathfinder) renderHUD(dst *core.Screen) {
	left := fmt.Sprintf(" %s | %s", g.level.Name, g.Title())
	dst.DrawTextColored(0, 0, left, core.ColorBrightCyan)

	var right string
	if g.mode == ModeChase {
		right = fmt.Sprintf("score %d  %s ", g.state.Score, g.elapsed())
	} else {
		right = fmt.Sprintf("%s ", g.elapsed())
	}
	dst.DrawTextColored(dst.Width()-len(right), 0, right, core.ColorWhite)
}

// elapsed formats the simulated time as seconds.
func (g *Pathfinder) elapsed() string {
	return fmt.Sprintf("%.1fs", float64(g.state.Ticks)/float64(max(g.tickRate, 1)))
}

func (g *Pathfinder) renderPaused(dst *core.Screen) {
	lines := []string{
		"PAUSED",
		"",
		"mouse/arrows  steer",
		"c  blocked-move marker",
		"p  resume   b  menu   q  quit",
	}
	g.renderPanel(dst, lines, core.ColorYellow)
}

func (g *Pathfinder) renderGameOver(dst *core.Screen) {
	lines := []string{
		"CAUGHT",
		"",
		fmt.Sprintf("by %s after %s", g.caughtBy, g.elapsed()),
		fmt.Sprintf("score %d", g.state.Score),
		"",
		"r  restart   b  menu   q  quit",
	}
	g.renderPanel(dst, lines, core.ColorRed)
}

// renderPanel draws centered lines inside a box in the middle of the screen.
func (g *Pathfinder) renderPanel(dst *core.Screen, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), w+4, len(lines)+2)
	dst.DrawBox(box, c)
	for i, l := range lines {
		dst.DrawTextColored(box.X+2+(w-len(l))/2, box.Y+1+i, l, c)
	}
}
