package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aidenn8/Pathfinder/internal/core"
)

var ansiCodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderScreenKeepsRunes(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.SetColored(0, 0, '@', core.ColorBrightGreen)
	s.SetColored(1, 0, 'X', core.ColorBrightRed)
	s.SetColored(2, 0, 'X', core.ColorBrightRed)
	s.DrawTextColored(0, 2, "ok", core.Color(99)) // unknown colors fall back to default

	out := ansiCodes.ReplaceAllString(RenderScreen(s), "")
	assert.Equal(t, s.String(), out)
	assert.Equal(t, 3, strings.Count(out, "\n")+1)
}

func TestRenderScreenEmpty(t *testing.T) {
	assert.Empty(t, RenderScreen(core.NewScreen(0, 0)))
}
