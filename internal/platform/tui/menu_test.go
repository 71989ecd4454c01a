package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(MenuModel)
	require.True(t, ok)
	return out
}

func TestMenuShowsBestScores(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveRun(storage.Run{Mode: "chase", LevelID: "b", Score: 42, Ticks: 126})
	require.NoError(t, err)

	m := NewMenuModel([]levels.Level{openLevel("a"), openLevel("b")}, store, testRuntime)
	require.Len(t, m.items, 2)
	assert.Zero(t, m.items[0].Best)
	assert.Equal(t, 42, m.items[1].Best)
	assert.Equal(t, "run", m.items[0].Hint)

	view := m.View()
	assert.Contains(t, view, "Open b")
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "Chase")
}

func TestMenuSelectLevelAndMode(t *testing.T) {
	m := NewMenuModel([]levels.Level{openLevel("a"), openLevel("b")}, nil, testRuntime)
	assert.Equal(t, "chase", m.Mode())

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown}) // stays on the last level
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "sandbox", m.Mode())
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "chase", m.Mode(), "modes wrap around")
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.result()
	assert.Equal(t, "b", res.LevelID)
	assert.Equal(t, "sandbox", res.Mode)
	assert.False(t, res.Quit)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	lvls := []levels.Level{openLevel("a")}

	m := updateMenu(t, NewMenuModel(lvls, nil, testRuntime), tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.result().WantsScoreboard)

	m = updateMenu(t, NewMenuModel(lvls, nil, testRuntime), runeKey("q"))
	assert.True(t, m.result().Quit)
	assert.Empty(t, m.View())
}

func TestMenuTracksResize(t *testing.T) {
	m := updateMenu(t, NewMenuModel(nil, nil, testRuntime), tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.Config().ScreenW)
	assert.Equal(t, 30, m.Config().ScreenH)
	assert.Contains(t, m.View(), "No levels found")

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.Selected(), "nothing to pick")
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   ab", centerText("ab", 8))
	assert.Equal(t, "abcdef", centerText("abcdef", 4))
}
