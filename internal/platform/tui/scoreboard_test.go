package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidenn8/Pathfinder/internal/levels"
	"github.com/Aidenn8/Pathfinder/internal/storage"
)

func updateScores(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(ScoreboardModel)
	require.True(t, ok)
	return out
}

func TestScoreboardListsRunsPerLevel(t *testing.T) {
	store := openStore(t)
	for _, r := range []storage.Run{
		{Mode: "chase", LevelID: "a", Score: 10, Ticks: 30},
		{Mode: "chase", LevelID: "a", Score: 30, Ticks: 90},
		{Mode: "chase", LevelID: "b", Score: 5, Ticks: 15},
		{Mode: "sandbox", LevelID: "b", Score: 99, Ticks: 297},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	lvls := []levels.Level{openLevel("a"), openLevel("b")}
	m := NewScoreboardModel(lvls, store, 100, 30, 30)
	assert.Equal(t, "a", m.Level())
	require.Len(t, m.Runs(), 2)
	assert.Equal(t, 30, m.Runs()[0].Score)
	assert.Contains(t, m.View(), "Open a")

	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "b", m.Level())
	require.Len(t, m.Runs(), 1, "sandbox runs are not ranked")
	assert.Equal(t, 5, m.Runs()[0].Score)

	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "a", m.Level(), "levels wrap around")
	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "b", m.Level())
}

func TestScoreboardNarrowAndEmpty(t *testing.T) {
	m := NewScoreboardModel([]levels.Level{openLevel("a")}, nil, 50, 20, 30)
	assert.Empty(t, m.Runs())

	view := m.View()
	assert.Contains(t, view, "No runs recorded yet.")
	assert.Contains(t, view, "a")

	m = updateScores(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Levels")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := updateScores(t, NewScoreboardModel(nil, nil, 80, 24, 30), runeKey("b"))
	assert.True(t, m.IsGoingBack())
	assert.Empty(t, m.View())

	m = updateScores(t, NewScoreboardModel(nil, nil, 80, 24, 30), runeKey("q"))
	assert.True(t, m.IsQuitting())
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "1.5s", formatSeconds(45, 30))
	assert.Equal(t, "3.0s", formatSeconds(3, 0))
	assert.Equal(t, "Lon.", truncate("Longname", 4))
	assert.Equal(t, "ab", truncate("ab", 4))
}
