package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidenn8/Pathfinder/internal/config"
	"github.com/Aidenn8/Pathfinder/internal/levels"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(SessionModel)
	require.True(t, ok)
	return out, cmd
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	lvls := []levels.Level{openLevel("a"), openLevel("b")}
	return NewSessionModel(lvls, openStore(t), config.Default(), testRuntime, nil)
}

func TestSessionPlaysAndReturnsToMenu(t *testing.T) {
	s := newTestSession(t)

	s, cmd := updateSession(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, s.screen)
	require.NotNil(t, cmd, "the game starts its tick loop")
	assert.Equal(t, "a", s.play.game.LevelID())
	assert.Equal(t, "chase", s.play.game.ID())

	for i := 0; i < 1000 && !s.play.State().GameOver; i++ {
		s, _ = updateSession(t, s, TickMsg{Loop: s.play.loop})
	}
	require.True(t, s.play.State().GameOver)

	s, _ = updateSession(t, s, runeKey("b"))
	assert.Equal(t, screenMenu, s.screen)
	assert.Positive(t, s.menu.items[0].Best, "menu reloads best scores")

	// A tick from the finished game is harmless in the menu.
	s, cmd = updateSession(t, s, TickMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, screenMenu, s.screen)
}

func TestSessionScoreboard(t *testing.T) {
	s := newTestSession(t)

	s, _ = updateSession(t, s, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, s.screen)
	assert.Contains(t, s.View(), "BEST RUNS")

	s, _ = updateSession(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)
	assert.Contains(t, s.View(), "P A T H F I N D E R")
}

func TestSessionQuit(t *testing.T) {
	s := newTestSession(t)
	s, _ = updateSession(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	s, cmd := updateSession(t, s, runeKey("q"))
	assert.NotNil(t, cmd)
	assert.True(t, s.quitting)
	assert.Empty(t, s.View())
}

func TestSessionResize(t *testing.T) {
	s := newTestSession(t)
	s, _ = updateSession(t, s, tea.WindowSizeMsg{Width: 132, Height: 43})
	assert.Equal(t, 132, s.config.ScreenW)

	s, _ = updateSession(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 132, s.play.config.ScreenW)
}

func TestLevelByID(t *testing.T) {
	lvls := []levels.Level{openLevel("a")}
	lvl, err := levelByID(lvls, "a")
	require.NoError(t, err)
	assert.Equal(t, "Open a", lvl.Name)

	_, err = levelByID(lvls, "zz")
	assert.ErrorIs(t, err, levels.ErrNotFound)
}
