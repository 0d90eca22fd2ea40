package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/generator"
	"svw.info/lightsout/internal/hint"
	"svw.info/lightsout/internal/infrastructure/storage"
	"svw.info/lightsout/internal/leaderboard"
	"svw.info/lightsout/internal/solver"
	"svw.info/lightsout/internal/usecase"
	"svw.info/lightsout/internal/validator"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := solver.NewGF2Solver()
	svc := usecase.NewService(s, generator.New(s, generator.DefaultAttempts), validator.New(), hint.NewPresses(s),
		storage.NewMemory(), domain.DefaultLevels()[:1], leaderboard.New(10), nil)
	return New(context.Background(), svc)
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartAndNavigate(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, domain.Intro, m.Session().Phase)
	assert.Contains(t, m.View(), "enter: start")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, domain.Playing, m.Session().Phase)
	assert.Equal(t, 0, m.Cursor())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Cursor())
	m, _ = send(m, runes("j"))
	assert.Equal(t, 4, m.Cursor())
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 7, m.Cursor(), "wraps to the bottom row")
	m, _ = send(m, runes("h"))
	assert.Equal(t, 6, m.Cursor())
	m, _ = send(m, runes("h"))
	assert.Equal(t, 8, m.Cursor(), "wraps to the last column")
}

func TestPressAndUndo(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	before := m.Session().Grid

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().Phase == domain.Playing {
		assert.Equal(t, 1, m.Session().Moves)
		assert.NotEqual(t, before, m.Session().Grid)
		assert.True(t, m.Session().CanUndo)

		m, _ = send(m, runes("u"))
		assert.Equal(t, 0, m.Session().Moves)
		assert.Equal(t, before, m.Session().Grid)
	}
}

func TestHintSolvesToNameEntry(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	for i := 0; m.Session().Phase == domain.Playing; i++ {
		require.Less(t, i, 20, "hints did not solve the level")
		m, _ = send(m, runes("?"))
		require.NoError(t, m.err)
		m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	}
	require.Equal(t, domain.Solved, m.Session().Phase)
	assert.Contains(t, m.View(), "Solved in")

	m, _ = send(m, runes("n"))
	require.Equal(t, domain.NameEntry, m.Session().Phase)

	for _, r := range "ada" {
		m, _ = send(m, runes(string(r)))
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.Transition, m.Session().Phase)
	assert.Contains(t, m.message, "Saved ada")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
