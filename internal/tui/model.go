// Package tui is the terminal client. It drives a single session through
// the use case service.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/leaderboard"
	"svw.info/lightsout/internal/session"
	"svw.info/lightsout/internal/usecase"
)

type Model struct {
	ctx    context.Context
	svc    *usecase.Service
	styles Styles

	view   session.View
	cursor int
	hint   *domain.Hint
	input  textinput.Model

	message string
	err     error
}

func New(ctx context.Context, svc *usecase.Service) Model {
	ti := textinput.New()
	ti.Placeholder = leaderboard.Anonymous
	ti.CharLimit = leaderboard.MaxNameLength
	return Model{
		ctx:    ctx,
		svc:    svc,
		styles: DefaultStyles(),
		view:   svc.CreateSession(),
		input:  ti,
	}
}

// Run blocks until the player quits.
func Run(ctx context.Context, svc *usecase.Service) error {
	_, err := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// Session returns the current session snapshot.
func (m Model) Session() session.View { return m.view }

// Cursor returns the selected cell index.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.view.Phase == domain.NameEntry {
		return m.updateNameEntry(key)
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case " ", "enter":
		m.primary()
	case "u":
		m.apply(m.svc.Undo)
	case "r":
		m.apply(m.svc.Reset)
	case "n":
		m.advance()
	case "?":
		m.showHint()
	}
	return m, nil
}

func (m Model) updateNameEntry(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		v, entry, err := m.svc.SubmitName(m.ctx, m.view.ID, m.input.Value())
		m.setView(v, err)
		if err == nil {
			m.message = fmt.Sprintf("Saved %s with %d points", entry.Name, entry.Score)
		}
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case tea.KeyEsc:
		m.input.Reset()
		m.input.Blur()
		m.advance()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *Model) setView(v session.View, err error) {
	if v.ID != "" {
		m.view = v
	}
	m.err = err
	m.hint = nil
	if n := len(m.view.Grid); m.cursor >= n {
		m.cursor = 0
	}
}

func (m *Model) apply(fn func(ctx context.Context, id string) (session.View, error)) {
	m.message = ""
	v, err := fn(m.ctx, m.view.ID)
	m.setView(v, err)
}

func (m *Model) move(dr, dc int) {
	size := m.view.Level.GridSize
	if size == 0 {
		return
	}
	row, col := domain.Coord(m.cursor, size)
	row = (row + dr + size) % size
	col = (col + dc + size) % size
	m.cursor = row*size + col
}

// primary handles space and enter: start, press or continue depending on phase.
func (m *Model) primary() {
	switch m.view.Phase {
	case domain.Intro:
		m.apply(m.svc.Start)
	case domain.Playing:
		m.message = ""
		v, solved, err := m.svc.Press(m.ctx, m.view.ID, m.cursor)
		m.setView(v, err)
		if solved {
			m.message = fmt.Sprintf("Solved in %d moves: +%d points", v.Moves, v.LevelScore)
		}
	default:
		m.advance()
	}
}

func (m *Model) advance() {
	m.apply(m.svc.Advance)
	if m.err == nil && m.view.Phase == domain.NameEntry {
		m.message = "New high score! Enter your name."
		m.input.Focus()
	}
}

func (m *Model) showHint() {
	h, ok, err := m.svc.Hint(m.ctx, m.view.ID)
	m.err = err
	switch {
	case err != nil:
	case !ok:
		m.message = "No hint available"
	default:
		m.hint = &h
		m.cursor = h.Index
		m.message = h.Message
	}
}

func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render("LIGHTS OUT"))
	b.WriteString("\n")

	switch m.view.Phase {
	case domain.Intro:
		b.WriteString("Turn every light off. Pressing a cell flips it and its neighbours.\n")
		b.WriteString(s.Help.Render("enter: start  q: quit"))
		return b.String()
	case domain.NameEntry:
		b.WriteString(fmt.Sprintf("Score %d qualifies for the leaderboard.\n\n", m.view.CumulativeScore))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(s.Help.Render("enter: save  esc: skip"))
		return b.String()
	}

	b.WriteString(s.Status.Render(fmt.Sprintf("Level %d/%d %s  Moves %d/%d  Score %d",
		m.view.LevelIndex+1, m.view.LevelCount, m.view.Level.Name,
		m.view.Moves, m.view.Level.MaxMoves, m.view.CumulativeScore)))
	b.WriteString("\n")
	b.WriteString(s.Board.Render(m.renderGrid()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(s.Error.Render(m.err.Error()))
	case m.message != "":
		b.WriteString(s.Message.Render(m.message))
	}
	b.WriteString("\n")

	help := "arrows/hjkl: move  space: press  u: undo  r: reset  ?: hint  q: quit"
	if m.view.Phase != domain.Playing {
		help = "n: continue  q: quit"
	}
	b.WriteString(s.Help.Render(help))
	return b.String()
}

func (m Model) renderGrid() string {
	size := m.view.Level.GridSize
	if size == 0 {
		return ""
	}
	rows := make([]string, 0, size)
	for r := 0; r < size; r++ {
		cells := make([]string, 0, size)
		for c := 0; c < size; c++ {
			i := r*size + c
			style := m.styles.Off
			glyph := "○"
			if i < len(m.view.Grid) && m.view.Grid[i].IsActive {
				style, glyph = m.styles.On, "●"
			}
			if m.hint != nil && m.hint.Index == i {
				style = style.Inherit(m.styles.Hint)
			}
			if m.view.Phase == domain.Playing && i == m.cursor {
				style = style.Inherit(m.styles.Cursor)
			}
			cells = append(cells, style.Render(glyph))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
