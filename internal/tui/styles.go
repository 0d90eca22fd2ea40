package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the board view.
type Styles struct {
	Title   lipgloss.Style
	Status  lipgloss.Style
	Board   lipgloss.Style
	On      lipgloss.Style
	Off     lipgloss.Style
	Cursor  lipgloss.Style
	Hint    lipgloss.Style
	Message lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD54A")).
			Bold(true).
			MarginBottom(1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9E9E9E")),
		Board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5C6370")).
			Padding(0, 1),
		On:  cell.Foreground(lipgloss.Color("#FFD54A")),
		Off: cell.Foreground(lipgloss.Color("#3E4451")),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color("#3A3F4B")),
		Hint: lipgloss.NewStyle().
			Background(lipgloss.Color("#01579B")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81C784")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E57373")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5C6370")).
			MarginTop(1),
	}
}
