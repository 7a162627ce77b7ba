package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Faint   lipgloss.Style
	Missing lipgloss.Style
}

// newTheme renders for w, so non-terminal writers get plain text.
func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		Title:   r.NewStyle().Bold(true),
		Label:   r.NewStyle().Foreground(lipgloss.Color("63")),
		Faint:   r.NewStyle().Faint(true),
		Missing: r.NewStyle().Foreground(lipgloss.Color("208")),
	}
}
