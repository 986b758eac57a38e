package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains the lipgloss styles used for command output.
type Styles struct {
	Header  lipgloss.Style // Table headers, plan titles
	Muted   lipgloss.Style // Context entries
	Added   lipgloss.Style // New entries
	Removed lipgloss.Style // Pruned or deleted entries
	Moved   lipgloss.Style // Renamed entries
}

// NewStyles builds styles for w. Colors are dropped when w is not a
// terminal.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Header:  r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#808080")),
		Added:   r.NewStyle().Foreground(lipgloss.Color("#42b883")),
		Removed: r.NewStyle().Foreground(lipgloss.Color("#ff5555")),
		Moved:   r.NewStyle().Foreground(lipgloss.Color("#f1a208")),
	}
}

// Plain returns styles that render text unchanged.
func Plain() *Styles {
	s := lipgloss.NewStyle()
	return &Styles{Header: s, Muted: s, Added: s, Removed: s, Moved: s}
}
