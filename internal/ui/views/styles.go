package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	ActiveRow   lipgloss.Style
	RowTitle    lipgloss.Style
	RowDesc     lipgloss.Style
	Category    lipgloss.Style
	KindExample lipgloss.Style
	KindDoc     lipgloss.Style
	Prompt      lipgloss.Style
	Toast       lipgloss.Style
	Overlay     lipgloss.Style
	Scan        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ActiveRow:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		RowTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		RowDesc:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Category:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		KindExample: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		KindDoc:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Toast:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Scan: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
}

// KindColor returns the badge color for an entry kind
func KindColor(kind string) string {
	switch kind {
	case "example":
		return "78" // green
	case "doc":
		return "33" // blue
	default:
		return "241" // gray
	}
}
