package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/overlay rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup on top of the main content. The base
// content is desaturated; the popup is spliced into its lines so the
// surrounding context stays visible.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int) string {
	styledPopup := pr.styles.Overlay.Render(popupContent)

	popupLines := strings.Split(styledPopup, "\n")
	popupW := lipgloss.Width(styledPopup)
	popupH := len(popupLines)

	x := (width - popupW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - popupH) / 3 // a third from the top, like a command palette
	if y < 1 {
		y = 1
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < y+popupH {
		base = append(base, "")
	}

	pad := strings.Repeat(" ", x)
	for i, pl := range popupLines {
		base[y+i] = pad + pl
	}

	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		out[i] = dim.Render(ansiRE.ReplaceAllString(line, ""))
	}
	return strings.Join(out, "\n")
}
