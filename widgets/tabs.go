package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"lightdeck/theme"
)

// RenderTabs draws a tab bar with exactly one active tab
func RenderTabs(th *theme.Theme, names []string, active int) string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BG()).
		Background(th.Accent()).
		Padding(0, 2)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(th.Muted()).
		Background(th.Surface()).
		Padding(0, 2)

	cells := make([]string, 0, len(names))
	for i, name := range names {
		if i == active {
			cells = append(cells, activeStyle.Render(string(th.Symbols.RadioOn)+" "+name))
		} else {
			cells = append(cells, inactiveStyle.Render(string(th.Symbols.RadioOff)+" "+name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
