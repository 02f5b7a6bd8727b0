package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lightdeck/panel"
	"lightdeck/theme"
)

// RenderNotifications stacks notifications oldest first. Leaving ones are
// drawn faint while they fade.
func RenderNotifications(th *theme.Theme, items []panel.Notification) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, n := range items {
		bg := th.Success()
		if n.Kind == panel.NotifyError {
			bg = th.Error()
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(bg).
			Padding(0, 1)
		if n.Leaving {
			style = style.Faint(true)
		}
		lines = append(lines, style.Render(n.Text))
	}
	return strings.Join(lines, "\n")
}
