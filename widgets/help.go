package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"lightdeck/theme"
)

// KeySection groups related key bindings under a title
type KeySection struct {
	Title    string
	Bindings []key.Binding
}

// RenderKeyHelp formats the full help overlay. Disabled bindings are skipped.
func RenderKeyHelp(th *theme.Theme, sections []KeySection) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent())
	keyStyle := lipgloss.NewStyle().Foreground(th.FG())
	descStyle := lipgloss.NewStyle().Foreground(th.Muted())

	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, titleStyle.Render(sec.Title))
		}
		for _, b := range sec.Bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %s %s",
				keyStyle.Render(fmt.Sprintf("%-12s", h.Key)),
				descStyle.Render(h.Desc)))
		}
	}
	return strings.Join(lines, "\n")
}
