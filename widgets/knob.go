package widgets

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"lightdeck/panel"
	"lightdeck/theme"
)

// KnobWidth is the rendered width of one knob in cells
const KnobWidth = 9

// PointerIndex maps a rotation to one of 8 pointer positions, 0 at 12 o'clock
func PointerIndex(angle float64) int {
	return int(math.Round(angle/45)) % 8
}

// Knob is a rotary control for one channel value
type Knob struct {
	Label   string
	Value   int
	Focused bool
}

// Render draws the knob: label, dial with pointer, numeric readout
func (k Knob) Render(th *theme.Theme) string {
	border := th.Muted()
	if k.Focused {
		border = th.Accent()
	}

	pointer := th.Symbols.Pointer[PointerIndex(panel.Angle(k.Value))]
	dial := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(th.Level(k.Value)).
		Bold(true).
		Width(KnobWidth - 2).
		Align(lipgloss.Center).
		Render(string(pointer))

	label := lipgloss.NewStyle().Width(KnobWidth).Align(lipgloss.Center).Foreground(th.FG())
	readout := lipgloss.NewStyle().Width(KnobWidth).Align(lipgloss.Center).Foreground(th.Level(k.Value))
	if k.Focused {
		label = label.Bold(true).Foreground(th.Accent())
		readout = readout.Bold(true)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		label.Render(ansi.Truncate(k.Label, KnobWidth, "…")),
		dial,
		readout.Render(panel.Readout(k.Value)),
	)
}

// RenderKnobRow lays out knobs side by side
func RenderKnobRow(th *theme.Theme, knobs []Knob) string {
	cells := make([]string, 0, len(knobs)*2)
	for i, k := range knobs {
		if i > 0 {
			cells = append(cells, " ")
		}
		cells = append(cells, k.Render(th))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
