package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Pattern selector
	RadioOn  rune // ◉ chosen pattern
	RadioOff rune // ○ other patterns
	Pending  rune // … queued behind an in-flight request

	// Knob pointer, clockwise from 12 o'clock in 45 degree steps
	Pointer [8]rune
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Builtin()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			RadioOn:  '◉',
			RadioOff: '○',
			Pending:  '…',
			Pointer:  [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'},
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.15
	RoleMuted   = 0.3
	RoleAccent  = 0.55
	RoleActive  = 0.7
	RoleWarning = 0.6
	RoleFG      = 0.9
	RoleSuccess = 1.0
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Error is fixed red: palettes tuned for brightness rarely carry one
func (t *Theme) Error() lipgloss.Color {
	return lipgloss.Color("#f38ba8")
}

// Level colours a channel value 0-255
func (t *Theme) Level(v int) lipgloss.Color {
	return t.Color(float64(v) / 255)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
