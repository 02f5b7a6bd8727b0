package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the panel's key bindings
type KeyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Help    key.Binding

	// Select tab
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding

	// Create tab
	PrevStage key.Binding
	NextStage key.Binding
	PrevChan  key.Binding
	NextChan  key.Binding
	Inc       key.Binding
	Dec       key.Binding
	IncCoarse key.Binding
	DecCoarse key.Binding
	Min       key.Binding
	Max       key.Binding
	AddStage  key.Binding
	EditName  key.Binding
	Submit    key.Binding
	DoneName  key.Binding
}

// DefaultKeyMap returns the default key map
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "select tab")),
		Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "create tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play pattern")),

		PrevStage: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev stage")),
		NextStage: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next stage")),
		PrevChan:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev knob")),
		NextChan:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next knob")),
		Inc:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "turn up")),
		Dec:       key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "turn down")),
		IncCoarse: key.NewBinding(key.WithKeys("pgup", "]"), key.WithHelp("pgup", "turn up 16")),
		DecCoarse: key.NewBinding(key.WithKeys("pgdown", "["), key.WithHelp("pgdn", "turn down 16")),
		Min:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "off")),
		Max:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "full")),
		AddStage:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add stage")),
		EditName:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit name")),
		Submit:    key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save pattern")),
		DoneName:  key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
	}
}

// coarseStep is the knob change for pgup/pgdown
const coarseStep = 16
