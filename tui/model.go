package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lightdeck/debug"
	"lightdeck/midi"
	"lightdeck/panel"
	"lightdeck/theme"
	"lightdeck/widgets"
)

// Tab is one of the panel's pages
type Tab int

const (
	TabSelect Tab = iota
	TabCreate
)

var tabNames = []string{"Select", "Create"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

// Backend is the device the panel drives
type Backend interface {
	Select(ctx context.Context, index int) error
	Save(ctx context.Context, sub panel.Submission) error
}

// Options configures a Model
type Options struct {
	Backend      Backend
	BackendLabel string // shown in the header
	Theme        *theme.Theme
	Template     panel.Template
	InitialTab   Tab
	Timeout      time.Duration // per request; 0 for none
	DeviceMgr    *midi.DeviceManager
	Mapping      midi.Mapping
}

// tickFunc schedules a delayed message; tea.Tick outside tests
type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

type Model struct {
	ctx     context.Context
	backend Backend
	label   string
	theme   *theme.Theme
	keys    KeyMap
	help    help.Model
	timeout time.Duration
	tick    tickFunc
	logger  *slog.Logger

	width    int
	height   int
	tab      Tab
	showHelp bool
	quitting bool

	// Select tab
	cursor  int
	chosen  int // -1 until a pattern is picked
	selects panel.SelectQueue

	// Create tab
	draft       *panel.Draft
	stage       int
	channel     int
	nameInput   textinput.Model
	editingName bool
	saving      panel.Guard

	notes panel.Notifications

	deviceMgr   *midi.DeviceManager
	mapping     midi.Mapping
	controllers map[string]bool
}

// New builds the panel model. ctx bounds every request the panel makes.
func New(ctx context.Context, opts Options) Model {
	th := opts.Theme
	if th == nil {
		th = theme.New(nil)
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "pattern name"
	input.CharLimit = 64
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(th.Muted())
	input.TextStyle = lipgloss.NewStyle().Bold(true).Foreground(th.FG())

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.FG())
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted())
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Muted())

	return Model{
		ctx:         ctx,
		backend:     opts.Backend,
		label:       opts.BackendLabel,
		theme:       th,
		keys:        DefaultKeyMap(),
		help:        h,
		timeout:     opts.Timeout,
		tick:        tea.Tick,
		logger:      debug.Logger("tui"),
		tab:         opts.InitialTab,
		chosen:      -1,
		draft:       panel.NewDraft(opts.Template),
		nameInput:   input,
		deviceMgr:   opts.DeviceMgr,
		mapping:     opts.Mapping,
		controllers: make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	if m.deviceMgr != nil {
		return ListenForDevices(m.deviceMgr)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case selectDoneMsg:
		return m, m.selectDone(msg)

	case saveDoneMsg:
		return m, m.saveDone(msg)

	case notifyHideMsg:
		if m.notes.Hide(msg.id) {
			id := msg.id
			return m, m.tick(panel.NotifyFade, func(time.Time) tea.Msg { return notifyRemoveMsg{id: id} })
		}
		return m, nil

	case notifyRemoveMsg:
		m.notes.Remove(msg.id)
		return m, nil

	case DeviceEventMsg:
		return m, m.handleDevice(midi.DeviceEvent(msg))

	case deviceStreamClosedMsg:
		return m, nil

	case controlMsg:
		return m, m.handleControl(msg)

	case controllerClosedMsg:
		delete(m.controllers, msg.id)
		return m, nil
	}

	if m.editingName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The name field swallows everything except leaving it
	if m.editingName {
		if key.Matches(msg, m.keys.DoneName) {
			m.editingName = false
			m.nameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.activate((m.tab + 1) % Tab(len(tabNames)))
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.activate((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		m.activate(TabSelect)
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.activate(TabCreate)
		return m, nil
	}

	switch m.tab {
	case TabSelect:
		return m, m.selectorKey(msg)
	case TabCreate:
		return m, m.editorKey(msg)
	}
	return m, nil
}

// activate shows exactly one tab
func (m *Model) activate(t Tab) {
	if t == m.tab {
		return
	}
	m.tab = t
	m.logger.Debug("tab activated", "tab", t.String())
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch m.tab {
	case TabSelect:
		return m.selectorMouse(msg)
	case TabCreate:
		m.editorMouse(msg)
	}
	return nil
}

func (m *Model) handleDevice(ev midi.DeviceEvent) tea.Cmd {
	next := ListenForDevices(m.deviceMgr)
	switch ev.Type {
	case midi.DeviceConnected:
		m.controllers[ev.ID] = true
		m.logger.Info("control surface connected", "port", ev.ID)
		return tea.Batch(next, listenForControl(ev.Controller))
	case midi.DeviceDisconnected:
		delete(m.controllers, ev.ID)
		m.logger.Info("control surface disconnected", "port", ev.ID)
	}
	return next
}

func (m *Model) handleControl(msg controlMsg) tea.Cmd {
	next := listenForControl(msg.controller)
	ev := msg.event
	switch ev.Type {
	case midi.EventKnob:
		if ch, ok := m.mapping.Channel(ev.Number); ok {
			m.setValue(m.stage, ch, midi.ScaleCC(ev.Value))
			debug.LogEvery(m.logger, 32, "knob input", "cc", ev.Number)
		}
	case midi.EventPad:
		if idx, ok := m.mapping.Pattern(ev.Number); ok {
			m.cursor = idx
			return tea.Batch(next, m.choose(idx))
		}
	}
	return next
}

// notify shows a transient message and schedules its expiry
func (m *Model) notify(text string, kind panel.NotifyKind) tea.Cmd {
	id := m.notes.Push(text, kind)
	return m.tick(panel.NotifyVisible, func(time.Time) tea.Msg { return notifyHideMsg{id: id} })
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Muted())

	status := "lightdeck"
	if m.label != "" {
		status += dimStyle.Render("  → " + m.label)
	}
	if n := len(m.controllers); n > 0 {
		status += dimStyle.Render("  midi:" + panel.Readout(n))
	}

	var body string
	switch m.tab {
	case TabSelect:
		body = m.selectorView()
	case TabCreate:
		body = m.editorView()
	}

	var out strings.Builder
	out.WriteString(headerStyle.Render(status))
	out.WriteString("\n")
	out.WriteString(widgets.RenderTabs(m.theme, tabNames, int(m.tab)))
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")

	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(m.theme, m.helpSections()))
		out.WriteString("\n")
	} else {
		out.WriteString(m.help.ShortHelpView(m.shortHelp()))
		out.WriteString("\n")
	}

	if toasts := widgets.RenderNotifications(m.theme, m.notes.Items()); toasts != "" {
		out.WriteString("\n")
		out.WriteString(toasts)
	}

	return out.String()
}

func (m Model) shortHelp() []key.Binding {
	if m.tab == TabSelect {
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Choose, m.keys.NextTab, m.keys.Help, m.keys.Quit}
	}
	if m.editingName {
		return []key.Binding{m.keys.DoneName}
	}
	return []key.Binding{m.keys.NextChan, m.keys.Inc, m.keys.Dec, m.keys.AddStage, m.keys.EditName, m.keys.Submit, m.keys.Help}
}

func (m Model) helpSections() []widgets.KeySection {
	k := m.keys
	return []widgets.KeySection{
		{Title: "General", Bindings: []key.Binding{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Help, k.Quit}},
		{Title: "Select", Bindings: []key.Binding{k.Up, k.Down, k.Choose}},
		{Title: "Create", Bindings: []key.Binding{
			k.PrevStage, k.NextStage, k.PrevChan, k.NextChan,
			k.Inc, k.Dec, k.IncCoarse, k.DecCoarse, k.Min, k.Max,
			k.AddStage, k.EditName, k.Submit,
		}},
	}
}

// Run starts the panel on the terminal. Mouse capture keeps drags on the
// knobs from turning into terminal text selection.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
