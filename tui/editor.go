package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lightdeck/panel"
	"lightdeck/widgets"
)

// stageHeight is the rendered height of one stage: label, knob block, gap
const stageHeight = 1 + 5 + 1

// editorChrome is the lines the Create tab needs besides the stages
const editorChrome = headerLines + 8

func (m *Model) editorKey(msg tea.KeyMsg) tea.Cmd {
	// Submitting freezes the draft so the reset on success cannot discard
	// edits made after the payload was taken
	if m.saving.State() == panel.InFlight {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.EditName):
		m.editingName = true
		return m.nameInput.Focus()
	case key.Matches(msg, m.keys.AddStage):
		m.stage = m.draft.AddStage()
		m.logger.Debug("stage added", "stages", m.draft.Len())
	case key.Matches(msg, m.keys.PrevStage):
		if m.stage > 0 {
			m.stage--
		}
	case key.Matches(msg, m.keys.NextStage):
		if m.stage < m.draft.Len()-1 {
			m.stage++
		}
	case key.Matches(msg, m.keys.PrevChan):
		if m.channel > 0 {
			m.channel--
		}
	case key.Matches(msg, m.keys.NextChan):
		if m.channel < m.draft.Template().Width()-1 {
			m.channel++
		}
	case key.Matches(msg, m.keys.Inc):
		m.adjust(1)
	case key.Matches(msg, m.keys.Dec):
		m.adjust(-1)
	case key.Matches(msg, m.keys.IncCoarse):
		m.adjust(coarseStep)
	case key.Matches(msg, m.keys.DecCoarse):
		m.adjust(-coarseStep)
	case key.Matches(msg, m.keys.Min):
		m.setValue(m.stage, m.channel, panel.MinValue)
	case key.Matches(msg, m.keys.Max):
		m.setValue(m.stage, m.channel, panel.MaxValue)
	}
	return nil
}

func (m *Model) editorMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.adjust(1)
	case tea.MouseButtonWheelDown:
		m.adjust(-1)
	}
}

func (m *Model) adjust(delta int) {
	m.setValue(m.stage, m.channel, m.draft.Value(m.stage, m.channel)+delta)
}

// setValue is the single write path for knob values
func (m *Model) setValue(stage, ch, v int) {
	if m.saving.State() == panel.InFlight {
		return
	}
	if _, err := m.draft.SetValue(stage, ch, v); err != nil {
		m.logger.Debug("ignored knob write", "error", err)
	}
}

func (m *Model) submit() tea.Cmd {
	if !m.saving.Begin() {
		return nil
	}
	m.draft.Name = m.nameInput.Value()
	sub := m.draft.Submission()
	m.logger.Info("saving pattern", "name", sub.Name, "stages", len(sub.Stages))
	return m.saveCmd(sub)
}

func (m *Model) saveDone(msg saveDoneMsg) tea.Cmd {
	m.saving.End()
	if msg.err != nil {
		m.logger.Warn("save failed", "error", msg.err)
		return m.notify(panel.MsgSaveFail, panel.NotifyError)
	}

	m.nameInput.Reset()
	m.draft.Reset()
	m.stage, m.channel = 0, 0
	return m.notify(panel.MsgSaveOK, panel.NotifySuccess)
}

// stageWindow returns the visible stage range, keeping the focused stage on
// screen
func (m Model) stageWindow() (start, end int) {
	n := m.draft.Len()
	rows := n
	if m.height > 0 {
		rows = min(n, max(1, (m.height-editorChrome)/stageHeight))
	}
	start = 0
	if m.stage >= rows {
		start = m.stage - rows + 1
	}
	return start, start + rows
}

func (m Model) editorView() string {
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted())
	stageStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.FG())
	focusStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Muted())

	var out strings.Builder

	input := m.nameInput
	input.Width = max(16, m.width-10)
	nameLine := labelStyle.Render("Name  ") + input.View()
	if m.editingName {
		nameLine = focusStyle.Render("Name  ") + input.View()
	}
	out.WriteString(nameLine)
	out.WriteString("\n\n")

	tmpl := m.draft.Template()
	stages := m.draft.Stages()
	start, end := m.stageWindow()
	if start > 0 {
		out.WriteString(dimStyle.Render("  ↑ more stages"))
		out.WriteString("\n")
	}
	for i := start; i < end; i++ {
		s := stages[i]
		title := stageStyle.Render(s.Label)
		if i == m.stage && !m.editingName {
			title = focusStyle.Render("› " + s.Label)
		}
		out.WriteString(title)
		out.WriteString("\n")

		knobs := make([]widgets.Knob, len(s.Values))
		for j, v := range s.Values {
			knobs[j] = widgets.Knob{
				Label:   tmpl.Channels[j].Label,
				Value:   v,
				Focused: i == m.stage && j == m.channel && !m.editingName,
			}
		}
		out.WriteString(widgets.RenderKnobRow(m.theme, knobs))
		out.WriteString("\n\n")
	}
	if end < len(stages) {
		out.WriteString(dimStyle.Render("  ↓ more stages"))
		out.WriteString("\n")
	}

	status := dimStyle.Render("stages: " + panel.Readout(len(stages)))
	if m.saving.State() == panel.InFlight {
		status = lipgloss.NewStyle().Foreground(m.theme.Warning()).Render("saving…")
	}
	out.WriteString(status)
	return out.String()
}
