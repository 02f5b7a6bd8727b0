package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lightdeck/panel"
)

// headerLines is the height of the title, tab bar and gap above each tab body
const headerLines = 3

// selectorChrome is the lines the Select tab needs besides the list rows
const selectorChrome = headerLines + 6

func (m *Model) selectorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < panel.NumPatterns-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Choose):
		return m.choose(m.cursor)
	}
	return nil
}

func (m *Model) selectorMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case tea.MouseButtonWheelDown:
		if m.cursor < panel.NumPatterns-1 {
			m.cursor++
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	start, end := m.listWindow()
	idx := start + msg.Y - headerLines
	if msg.Y < headerLines || idx >= end {
		return nil
	}
	m.cursor = idx
	return m.choose(idx)
}

// choose marks a pattern as picked and sends it, or queues it behind the
// request already in flight
func (m *Model) choose(index int) tea.Cmd {
	if !panel.ValidPattern(index) {
		return nil
	}
	m.chosen = index
	if !m.selects.Choose(index) {
		m.logger.Debug("selection queued", "pattern", index)
		return nil
	}
	m.logger.Debug("selection sent", "pattern", index)
	return m.selectCmd(index)
}

func (m *Model) selectDone(msg selectDoneMsg) tea.Cmd {
	var note tea.Cmd
	if msg.err != nil {
		m.logger.Warn("select failed", "pattern", msg.index, "error", msg.err)
		note = m.notify(panel.MsgSelectFail, panel.NotifyError)
	} else {
		note = m.notify(panel.MsgSelectOK, panel.NotifySuccess)
	}

	if next, ok := m.selects.Done(); ok {
		m.logger.Debug("selection sent", "pattern", next, "queued", true)
		return tea.Batch(note, m.selectCmd(next))
	}
	return note
}

// listWindow returns the visible row range, keeping the cursor on screen
func (m Model) listWindow() (start, end int) {
	rows := panel.NumPatterns
	if m.height > 0 {
		rows = min(rows, max(3, m.height-selectorChrome))
	}
	start = 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, start + rows
}

func (m Model) selectorView() string {
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent())
	chosenStyle := lipgloss.NewStyle().Foreground(m.theme.Active())
	rowStyle := lipgloss.NewStyle().Foreground(m.theme.FG())
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Muted())

	pending, hasPending := m.selects.Pending()

	start, end := m.listWindow()
	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		radio := m.theme.Symbols.RadioOff
		if i == m.chosen {
			radio = m.theme.Symbols.RadioOn
		}
		marker := " "
		if i == m.cursor {
			marker = "›"
		}
		row := fmt.Sprintf("%s %c %02d  %s", marker, radio, i, panel.Patterns[i])
		if hasPending && i == pending {
			row += " " + string(m.theme.Symbols.Pending)
		}

		switch {
		case i == m.cursor:
			lines = append(lines, cursorStyle.Render(row))
		case i == m.chosen:
			lines = append(lines, chosenStyle.Render(row))
		default:
			lines = append(lines, rowStyle.Render(row))
		}
	}

	status := dimStyle.Render("choose a pattern to play it on the device")
	if m.selects.State() == panel.InFlight {
		status = lipgloss.NewStyle().Foreground(m.theme.Warning()).Render("sending…")
	}
	lines = append(lines, "", status)
	return strings.Join(lines, "\n")
}
