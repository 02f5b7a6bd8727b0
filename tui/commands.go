package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"lightdeck/midi"
	"lightdeck/panel"
)

type selectDoneMsg struct {
	index int
	err   error
}

type saveDoneMsg struct {
	err error
}

type notifyHideMsg struct{ id int }

type notifyRemoveMsg struct{ id int }

// DeviceEventMsg carries a control-surface hot-plug event
type DeviceEventMsg midi.DeviceEvent

type deviceStreamClosedMsg struct{}

type controlMsg struct {
	controller midi.Controller
	event      midi.Event
}

type controllerClosedMsg struct{ id string }

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return deviceStreamClosedMsg{}
		}
		return DeviceEventMsg(event)
	}
}

func listenForControl(c midi.Controller) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-c.Events()
		if !ok {
			return controllerClosedMsg{id: c.ID()}
		}
		return controlMsg{controller: c, event: ev}
	}
}

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if m.timeout > 0 {
		return context.WithTimeout(ctx, m.timeout)
	}
	return context.WithCancel(ctx)
}

func (m Model) selectCmd(index int) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return selectDoneMsg{index: index, err: backend.Select(ctx, index)}
	}
}

func (m Model) saveCmd(sub panel.Submission) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return saveDoneMsg{err: backend.Save(ctx, sub)}
	}
}
