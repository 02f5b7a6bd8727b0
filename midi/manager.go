package midi

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"lightdeck/debug"
)

// ErrPortScanTimeout is returned when the MIDI backend does not answer
var ErrPortScanTimeout = errors.New("midi port scan timed out")

const portScanTimeout = 3 * time.Second

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of control surfaces whose input
// port name matches one of the configured patterns
type DeviceManager struct {
	patterns    []string
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	logger      *slog.Logger
}

// NewDeviceManager creates a device manager. Empty patterns match every
// input port.
func NewDeviceManager(patterns []string) *DeviceManager {
	return &DeviceManager{
		patterns:    patterns,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		logger:      debug.Logger("midi"),
	}
}

// Events returns a channel of device connect/disconnect events. It is closed
// when Run returns.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns the connected controller ids, sorted
func (dm *DeviceManager) Controllers() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	ids := make([]string, 0, len(dm.controllers))
	for id := range dm.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

// inPorts lists input ports, giving up after portScanTimeout (CoreMIDI can
// hang)
func inPorts() ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()
	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(portScanTimeout):
		return nil, ErrPortScanTimeout
	}
}

// ListInPorts returns the names of all MIDI input ports
func ListInPorts() ([]string, error) {
	ports, err := inPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names, nil
}

func (dm *DeviceManager) scan(ctx context.Context) {
	ports, err := inPorts()
	if err != nil {
		dm.logger.Warn("skipping scan", "error", err)
		return
	}

	seen := make(map[string]bool)
	for _, port := range ports {
		id := port.String()
		if !MatchPort(id, dm.patterns) {
			continue
		}
		seen[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		sc, err := NewSurfaceController(id, port)
		if err != nil {
			dm.logger.Warn("open controller", "port", id, "error", err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = sc
		dm.mu.Unlock()

		dm.logger.Info("controller connected", "port", id)
		if !dm.emit(ctx, DeviceEvent{Type: DeviceConnected, Controller: sc, ID: id}) {
			return
		}
	}

	dm.mu.Lock()
	var gone []string
	for id, c := range dm.controllers {
		if !seen[id] {
			c.Close()
			delete(dm.controllers, id)
			gone = append(gone, id)
		}
	}
	dm.mu.Unlock()

	for _, id := range gone {
		dm.logger.Info("controller disconnected", "port", id)
		if !dm.emit(ctx, DeviceEvent{Type: DeviceDisconnected, ID: id}) {
			return
		}
	}
}

func (dm *DeviceManager) emit(ctx context.Context, ev DeviceEvent) bool {
	select {
	case dm.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// MatchPort reports whether a port name contains any pattern,
// case-insensitively. No patterns matches everything.
func MatchPort(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}
