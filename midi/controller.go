package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Controller is an input-only MIDI control surface
type Controller interface {
	ID() string
	Events() <-chan Event
	Close() error
}

// SurfaceController turns CC and note-on messages from one input port into
// Events
type SurfaceController struct {
	id       string
	inPort   drivers.In
	stopFunc func()
	events   chan Event
}

// NewSurfaceController opens inPort and starts listening
func NewSurfaceController(id string, inPort drivers.In) (*SurfaceController, error) {
	sc := &SurfaceController{
		id:     id,
		inPort: inPort,
		events: make(chan Event, 64),
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		if ev, ok := decode(msg); ok {
			// Drop rather than block the driver callback when the UI lags
			select {
			case sc.events <- ev:
			default:
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", id, err)
	}
	sc.stopFunc = stop
	return sc, nil
}

func decode(msg gomidi.Message) (Event, bool) {
	var channel, a, b uint8
	switch {
	case msg.GetControlChange(&channel, &a, &b):
		return Event{Type: EventKnob, Channel: channel, Number: a, Value: b}, true
	case msg.GetNoteOn(&channel, &a, &b) && b > 0:
		return Event{Type: EventPad, Channel: channel, Number: a, Value: b}, true
	}
	return Event{}, false
}

func (sc *SurfaceController) ID() string {
	return sc.id
}

func (sc *SurfaceController) Events() <-chan Event {
	return sc.events
}

func (sc *SurfaceController) Close() error {
	if sc.stopFunc != nil {
		sc.stopFunc()
	}
	close(sc.events)
	return nil
}
