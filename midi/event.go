package midi

// EventType distinguishes knob turns from pad hits
type EventType int

const (
	EventKnob EventType = iota // control change
	EventPad                   // note on with velocity > 0
)

// Event is a control-surface input. Number is the CC or note number, Value
// the CC value or velocity (0-127).
type Event struct {
	Type    EventType
	Channel uint8
	Number  uint8
	Value   uint8
}

// ScaleCC maps a 7-bit CC value onto the 8-bit channel range, rounding so
// 0 and 127 reach 0 and 255
func ScaleCC(v uint8) int {
	if v > 127 {
		v = 127
	}
	return (int(v)*255 + 63) / 127
}
