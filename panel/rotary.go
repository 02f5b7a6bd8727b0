package panel

import "strconv"

// Channel values are 8-bit brightness levels
const (
	MinValue = 0
	MaxValue = 255
)

// Clamp limits v to [MinValue, MaxValue]
func Clamp(v int) int {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// Angle maps a channel value to a knob rotation in degrees (0-360)
func Angle(v int) float64 {
	return float64(v) / MaxValue * 360
}

// Readout is the numeric text shown under a knob
func Readout(v int) string {
	return strconv.Itoa(v)
}
