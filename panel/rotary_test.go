package panel

import (
	"strconv"
	"testing"
)

func TestAngleMapsFullRange(t *testing.T) {
	for v := MinValue; v <= MaxValue; v++ {
		want := float64(v) / 255 * 360
		if got := Angle(v); got != want {
			t.Fatalf("Angle(%d) = %v, want %v", v, got, want)
		}
		if got := Readout(v); got != strconv.Itoa(v) {
			t.Fatalf("Readout(%d) = %q, want %q", v, got, strconv.Itoa(v))
		}
	}
	if Angle(0) != 0 || Angle(255) != 360 {
		t.Fatalf("endpoints = %v, %v, want 0, 360", Angle(0), Angle(255))
	}
}

func TestAngleIsPure(t *testing.T) {
	first := make([]float64, MaxValue+1)
	for v := range first {
		first[v] = Angle(v)
	}
	for v := MaxValue; v >= MinValue; v-- {
		if got := Angle(v); got != first[v] {
			t.Fatalf("Angle(%d) changed between calls: %v then %v", v, first[v], got)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{256, 255},
		{1000, 255},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
