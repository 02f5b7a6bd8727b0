package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestScaleCC(t *testing.T) {
	tests := []struct {
		in   uint8
		want int
	}{
		{0, 0},
		{1, 2},
		{64, 129},
		{126, 253},
		{127, 255},
		{200, 255},
	}
	for _, tt := range tests {
		if got := ScaleCC(tt.in); got != tt.want {
			t.Errorf("ScaleCC(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScaleCCIsMonotonic(t *testing.T) {
	prev := -1
	for v := 0; v <= 127; v++ {
		got := ScaleCC(uint8(v))
		if got <= prev {
			t.Fatalf("ScaleCC(%d) = %d not above %d", v, got, prev)
		}
		prev = got
	}
}

func TestMappingChannel(t *testing.T) {
	m := Mapping{KnobCCs: []int{70, 71, 72, 73}}
	if ch, ok := m.Channel(72); !ok || ch != 2 {
		t.Fatalf("Channel(72) = %d, %v", ch, ok)
	}
	if _, ok := m.Channel(10); ok {
		t.Fatal("unmapped cc matched")
	}
}

func TestMappingPattern(t *testing.T) {
	m := Mapping{PadBaseNote: 36, NumPatterns: 20}
	tests := []struct {
		note uint8
		want int
		ok   bool
	}{
		{35, 0, false},
		{36, 0, true},
		{55, 19, true},
		{56, 0, false},
	}
	for _, tt := range tests {
		got, ok := m.Pattern(tt.note)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Pattern(%d) = %d, %v, want %d, %v", tt.note, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchPort(t *testing.T) {
	if !MatchPort("anything", nil) {
		t.Fatal("empty patterns should match")
	}
	if !MatchPort("nanoKONTROL2 SLIDER/KNOB", []string{"nanokontrol"}) {
		t.Fatal("case-insensitive match failed")
	}
	if MatchPort("Launchpad X LPX MIDI", []string{"nano", " "}) {
		t.Fatal("unrelated port matched")
	}
}

func TestDecode(t *testing.T) {
	ev, ok := decode(gomidi.ControlChange(2, 71, 100))
	if !ok || ev.Type != EventKnob || ev.Number != 71 || ev.Value != 100 || ev.Channel != 2 {
		t.Fatalf("cc decode = %+v, %v", ev, ok)
	}
	ev, ok = decode(gomidi.NoteOn(0, 40, 90))
	if !ok || ev.Type != EventPad || ev.Number != 40 {
		t.Fatalf("note decode = %+v, %v", ev, ok)
	}
	if _, ok := decode(gomidi.NoteOn(0, 40, 0)); ok {
		t.Fatal("note-on velocity 0 decoded as pad hit")
	}
	if _, ok := decode(gomidi.NoteOff(0, 40)); ok {
		t.Fatal("note off decoded")
	}
}

type stubController struct {
	id     string
	closed bool
}

func (s *stubController) ID() string           { return s.id }
func (s *stubController) Events() <-chan Event { return nil }
func (s *stubController) Close() error         { s.closed = true; return nil }

func TestControllersSnapshotAndCloseAll(t *testing.T) {
	dm := NewDeviceManager(nil)
	if got := dm.Controllers(); len(got) != 0 {
		t.Fatalf("new manager controllers = %v", got)
	}

	b, a := &stubController{id: "nanoKONTROL2"}, &stubController{id: "LPD8"}
	dm.controllers[b.id] = b
	dm.controllers[a.id] = a

	got := dm.Controllers()
	if len(got) != 2 || got[0] != "LPD8" || got[1] != "nanoKONTROL2" {
		t.Fatalf("Controllers() = %v, want sorted ids", got)
	}

	dm.closeAll()
	if !a.closed || !b.closed {
		t.Fatal("closeAll left a controller open")
	}
	if got := dm.Controllers(); len(got) != 0 {
		t.Fatalf("after closeAll controllers = %v", got)
	}
}
