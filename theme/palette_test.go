package theme

import (
	"strings"
	"testing"
)

const samplePalette = `GIMP Palette
Name: test
Columns: 2
#
  0   0   0	black
255 255 255	white
bad line
300 0 0	out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(samplePalette))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" {
		t.Fatalf("name = %q", p.Name)
	}
	if len(p.Colors) != 2 {
		t.Fatalf("colors = %v, want 2 entries", p.Colors)
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\nName: x\n")); err == nil {
		t.Fatal("empty palette parsed")
	}
}

func TestLookupEndpoints(t *testing.T) {
	p := Builtin()
	if got := p.Lookup(-1); got != p.Colors[0] {
		t.Fatalf("Lookup(-1) = %v", got)
	}
	if got := p.Lookup(0); got != p.Colors[0] {
		t.Fatalf("Lookup(0) = %v", got)
	}
	if got := p.Lookup(1); got != p.Colors[len(p.Colors)-1] {
		t.Fatalf("Lookup(1) = %v", got)
	}
}

func TestLookupBlendsBetweenNeighbours(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {255, 255, 255}}}
	mid := p.Lookup(0.5)
	for i, c := range mid {
		if c == 0 || c == 255 {
			t.Fatalf("channel %d = %d, want a blend", i, c)
		}
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{0xff, 0x10, 0x00}).Hex(); got != "#ff1000" {
		t.Fatalf("Hex() = %q", got)
	}
}

func TestLevelFollowsPalette(t *testing.T) {
	th := New(nil)
	if th.Level(0) != th.Color(0) || th.Level(255) != th.Color(1) {
		t.Fatal("Level endpoints differ from the palette endpoints")
	}
	if th.Warning() != th.Color(RoleWarning) {
		t.Fatalf("Warning = %v, want palette colour at %v", th.Warning(), RoleWarning)
	}
}
