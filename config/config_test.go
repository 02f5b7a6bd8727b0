package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"lightdeck/panel"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[backend]
url = "http://lamp.local"
timeout = "2s"

[[template.channels]]
label = "warm"
default = 20

[[template.channels]]
label = "cool"
default = 200

[ui]
initial_tab = "create"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.URL != "http://lamp.local" || cfg.Backend.Timeout.Duration != 2*time.Second {
		t.Fatalf("backend = %+v", cfg.Backend)
	}
	want := []panel.Channel{{Label: "warm", Default: 20}, {Label: "cool", Default: 200}}
	if !reflect.DeepEqual(cfg.Template.Channels, want) {
		t.Fatalf("channels = %+v, want %+v", cfg.Template.Channels, want)
	}
	if cfg.UI.InitialTab != TabCreate {
		t.Fatalf("initial tab = %q", cfg.UI.InitialTab)
	}
	// Untouched sections keep defaults.
	if cfg.MIDI.PadBaseNote != 36 {
		t.Fatalf("pad base note = %d, want 36", cfg.MIDI.PadBaseNote)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[backend\nurl ="), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed toml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.Backend.URL = "http://10.0.0.7"
	cfg.MIDI.Ports = []string{"nanoKONTROL"}
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Fatalf("loaded = %+v\nwant   %+v", loaded, cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LIGHTDECK_BACKEND_URL":     "http://env.local",
		"LIGHTDECK_BACKEND_TIMEOUT": "250ms",
		"LIGHTDECK_MIDI_ENABLED":    "true",
		"LIGHTDECK_MIDI_PORTS":      "nano, ,Arturia",
		"LIGHTDECK_LOG_FILE":        "/tmp/ld.log",
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.URL != "http://env.local" || cfg.Backend.Timeout.Duration != 250*time.Millisecond {
		t.Fatalf("backend = %+v", cfg.Backend)
	}
	if !cfg.MIDI.Enabled || !reflect.DeepEqual(cfg.MIDI.Ports, []string{"nano", "Arturia"}) {
		t.Fatalf("midi = %+v", cfg.MIDI)
	}
	if !cfg.Log.Enabled || cfg.Log.File != "/tmp/ld.log" {
		t.Fatalf("log = %+v", cfg.Log)
	}

	bad := DefaultConfig()
	err := bad.ApplyEnv(func(k string) string {
		if k == "LIGHTDECK_MIDI_ENABLED" {
			return "maybe"
		}
		return ""
	})
	if err == nil || !strings.Contains(err.Error(), "MIDI_ENABLED") {
		t.Fatalf("err = %v, want MIDI_ENABLED parse error", err)
	}
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--timeout=3s", "--debug"}); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Backend.URL = "http://from-file"
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.URL != "http://from-file" {
		t.Fatalf("unset --backend overrode file value: %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout.Duration != 3*time.Second {
		t.Fatalf("timeout = %s", cfg.Backend.Timeout)
	}
	if !cfg.Log.Enabled {
		t.Fatal("--debug did not enable logging")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Backend.URL = " " }},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = Duration{-time.Second} }},
		{"no channels", func(c *Config) { c.Template.Channels = nil }},
		{"bad tab", func(c *Config) { c.UI.InitialTab = "settings" }},
		{"cc range", func(c *Config) { c.MIDI.KnobCCs = []int{128} }},
		{"cc dup", func(c *Config) { c.MIDI.KnobCCs = []int{1, 1} }},
		{"pad note", func(c *Config) { c.MIDI.PadBaseNote = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() = nil")
			}
		})
	}
}
