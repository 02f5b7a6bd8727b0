package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"lightdeck/debug"
	"lightdeck/panel"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "LIGHTDECK_"

// Tab names accepted by ui.initial_tab
const (
	TabSelect = "select"
	TabCreate = "create"
)

// DefaultBackendURL is the address the device serves on in soft-AP mode
const DefaultBackendURL = "http://192.168.4.1"

// Duration is a time.Duration written as "10s" in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// BackendConfig locates the device
type BackendConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	InitialTab string `toml:"initial_tab"`
	Palette    string `toml:"palette,omitempty"` // GIMP .gpl file; built-in when empty
}

// MIDIConfig maps a control surface onto the panel
type MIDIConfig struct {
	Enabled     bool     `toml:"enabled"`
	Ports       []string `toml:"ports,omitempty"` // substrings of input port names; empty matches any
	KnobCCs     []int    `toml:"knob_ccs"`        // CC number per template channel
	PadBaseNote int      `toml:"pad_base_note"`   // note for pattern 0
}

// Config is the main configuration structure
type Config struct {
	Backend  BackendConfig  `toml:"backend"`
	Template panel.Template `toml:"template"`
	UI       UIConfig       `toml:"ui"`
	MIDI     MIDIConfig     `toml:"midi"`
	Log      debug.Config   `toml:"log"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: Duration{10 * time.Second},
		},
		Template: panel.DefaultTemplate(),
		UI: UIConfig{
			InitialTab: TabSelect,
		},
		MIDI: MIDIConfig{
			KnobCCs:     []int{70, 71, 72, 73},
			PadBaseNote: 36,
		},
		Log: debug.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lightdeck"), nil
}

// ConfigPath returns the full path to config.toml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path over the defaults. An empty path means
// ConfigPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	// Lists in the file replace the defaults rather than extend them.
	cfg.Template.Channels = nil
	cfg.MIDI.KnobCCs = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defaults := DefaultConfig()
	if cfg.Template.Channels == nil {
		cfg.Template.Channels = defaults.Template.Channels
	}
	if cfg.MIDI.KnobCCs == nil {
		cfg.MIDI.KnobCCs = defaults.MIDI.KnobCCs
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from LIGHTDECK_* variables. Unparseable values
// are reported rather than ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := getenv(EnvPrefix + "BACKEND_TIMEOUT"); v != "" {
		if err := c.Backend.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sBACKEND_TIMEOUT: %w", EnvPrefix, err)
		}
	}
	if v := getenv(EnvPrefix + "INITIAL_TAB"); v != "" {
		c.UI.InitialTab = v
	}
	if v := getenv(EnvPrefix + "PALETTE"); v != "" {
		c.UI.Palette = v
	}
	if v := getenv(EnvPrefix + "MIDI_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMIDI_ENABLED: %w", EnvPrefix, err)
		}
		c.MIDI.Enabled = b
	}
	if v := getenv(EnvPrefix + "MIDI_PORTS"); v != "" {
		c.MIDI.Ports = splitList(v)
	}
	if v := getenv(EnvPrefix + "DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", EnvPrefix, err)
		}
		c.Log.Enabled = b
	}
	if v := getenv(EnvPrefix + "LOG_FILE"); v != "" {
		c.Log.File = v
		c.Log.Enabled = true
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Flag names shared by every command
const (
	FlagConfig  = "config"
	FlagBackend = "backend"
	FlagTimeout = "timeout"
	FlagMIDI    = "midi"
	FlagDebug   = "debug"
	FlagLogFile = "log-file"
)

// RegisterFlags adds the config override flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "config file (default ~/.config/lightdeck/config.toml)")
	fs.String(FlagBackend, DefaultBackendURL, "device base URL")
	fs.Duration(FlagTimeout, 10*time.Second, "per-request timeout (0 disables)")
	fs.Bool(FlagMIDI, false, "enable MIDI control surfaces")
	fs.Bool(FlagDebug, false, "write a debug log")
	fs.String(FlagLogFile, "", "debug log path (implies --debug)")
}

// ApplyFlags copies flags explicitly set on the command line. Defaults of
// unset flags never override file or environment values.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagBackend:
			c.Backend.URL = f.Value.String()
		case FlagTimeout:
			var d time.Duration
			d, err = fs.GetDuration(FlagTimeout)
			c.Backend.Timeout = Duration{d}
		case FlagMIDI:
			c.MIDI.Enabled, err = fs.GetBool(FlagMIDI)
		case FlagDebug:
			c.Log.Enabled, err = fs.GetBool(FlagDebug)
		case FlagLogFile:
			c.Log.File = f.Value.String()
			c.Log.Enabled = true
		}
	})
	return err
}

// Validate checks ranges and cross-field constraints
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return errors.New("backend.url is empty")
	}
	if c.Backend.Timeout.Duration < 0 {
		return fmt.Errorf("backend.timeout %s is negative", c.Backend.Timeout)
	}
	if err := c.Template.Validate(); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	switch c.UI.InitialTab {
	case TabSelect, TabCreate:
	default:
		return fmt.Errorf("ui.initial_tab %q: want %q or %q", c.UI.InitialTab, TabSelect, TabCreate)
	}
	if err := c.MIDI.validate(); err != nil {
		return fmt.Errorf("midi: %w", err)
	}
	return nil
}

func (m MIDIConfig) validate() error {
	seen := make(map[int]bool, len(m.KnobCCs))
	for _, cc := range m.KnobCCs {
		if cc < 0 || cc > 127 {
			return fmt.Errorf("knob cc %d outside [0, 127]", cc)
		}
		if seen[cc] {
			return fmt.Errorf("knob cc %d mapped twice", cc)
		}
		seen[cc] = true
	}
	if m.PadBaseNote < 0 || m.PadBaseNote > 127 {
		return fmt.Errorf("pad_base_note %d outside [0, 127]", m.PadBaseNote)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
