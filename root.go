package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lightdeck/backend"
	"lightdeck/config"
	"lightdeck/debug"
	"lightdeck/discovery"
	"lightdeck/midi"
	"lightdeck/panel"
	"lightdeck/theme"
	"lightdeck/tui"
)

// app is the state shared by every command once flags are parsed
type app struct {
	cfg     *config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var discover bool

	root := &cobra.Command{
		Use:   "lightdeck",
		Short: "Terminal control panel for a lighting-pattern device",
		Long: `lightdeck drives a lighting device over HTTP.

Run without arguments in a terminal to open the panel: pick one of the
predefined patterns on the Select tab, or build a custom pattern stage by
stage on the Create tab and save it to the device.

The one-shot commands below do the same from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				return cmd.Help()
			}
			return a.runPanel(cmd.Context(), discover)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	config.RegisterFlags(root.PersistentFlags())
	root.Flags().BoolVar(&discover, "discover", false, "find the device over mDNS instead of using backend.url")

	root.AddCommand(
		newPatternsCmd(),
		newSelectCmd(a),
		newSaveCmd(a),
		newDiscoverCmd(),
		newMIDICmd(a),
		newConfigCmd(a),
	)
	return root
}

// load resolves configuration: flags over LIGHTDECK_* over file over defaults
func (a *app) load(cmd *cobra.Command) error {
	if err := a.resolvePath(cmd); err != nil {
		return err
	}
	path := a.cfgPath

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	a.cfg = cfg

	if cfg.Log.Enabled {
		logPath, err := debug.Enable(cfg.Log)
		if err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "[debug] logging to %s\n", logPath)
		debug.Logger("cli").Info("lightdeck starting",
			"command", cmd.Name(),
			"backend", cfg.Backend.URL,
			"config", path,
			"pid", os.Getpid())
	}
	return nil
}

func (a *app) resolvePath(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString(config.FlagConfig)
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	a.cfgPath = path
	return nil
}

// client builds a backend client; the timeout is applied per request
func (a *app) client(opts ...backend.Option) (*backend.Client, error) {
	c, err := backend.NewClient(a.cfg.Backend.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("backend.url: %w", err)
	}
	return c, nil
}

func (a *app) runPanel(ctx context.Context, discover bool) error {
	cfg := a.cfg
	logger := debug.Logger("cli")

	if discover {
		dev, err := discovery.First(ctx, discovery.Options{})
		if err != nil {
			return err
		}
		logger.Info("using discovered device", "name", dev.Name, "url", dev.URL())
		cfg.Backend.URL = dev.URL()
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	var palette *theme.Palette
	if cfg.UI.Palette != "" {
		palette, err = theme.LoadGPL(cfg.UI.Palette)
		if err != nil {
			return fmt.Errorf("ui.palette: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := tui.Options{
		Backend:      client,
		BackendLabel: client.BaseURL(),
		Theme:        theme.New(palette),
		Template:     cfg.Template,
		Timeout:      cfg.Backend.Timeout.Duration,
	}
	if cfg.UI.InitialTab == config.TabCreate {
		opts.InitialTab = tui.TabCreate
	}
	if cfg.MIDI.Enabled {
		dm := midi.NewDeviceManager(cfg.MIDI.Ports)
		go dm.Run(ctx)
		opts.DeviceMgr = dm
		opts.Mapping = midi.Mapping{
			KnobCCs:     cfg.MIDI.KnobCCs,
			PadBaseNote: cfg.MIDI.PadBaseNote,
			NumPatterns: panel.NumPatterns,
		}
	}

	return tui.Run(ctx, opts)
}
