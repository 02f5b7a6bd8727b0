package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lightdeck/backend"
	"lightdeck/config"
	"lightdeck/discovery"
	"lightdeck/midi"
	"lightdeck/panel"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the predefined patterns and their indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, name := range panel.Patterns {
				fmt.Fprintf(out, "%2d  %s\n", i, name)
			}
			return nil
		},
	}
}

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <index>",
		Short: "Play a predefined pattern on the device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePatternIndex(args[0])
			if err != nil {
				return err
			}
			client, err := a.client(backend.WithTimeout(a.cfg.Backend.Timeout.Duration))
			if err != nil {
				return err
			}
			if err := client.Select(cmd.Context(), index); err != nil {
				return fmt.Errorf("%s: %w", panel.MsgSelectFail, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", panel.MsgSelectOK, panel.PatternName(index))
			return nil
		},
	}
}

// parsePatternIndex accepts a zero-based index into the predefined list
func parsePatternIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("pattern index %q: not a number", s)
	}
	if !panel.ValidPattern(i) {
		return 0, fmt.Errorf("pattern index %d outside [0, %d]", i, panel.NumPatterns-1)
	}
	return i, nil
}

func newSaveCmd(a *app) *cobra.Command {
	var (
		name   string
		stages []string
	)
	cmd := &cobra.Command{
		Use:   "save --name NAME --stage v,v,v,v [--stage ...]",
		Short: "Save a custom pattern to the device",
		Long: `Save a custom pattern to the device.

Each --stage is one stage, given as comma-separated channel values in
[0, 255], one per template channel. Stages are sent in the order given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := buildSubmission(name, stages, a.cfg.Template)
			if err != nil {
				return err
			}
			client, err := a.client(backend.WithTimeout(a.cfg.Backend.Timeout.Duration))
			if err != nil {
				return err
			}
			if err := client.Save(cmd.Context(), sub); err != nil {
				return fmt.Errorf("%s: %w", panel.MsgSaveFail, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %q, %d stages\n", panel.MsgSaveOK, sub.Name, len(sub.Stages))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "pattern name")
	cmd.Flags().StringArrayVar(&stages, "stage", nil, "stage values, comma separated (repeatable)")
	_ = cmd.MarkFlagRequired("stage")
	return cmd
}

func buildSubmission(name string, stages []string, tmpl panel.Template) (panel.Submission, error) {
	sub := panel.Submission{Name: name, Stages: make([][]int, 0, len(stages))}
	for i, s := range stages {
		values, err := parseStage(s)
		if err != nil {
			return panel.Submission{}, fmt.Errorf("stage %d: %w", i+1, err)
		}
		sub.Stages = append(sub.Stages, values)
	}
	if err := sub.Validate(tmpl.Width()); err != nil {
		return panel.Submission{}, err
	}
	return sub, nil
}

func parseStage(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("channel %d: %q is not a number", i+1, p)
		}
		values[i] = v
	}
	return values, nil
}

func newDiscoverCmd() *cobra.Command {
	var (
		wait    time.Duration
		service string
		filter  string
	)
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find lighting devices on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := discovery.Browse(cmd.Context(), discovery.Options{
				Service: service,
				Timeout: wait,
				Filter:  filter,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(devices) == 0 {
				fmt.Fprintln(out, "no devices found")
				return nil
			}
			for _, d := range devices {
				fmt.Fprintf(out, "%-32s %s\n", d.Name, d.URL())
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 2*time.Second, "how long to listen for answers")
	cmd.Flags().StringVar(&service, "service", discovery.DefaultService, "mDNS service type")
	cmd.Flags().StringVar(&filter, "filter", "", "only show instances whose name contains this")
	return cmd
}

func newMIDICmd(a *app) *cobra.Command {
	midiCmd := &cobra.Command{
		Use:   "midi",
		Short: "Inspect MIDI control surfaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	midiCmd.AddCommand(&cobra.Command{
		Use:   "ports",
		Short: "List MIDI input ports; * marks ports the panel would open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := midi.ListInPorts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, n := range names {
				mark := " "
				if midi.MatchPort(n, a.cfg.MIDI.Ports) {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %2d: %s\n", mark, i, n)
			}
			return nil
		},
	})
	return midiCmd
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the lightdeck config file",
		// Only the path is needed, so a broken file can still be replaced
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolvePath(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.DefaultConfig().Save(a.cfgPath); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.cfgPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(initCmd, &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.cfgPath)
			return nil
		},
	})
	return configCmd
}
