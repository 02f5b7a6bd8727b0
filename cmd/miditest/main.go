package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"lightdeck/config"
	"lightdeck/midi"
	"lightdeck/panel"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "list":
		listPorts()
	case "watch":
		watch(ctx, os.Args[2:])
	case "poll":
		pollPorts(ctx)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI surface test scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List MIDI input ports")
	fmt.Println("  watch [match...]  - Print knob and pad input as the panel maps it")
	fmt.Println("  poll              - Poll for port changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.ListInPorts()
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, n := range names {
		fmt.Printf("  %d: %s\n", i, n)
	}
}

// watch opens every matching surface and prints what each input would do
func watch(ctx context.Context, patterns []string) {
	defaults := config.DefaultConfig().MIDI
	mapping := midi.Mapping{
		KnobCCs:     defaults.KnobCCs,
		PadBaseNote: defaults.PadBaseNote,
		NumPatterns: panel.NumPatterns,
	}
	fmt.Printf("Knob CCs %v, pads from note %d. Ctrl+C to exit.\n", mapping.KnobCCs, mapping.PadBaseNote)

	dm := midi.NewDeviceManager(patterns)
	go dm.Run(ctx)

	for ev := range dm.Events() {
		switch ev.Type {
		case midi.DeviceConnected:
			fmt.Printf("[%s] connected: %s (open: %s)\n", time.Now().Format("15:04:05"), ev.ID, strings.Join(dm.Controllers(), ", "))
			go printEvents(ev.Controller, mapping)
		case midi.DeviceDisconnected:
			fmt.Printf("[%s] disconnected: %s (open: %s)\n", time.Now().Format("15:04:05"), ev.ID, strings.Join(dm.Controllers(), ", "))
		}
	}
}

func printEvents(c midi.Controller, mapping midi.Mapping) {
	for ev := range c.Events() {
		switch ev.Type {
		case midi.EventKnob:
			if ch, ok := mapping.Channel(ev.Number); ok {
				fmt.Printf("  %s: cc %d = %d -> channel %d value %d\n", c.ID(), ev.Number, ev.Value, ch+1, midi.ScaleCC(ev.Value))
			} else {
				fmt.Printf("  %s: cc %d = %d (unmapped)\n", c.ID(), ev.Number, ev.Value)
			}
		case midi.EventPad:
			if idx, ok := mapping.Pattern(ev.Number); ok {
				fmt.Printf("  %s: note %d -> pattern %d %s\n", c.ID(), ev.Number, idx, panel.PatternName(idx))
			} else {
				fmt.Printf("  %s: note %d (unmapped)\n", c.ID(), ev.Number)
			}
		}
	}
}

func pollPorts(ctx context.Context) {
	fmt.Println("Polling for port changes every 2 seconds...")
	fmt.Println("Connect/disconnect a surface to test. Ctrl+C to exit.")

	last := ""
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		names, err := midi.ListInPorts()
		if err != nil {
			fmt.Printf("[%s] %v\n", time.Now().Format("15:04:05"), err)
		} else if current := strings.Join(names, ","); current != last {
			fmt.Printf("\n[%s] Port change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", names)
			last = current
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
