// Package discovery finds lighting devices on the local network over mDNS.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"

	"lightdeck/debug"
)

// DefaultService is the service type the device firmware advertises
const DefaultService = "_http._tcp"

// Device is one discovered backend
type Device struct {
	Name string
	Host string
	Addr net.IP
	Port int
	Info []string
}

// URL returns the device's base URL
func (d Device) URL() string {
	host := d.Host
	if d.Addr != nil {
		host = d.Addr.String()
	}
	host = strings.TrimSuffix(host, ".")
	if d.Port == 0 || d.Port == 80 {
		return "http://" + host
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(d.Port))
}

// Options narrows a browse
type Options struct {
	Service string        // defaults to DefaultService
	Timeout time.Duration // defaults to 2s
	Filter  string        // substring of the instance name; empty accepts all
}

// Browse queries the LAN and returns devices sorted by name
func Browse(ctx context.Context, opts Options) ([]Device, error) {
	logger := debug.Logger("discovery")
	if opts.Service == "" {
		opts.Service = DefaultService
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < opts.Timeout {
			opts.Timeout = left
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The query owns entries and closes it when it returns, so an abandoned
	// query never sends on a closed channel.
	entries := make(chan *mdns.ServiceEntry, 16)
	queryErr := make(chan error, 1)
	params := mdns.DefaultParams(opts.Service)
	params.Entries = entries
	params.Timeout = opts.Timeout
	params.DisableIPv6 = true
	params.Logger = slog.NewLogLogger(logger.Handler(), slog.LevelDebug)
	go func() {
		err := mdns.QueryContext(ctx, params)
		close(entries)
		queryErr <- err
	}()

	var devices []Device
	for {
		select {
		case e, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			if d := fromEntry(e); Accept(d, opts.Filter) {
				devices = append(devices, d)
			}
		case err := <-queryErr:
			// entries is closed by now; drain what is left
			if entries != nil {
				for e := range entries {
					if d := fromEntry(e); Accept(d, opts.Filter) {
						devices = append(devices, d)
					}
				}
			}
			if err != nil {
				return nil, fmt.Errorf("mdns query %s: %w", opts.Service, err)
			}
			return finish(logger, opts.Service, devices), nil
		case <-ctx.Done():
			// A deadline ends the listen window like the timeout does
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return finish(logger, opts.Service, devices), nil
			}
			logger.Debug("browse cancelled", "service", opts.Service)
			return nil, ctx.Err()
		}
	}
}

func finish(logger *slog.Logger, service string, devices []Device) []Device {
	devices = dedupe(devices)
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })
	logger.Info("browse finished", "service", service, "found", len(devices))
	return devices
}

// First returns the first device found, or an error if none answered
func First(ctx context.Context, opts Options) (Device, error) {
	devices, err := Browse(ctx, opts)
	if err != nil {
		return Device{}, err
	}
	if len(devices) == 0 {
		return Device{}, fmt.Errorf("no %s devices found", opts.serviceName())
	}
	return devices[0], nil
}

func (o Options) serviceName() string {
	if o.Service == "" {
		return DefaultService
	}
	return o.Service
}

func fromEntry(e *mdns.ServiceEntry) Device {
	return Device{
		Name: e.Name,
		Host: e.Host,
		Addr: e.AddrV4,
		Port: e.Port,
		Info: e.InfoFields,
	}
}

// Accept reports whether d passes the name filter
func Accept(d Device, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	return filter == "" || strings.Contains(strings.ToLower(d.Name), filter)
}

// dedupe drops repeat answers for the same instance
func dedupe(devices []Device) []Device {
	seen := make(map[string]bool, len(devices))
	out := devices[:0]
	for _, d := range devices {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}
