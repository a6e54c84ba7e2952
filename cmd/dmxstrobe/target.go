package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/config"
	"github.com/muurk/dmxstrobe/internal/discovery"
	"github.com/muurk/dmxstrobe/internal/dmx"
	"github.com/muurk/dmxstrobe/internal/fixture"
	"github.com/muurk/dmxstrobe/internal/logging"
	"github.com/muurk/dmxstrobe/internal/transport"
)

// defaultFixtureName names the ad-hoc fixture built from --address
const defaultFixtureName = "par"

// Fixture selection flags, shared by strobe and set
var (
	fixtureName    string
	fixtureAddress int
)

func addFixtureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fixtureName, "fixture", "", "Fixture name from the config file")
	cmd.Flags().IntVar(&fixtureAddress, "address", 1, "DMX start address (1-512); overrides the fixture's address")
}

// target is everything a command needs before opening the adapter
type target struct {
	settings *config.Settings
	registry *config.Registry
	patch    fixture.Patch
	port     string
}

// loadEnvironment reads settings and the config file
func loadEnvironment() (*config.Settings, *config.Registry, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, err
	}

	var registry *config.Registry
	if settings.ConfigPath != "" {
		registry, err = config.LoadRegistryFile(settings.ConfigPath)
	} else {
		registry, err = config.LoadRegistry()
	}
	if err != nil {
		return nil, nil, err
	}
	return settings, registry, nil
}

// resolveTarget picks the fixture and port for cmd.
//
// Fixture: --fixture, then DMXSTROBE_FIXTURE, then an ad-hoc par6 at the
// address. --address, when given, moves the chosen fixture.
// Port: --port, then DMXSTROBE_PORT, then the config file, then discovery.
func resolveTarget(cmd *cobra.Command) (*target, error) {
	settings, registry, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	t := &target{settings: settings, registry: registry}

	name := fixtureName
	if name == "" {
		name = settings.Fixture
	}
	address := settings.Address
	if cmd.Flags().Changed("address") {
		address = fixtureAddress
	}

	if name != "" {
		patch, err := registry.Patch(name)
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("address") {
			patch, err = fixture.NewPatch(patch.Name, patch.Layout, address)
			if err != nil {
				return nil, err
			}
		}
		t.patch = patch
	} else {
		t.patch, err = fixture.NewPatch(defaultFixtureName, fixture.Par6, address)
		if err != nil {
			return nil, err
		}
	}

	t.port, err = resolvePort(settings, registry)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// resolvePort applies port precedence and falls back to discovery
func resolvePort(settings *config.Settings, registry *config.Registry) (string, error) {
	port := portName
	if port == "" && !settings.AutoPort() {
		port = settings.Port
	}
	if port == "" && registry != nil && registry.Port != "" && registry.Port != config.PortAuto {
		port = registry.Port
	}
	if port != "" && port != config.PortAuto {
		return port, nil
	}

	d, err := discovery.FindAdapter()
	if err != nil {
		return "", fmt.Errorf("%w (plug in the adapter or pass --port)", err)
	}
	logging.Info("Adapter discovered", zap.String("port", d.Port), zap.String("usb_id", d.USBID()))
	return d.Port, nil
}

// fixtureColor returns the configured default colour for the patch
func (t *target) fixtureColor() string {
	if f, ok := t.registry.Fixtures[t.patch.Name]; ok && f != nil && f.Color != "" {
		return f.Color
	}
	return "white"
}

// openBuffer opens the adapter and wraps it in a universe buffer
func (t *target) openBuffer() (*dmx.Buffer, error) {
	port, err := transport.Open(t.port)
	if err != nil {
		return nil, err
	}
	return dmx.NewBuffer(port), nil
}

// channelAssignment is one --channel N=V flag
type channelAssignment struct {
	Channel int
	Value   int
}

// parseChannelAssignment parses "N=V" with N in 1..512 and V in 0..255
func parseChannelAssignment(s string) (channelAssignment, error) {
	ch, val, ok := strings.Cut(s, "=")
	if !ok {
		return channelAssignment{}, fmt.Errorf("invalid channel assignment %q (want N=V)", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(ch))
	if err != nil {
		return channelAssignment{}, fmt.Errorf("invalid channel in %q: %w", s, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return channelAssignment{}, fmt.Errorf("invalid value in %q: %w", s, err)
	}
	if n < 1 || n > dmx.UniverseSize {
		return channelAssignment{}, &dmx.OutOfRangeError{Field: "channel", Value: n, Min: 1, Max: dmx.UniverseSize}
	}
	if v < dmx.MinValue || v > dmx.MaxValue {
		return channelAssignment{}, &dmx.OutOfRangeError{Field: "value", Value: v, Min: dmx.MinValue, Max: dmx.MaxValue}
	}
	return channelAssignment{Channel: n, Value: v}, nil
}

// parseColorFlag parses --color, falling back to def
func parseColorFlag(value, def string) (colorful.Color, string, error) {
	if value == "" {
		value = def
	}
	c, err := fixture.ParseColor(value)
	if err != nil {
		return colorful.Color{}, "", err
	}
	return c, value, nil
}
