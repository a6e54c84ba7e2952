package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/muurk/dmxstrobe/internal/fixture"
)

// CurrentVersion is the config file format version
const CurrentVersion = 1

// Registry represents the entire user configuration file.
// It stores the patched fixtures, custom layouts and default preferences.
type Registry struct {
	Version  int                      `yaml:"version"`
	Port     string                   `yaml:"port,omitempty"`     // Preferred adapter port; empty means auto
	Fixtures map[string]*Fixture      `yaml:"fixtures,omitempty"` // Keyed by fixture name
	Layouts  map[string]*LayoutConfig `yaml:"layouts,omitempty"`  // Custom layouts keyed by name
	Strobe   *StrobePrefs             `yaml:"strobe,omitempty"`

	path string
}

// Fixture is one patched fixture.
type Fixture struct {
	Address     int    `yaml:"address"`               // DMX start address (1-512)
	Layout      string `yaml:"layout,omitempty"`      // Layout name; empty means par6
	Color       string `yaml:"color,omitempty"`       // Default strobe colour
	Description string `yaml:"description,omitempty"` // Free text
}

// LayoutConfig describes a custom layout as control name to offset.
type LayoutConfig struct {
	Controls map[string]int `yaml:"controls"`
}

// StrobePrefs are the default strobe parameters.
type StrobePrefs struct {
	Frequency float64       `yaml:"frequency,omitempty"`
	Duration  time.Duration `yaml:"duration,omitempty"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  CurrentVersion,
		Fixtures: make(map[string]*Fixture),
		Layouts:  make(map[string]*LayoutConfig),
	}
}

// Path returns the file the registry was loaded from or will be saved to
func (r *Registry) Path() string { return r.path }

// SetFixture adds or replaces a fixture
func (r *Registry) SetFixture(name string, address int, layout string) *Fixture {
	if r.Fixtures == nil {
		r.Fixtures = make(map[string]*Fixture)
	}
	f := &Fixture{Address: address, Layout: layout}
	r.Fixtures[name] = f
	return f
}

// FixtureNames returns fixture names in sorted order
func (r *Registry) FixtureNames() []string {
	names := make([]string, 0, len(r.Fixtures))
	for name := range r.Fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layout resolves a layout name. Custom layouts shadow the built-in par6.
func (r *Registry) Layout(name string) (*fixture.Layout, error) {
	if name == "" {
		name = fixture.Par6.Name
	}
	if lc, ok := r.Layouts[name]; ok && lc != nil {
		offsets := make(map[fixture.Control]int, len(lc.Controls))
		for ctlName, off := range lc.Controls {
			ctl, err := fixture.ParseControl(ctlName)
			if err != nil {
				return nil, fmt.Errorf("layout %s: %w", name, err)
			}
			offsets[ctl] = off
		}
		return fixture.NewLayout(name, offsets)
	}
	if name == fixture.Par6.Name {
		return fixture.Par6, nil
	}
	return nil, fmt.Errorf("unknown layout %q", name)
}

// Patch resolves a named fixture to a fixture.Patch
func (r *Registry) Patch(name string) (fixture.Patch, error) {
	f, ok := r.Fixtures[name]
	if !ok || f == nil {
		return fixture.Patch{}, fmt.Errorf("unknown fixture %q", name)
	}
	layout, err := r.Layout(f.Layout)
	if err != nil {
		return fixture.Patch{}, fmt.Errorf("fixture %s: %w", name, err)
	}
	return fixture.NewPatch(name, layout, f.Address)
}

// Validate resolves every fixture so a bad file is reported at load time
func (r *Registry) Validate() error {
	if r.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", r.Version, CurrentVersion)
	}
	for _, name := range r.FixtureNames() {
		if _, err := r.Patch(name); err != nil {
			return err
		}
		if c := r.Fixtures[name].Color; c != "" {
			if _, err := fixture.ParseColor(c); err != nil {
				return fmt.Errorf("fixture %s: %w", name, err)
			}
		}
	}
	if r.Strobe != nil {
		if r.Strobe.Frequency < 0 {
			return fmt.Errorf("strobe.frequency must not be negative, got %v", r.Strobe.Frequency)
		}
		if r.Strobe.Duration < 0 {
			return fmt.Errorf("strobe.duration must be >= 0, got %v", r.Strobe.Duration)
		}
	}
	return nil
}
