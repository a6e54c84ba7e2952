package fixture

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/muurk/dmxstrobe/internal/dmx"
)

// Control is a semantic fixture control
type Control int

const (
	Dimmer Control = iota
	Red
	Green
	Blue
	StrobeRate
	Program
)

// Controls lists every control in reference layout order
var Controls = []Control{Dimmer, Red, Green, Blue, StrobeRate, Program}

var controlNames = map[Control]string{
	Dimmer:     "dimmer",
	Red:        "red",
	Green:      "green",
	Blue:       "blue",
	StrobeRate: "strobe",
	Program:    "program",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

// ParseControl maps a control name from config or flags to a Control.
// "strobe_rate" and "mode" are accepted as aliases.
func ParseControl(s string) (Control, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "strobe_rate", "strobe-rate":
		return StrobeRate, nil
	case "mode":
		return Program, nil
	}
	for c, n := range controlNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", s)
}

// ErrNoSuchControl is returned when a layout does not carry a control
var ErrNoSuchControl = errors.New("control not in layout")

// Layout maps controls to channel offsets from a fixture's base address.
// Layouts are plain data; new fixtures need a new Layout, not new code.
type Layout struct {
	Name      string
	Footprint int
	Offsets   map[Control]int
}

// Par6 is the 6-channel LED par layout:
// dimmer, red, green, blue, strobe rate, program.
var Par6 = &Layout{
	Name:      "par6",
	Footprint: 6,
	Offsets: map[Control]int{
		Dimmer:     0,
		Red:        1,
		Green:      2,
		Blue:       3,
		StrobeRate: 4,
		Program:    5,
	},
}

// NewLayout builds a layout from control offsets. The footprint is the
// highest offset plus one. Offsets must be non-negative, unique and fit in a
// universe.
func NewLayout(name string, offsets map[Control]int) (*Layout, error) {
	if name == "" {
		return nil, errors.New("layout name is required")
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("layout %s: no controls", name)
	}

	used := make(map[int]Control, len(offsets))
	footprint := 0
	for c, off := range offsets {
		if off < 0 || off >= dmx.UniverseSize {
			return nil, fmt.Errorf("layout %s: %w", name,
				&dmx.OutOfRangeError{Field: c.String() + " offset", Value: off, Min: 0, Max: dmx.UniverseSize - 1})
		}
		if other, dup := used[off]; dup {
			return nil, fmt.Errorf("layout %s: %s and %s share offset %d", name, other, c, off)
		}
		used[off] = c
		if off+1 > footprint {
			footprint = off + 1
		}
	}

	copied := make(map[Control]int, len(offsets))
	for c, off := range offsets {
		copied[c] = off
	}
	return &Layout{Name: name, Footprint: footprint, Offsets: copied}, nil
}

// Has reports whether the layout carries the control
func (l *Layout) Has(c Control) bool {
	_, ok := l.Offsets[c]
	return ok
}

// CheckBase verifies the whole footprint fits in the universe at base
func (l *Layout) CheckBase(base int) error {
	maxBase := dmx.UniverseSize - l.Footprint + 1
	if base < 1 || base > maxBase {
		return &dmx.OutOfRangeError{Field: "base", Value: base, Min: 1, Max: maxBase}
	}
	return nil
}

// Channel returns the absolute DMX channel of a control for a fixture at base
func (l *Layout) Channel(c Control, base int) (int, error) {
	if err := l.CheckBase(base); err != nil {
		return 0, err
	}
	off, ok := l.Offsets[c]
	if !ok {
		return 0, fmt.Errorf("%s in %s: %w", c, l.Name, ErrNoSuchControl)
	}
	return base + off, nil
}

// ControlsInOrder returns the layout's controls sorted by offset
func (l *Layout) ControlsInOrder() []Control {
	out := make([]Control, 0, len(l.Offsets))
	for c := range l.Offsets {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return l.Offsets[out[i]] < l.Offsets[out[j]] })
	return out
}

// Reference layout channel mapping.

// DimmerChannel returns the dimmer channel of a Par6 fixture at base
func DimmerChannel(base int) int { return base + 0 }

// RedChannel returns the red channel of a Par6 fixture at base
func RedChannel(base int) int { return base + 1 }

// GreenChannel returns the green channel of a Par6 fixture at base
func GreenChannel(base int) int { return base + 2 }

// BlueChannel returns the blue channel of a Par6 fixture at base
func BlueChannel(base int) int { return base + 3 }

// StrobeRateChannel returns the built-in strobe channel of a Par6 fixture.
// 0 is off, 1-255 is slow to fast.
func StrobeRateChannel(base int) int { return base + 4 }

// ProgramChannel returns the program/mode channel of a Par6 fixture at base
func ProgramChannel(base int) int { return base + 5 }
