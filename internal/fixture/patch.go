package fixture

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ChannelWriter is anything that accepts 1-based channel writes.
// *dmx.Buffer satisfies it.
type ChannelWriter interface {
	SetChannel(channel, value int) error
}

// Patch places a layout at a DMX base address.
type Patch struct {
	Name   string
	Layout *Layout
	Base   int
}

// NewPatch creates a patch, checking the footprint fits at base
func NewPatch(name string, layout *Layout, base int) (Patch, error) {
	if layout == nil {
		layout = Par6
	}
	if err := layout.CheckBase(base); err != nil {
		return Patch{}, fmt.Errorf("fixture %s: %w", name, err)
	}
	return Patch{Name: name, Layout: layout, Base: base}, nil
}

func (p Patch) layout() *Layout {
	if p.Layout == nil {
		return Par6
	}
	return p.Layout
}

// Channel returns the absolute channel of a control
func (p Patch) Channel(c Control) (int, error) {
	return p.layout().Channel(c, p.Base)
}

// End returns the last channel used by the patch
func (p Patch) End() int {
	return p.Base + p.layout().Footprint - 1
}

// Set writes one control
func (p Patch) Set(w ChannelWriter, c Control, value int) error {
	ch, err := p.Channel(c)
	if err != nil {
		return err
	}
	return w.SetChannel(ch, value)
}

// SetDimmer sets the master dimmer
func (p Patch) SetDimmer(w ChannelWriter, value int) error {
	return p.Set(w, Dimmer, value)
}

// SetStrobeRate sets the fixture's built-in strobe (0 = off)
func (p Patch) SetStrobeRate(w ChannelWriter, value int) error {
	return p.Set(w, StrobeRate, value)
}

// SetProgram sets the program/mode channel
func (p Patch) SetProgram(w ChannelWriter, value int) error {
	return p.Set(w, Program, value)
}

// SetRGB writes red, green and blue. All three channels are resolved before
// the first write, so an invalid patch writes nothing.
func (p Patch) SetRGB(w ChannelWriter, r, g, b int) error {
	var channels [3]int
	for i, c := range []Control{Red, Green, Blue} {
		ch, err := p.Channel(c)
		if err != nil {
			return err
		}
		channels[i] = ch
	}
	for i, v := range []int{r, g, b} {
		if err := w.SetChannel(channels[i], v); err != nil {
			return err
		}
	}
	return nil
}

// SetColor writes a colour to the RGB channels
func (p Patch) SetColor(w ChannelWriter, c colorful.Color) error {
	r, g, b := c.Clamped().RGB255()
	return p.SetRGB(w, int(r), int(g), int(b))
}

// WhiteFull drives the fixture to full white: dimmer and RGB at 255, strobe
// and program at 0. Controls the layout lacks are skipped.
func (p Patch) WhiteFull(w ChannelWriter) error {
	return p.Look(w, 255, colorful.Color{R: 1, G: 1, B: 1})
}

// Look sets dimmer and colour with the built-in strobe and program cleared.
// Controls the layout lacks are skipped.
func (p Patch) Look(w ChannelWriter, dimmer int, c colorful.Color) error {
	l := p.layout()
	if err := l.CheckBase(p.Base); err != nil {
		return err
	}
	r, g, b := c.Clamped().RGB255()
	values := map[Control]int{
		Dimmer:     dimmer,
		Red:        int(r),
		Green:      int(g),
		Blue:       int(b),
		StrobeRate: 0,
		Program:    0,
	}
	for _, ctl := range Controls {
		if !l.Has(ctl) {
			continue
		}
		if err := p.Set(w, ctl, values[ctl]); err != nil {
			return err
		}
	}
	return nil
}

// Blackout zeroes every channel in the fixture footprint
func (p Patch) Blackout(w ChannelWriter) error {
	l := p.layout()
	if err := l.CheckBase(p.Base); err != nil {
		return err
	}
	for ch := p.Base; ch <= p.End(); ch++ {
		if err := w.SetChannel(ch, 0); err != nil {
			return err
		}
	}
	return nil
}

func (p Patch) String() string {
	return fmt.Sprintf("%s (%s @ %d-%d)", p.Name, p.layout().Name, p.Base, p.End())
}

var namedColors = map[string]colorful.Color{
	"white":   {R: 1, G: 1, B: 1},
	"red":     {R: 1},
	"green":   {G: 1},
	"blue":    {B: 1},
	"cyan":    {G: 1, B: 1},
	"magenta": {R: 1, B: 1},
	"yellow":  {R: 1, G: 1},
	"amber":   {R: 1, G: 0.75},
}

// ParseColor accepts a colour name (white, red, amber, ...) or a hex value
// such as "#ff8000".
func ParseColor(s string) (colorful.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}
	c, err := colorful.Hex(name)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
