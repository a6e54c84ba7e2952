package strobe

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/muurk/dmxstrobe/internal/dmx"
	"github.com/muurk/dmxstrobe/internal/fixture"
)

// ErrInvalidConfig is wrapped by every Config validation failure
var ErrInvalidConfig = errors.New("invalid strobe config")

// LineRefreshHz is roughly the fastest a full 512-channel DMX line can be
// refreshed. A session whose half-period is shorter sends frames faster than
// the fixture can receive them.
const LineRefreshHz = 44.0

// Phase identifies which snapshot a frame carries
type Phase int

const (
	PhaseOn Phase = iota
	PhaseOff
	// PhaseSafe is the final frame sent on every exit path
	PhaseSafe
)

func (p Phase) String() string {
	switch p {
	case PhaseOn:
		return "on"
	case PhaseOff:
		return "off"
	case PhaseSafe:
		return "safe"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Flip returns the opposite oscillation phase
func (p Phase) Flip() Phase {
	if p == PhaseOn {
		return PhaseOff
	}
	return PhaseOn
}

// Config describes one strobe session.
type Config struct {
	// Frequency is full on/off cycles per second
	Frequency float64
	// Duration bounds the run. Zero sends only the final safe frame.
	Duration time.Duration
	// On and Off are the two alternating universe snapshots
	On  dmx.Universe
	Off dmx.Universe
	// Safe is loaded and sent once when the run ends. Nil means all zero.
	Safe *dmx.Universe
	// StartPhase selects which snapshot is sent first
	StartPhase Phase
}

// Validate checks frequency, duration and start phase
func (c Config) Validate() error {
	if math.IsNaN(c.Frequency) || math.IsInf(c.Frequency, 0) || c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be > 0 Hz, got %v", ErrInvalidConfig, c.Frequency)
	}
	if c.HalfPeriod() <= 0 {
		return fmt.Errorf("%w: frequency %v Hz is too high", ErrInvalidConfig, c.Frequency)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.StartPhase != PhaseOn && c.StartPhase != PhaseOff {
		return fmt.Errorf("%w: start phase must be on or off, got %v", ErrInvalidConfig, c.StartPhase)
	}
	return nil
}

// HalfPeriod is the time each snapshot is held: 1 / (2 * Frequency)
func (c Config) HalfPeriod() time.Duration {
	return time.Duration(float64(time.Second) / (2 * c.Frequency))
}

// SafeUniverse returns the snapshot sent when the run ends
func (c Config) SafeUniverse() dmx.Universe {
	if c.Safe != nil {
		return *c.Safe
	}
	return dmx.Universe{}
}

// snapshot returns the universe for an oscillation phase
func (c *Config) snapshot(p Phase) dmx.Universe {
	if p == PhaseOff {
		return c.Off
	}
	return c.On
}

// WhiteStrobe builds the reference white strobe for one fixture: ON is the
// fixture at full white, OFF is blackout.
func WhiteStrobe(patch fixture.Patch, frequency float64, duration time.Duration) (Config, error) {
	return ColorStrobe(patch, colorful.Color{R: 1, G: 1, B: 1}, frequency, duration)
}

// ColorStrobe builds a strobe that flashes one fixture in a colour at full
// dimmer.
func ColorStrobe(patch fixture.Patch, c colorful.Color, frequency float64, duration time.Duration) (Config, error) {
	var on, off dmx.Universe
	if err := patch.Look(&on, 255, c); err != nil {
		return Config{}, fmt.Errorf("failed to build on snapshot: %w", err)
	}
	if err := patch.Blackout(&off); err != nil {
		return Config{}, fmt.Errorf("failed to build off snapshot: %w", err)
	}

	cfg := Config{
		Frequency:  frequency,
		Duration:   duration,
		On:         on,
		Off:        off,
		StartPhase: PhaseOn,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
