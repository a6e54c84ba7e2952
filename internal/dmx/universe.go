package dmx

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/logging"
	"github.com/muurk/dmxstrobe/internal/protocol"
)

const (
	// UniverseSize is the number of channels in a DMX universe
	UniverseSize = protocol.MaxChannels

	// MinValue and MaxValue bound a channel value
	MinValue = 0
	MaxValue = 255
)

// Universe is a full set of 512 channel values. Index 0 is DMX channel 1.
// Universe is a value type: assigning it copies all channels, which is how
// ON/OFF snapshots are taken.
type Universe [UniverseSize]byte

// Channel returns the value of a 1-based channel, or 0 if out of range
func (u *Universe) Channel(channel int) byte {
	if channel < 1 || channel > UniverseSize {
		return 0
	}
	return u[channel-1]
}

// SetChannel writes a 1-based channel, clamping the value. It lets a bare
// Universe be used to compose snapshots without a transport.
func (u *Universe) SetChannel(channel, value int) error {
	if err := checkChannel("channel", channel); err != nil {
		return err
	}
	u[channel-1] = ClampValue(value)
	return nil
}

// IsDark reports whether every channel is zero
func (u *Universe) IsDark() bool {
	for _, v := range u {
		if v != 0 {
			return false
		}
	}
	return true
}

// ClampValue limits a computed value to the DMX range 0-255
func ClampValue(value int) byte {
	if value < MinValue {
		return MinValue
	}
	if value > MaxValue {
		return MaxValue
	}
	return byte(value)
}

// Buffer owns one universe and the transport it is sent over.
type Buffer struct {
	universe  Universe
	transport io.WriteCloser
	closed    bool
	frames    uint64
}

// NewBuffer creates a dark universe that transmits to the given transport.
// The Buffer takes ownership of the transport and closes it in Close.
func NewBuffer(transport io.WriteCloser) *Buffer {
	return &Buffer{transport: transport}
}

// SetChannel writes one channel. The channel must be 1-512; the value is
// clamped to 0-255.
func (b *Buffer) SetChannel(channel, value int) error {
	return b.universe.SetChannel(channel, value)
}

// Channel returns the current value of a 1-based channel
func (b *Buffer) Channel(channel int) (byte, error) {
	if err := checkChannel("channel", channel); err != nil {
		return 0, err
	}
	return b.universe[channel-1], nil
}

// SetRange writes consecutive channels starting at start. The whole range is
// validated before anything is written.
func (b *Buffer) SetRange(start int, values []int) error {
	if len(values) == 0 {
		return checkChannel("start", start)
	}
	view, err := b.View(start, len(values))
	if err != nil {
		return err
	}
	for i, v := range values {
		view.set(i, v)
	}
	return nil
}

// View returns a fixture view of count channels starting at start
func (b *Buffer) View(start, count int) (*View, error) {
	return NewView(b, start, count)
}

// Snapshot returns a copy of the current universe
func (b *Buffer) Snapshot() Universe {
	return b.universe
}

// Load replaces every channel with the given universe
func (b *Buffer) Load(u Universe) {
	b.universe = u
}

// Blackout sets every channel to zero. It does not transmit.
func (b *Buffer) Blackout() {
	b.universe = Universe{}
}

// Frames returns the number of frames written successfully
func (b *Buffer) Frames() uint64 {
	return b.frames
}

// Transmit encodes the full universe and writes it to the transport.
// It blocks until the transport accepts the frame or fails.
func (b *Buffer) Transmit() error {
	frame, err := protocol.EncodeDMX(b.universe[:])
	if err != nil {
		// Unreachable with a fixed-size universe
		return fmt.Errorf("failed to encode universe: %w", err)
	}

	if b.closed {
		return &TransmitError{Size: len(frame), Err: ErrClosed}
	}

	n, err := b.transport.Write(frame)
	if err == nil && n < len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		logging.Warn("DMX frame write failed",
			zap.Int("written", n),
			zap.Int("size", len(frame)),
			zap.Error(err),
		)
		return &TransmitError{Written: n, Size: len(frame), Err: err}
	}

	b.frames++
	logging.LogFrame("sent", frame)
	return nil
}

// Close releases the transport. Only the first call closes it; later calls
// return nil.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}

// ShutdownAndClose blacks out the universe, sends one final frame and closes
// the transport. The transport is closed even when the final frame fails; the
// first error is returned.
func (b *Buffer) ShutdownAndClose() error {
	var firstErr error
	if !b.closed {
		b.Blackout()
		firstErr = b.Transmit()
	}
	if err := b.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func checkChannel(field string, channel int) error {
	if channel < 1 || channel > UniverseSize {
		return &OutOfRangeError{Field: field, Value: channel, Min: 1, Max: UniverseSize}
	}
	return nil
}
