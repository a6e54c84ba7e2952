// Package dmx holds the single 512-channel DMX universe of a session and
// writes it to the adapter.
//
// A Buffer owns the channel values and the transport the session opened.
// Channels are addressed 1-512, as printed on fixtures and lighting desks;
// index 0 of the underlying Universe array is DMX channel 1.
//
// # Value Policy
//
// Channel values are clamped to 0-255. Callers frequently compute values
// arithmetically (scaled dimmers, colour conversion), so a value of 300 is
// written as 255 and -10 as 0. Values are never wrapped. Addresses outside
// 1-512 are rejected with an OutOfRangeError and nothing is written.
//
// # Fixture Views
//
// A View is a window onto a contiguous channel range starting at a fixture's
// DMX address. It stores only the address and count; the Buffer must outlive
// it. Views are validated when they are created, so writes through a View can
// only fail on the offset passed to them.
//
// # Transmission
//
// Transmit encodes all 512 channels with package protocol and writes the
// frame synchronously. A failing or short write is reported as a
// TransmitError wrapping the transport error. There are no retries.
//
// # Thread Safety
//
// A Buffer is owned by a single writer (the CLI command or the strobe
// session). It does not lock internally and must not be shared between
// goroutines without external synchronisation.
package dmx
