package dmx

import (
	"errors"
	"fmt"
)

// ErrClosed is wrapped by a TransmitError when Transmit is called after Close
var ErrClosed = errors.New("transport closed")

// OutOfRangeError represents an address or count outside the universe.
// It is always a caller bug; nothing is written when it is returned.
type OutOfRangeError struct {
	// Field names the offending argument (e.g. "channel", "start", "base")
	Field string
	// Value is the rejected value
	Value int
	// Min and Max are the inclusive bounds Value had to satisfy
	Min int
	Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (%d-%d)", e.Field, e.Value, e.Min, e.Max)
}

// TransmitError wraps a transport failure while writing a frame.
type TransmitError struct {
	// Written is the number of bytes the transport accepted before failing
	Written int
	// Size is the full frame size
	Size int
	// Err is the underlying transport error
	Err error
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("dmx transmit failed after %d/%d bytes: %v", e.Written, e.Size, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransmitError) Unwrap() error {
	return e.Err
}

// IsOutOfRange checks if an error is (or wraps) an OutOfRangeError
func IsOutOfRange(err error) bool {
	var rangeErr *OutOfRangeError
	return errors.As(err, &rangeErr)
}

// IsTransmitError checks if an error is (or wraps) a TransmitError
func IsTransmitError(err error) bool {
	var txErr *TransmitError
	return errors.As(err, &txErr)
}
