package protocol

import (
	"errors"
	"fmt"
)

// EncodingError is returned when a message cannot be encoded because its
// content exceeds what the protocol can carry.
type EncodingError struct {
	// Count is the number of bytes (channels or payload) that was requested
	Count int
	// Max is the protocol limit that was exceeded
	Max int
	// What names the limited quantity ("channels", "payload bytes")
	What string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %d %s (max %d)", e.Count, e.What, e.Max)
}

// FramingError is returned when bytes received from an adapter (or captured
// for diagnostics) do not form a valid Enttec message.
type FramingError struct {
	// Reason describes what is wrong with the frame
	Reason string
	// Offset is the byte offset where the problem was detected (-1 if not applicable)
	Offset int
}

func (e *FramingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid frame at byte %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("invalid frame: %s", e.Reason)
}

// IsEncodingError checks if an error is (or wraps) an EncodingError
func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}

// IsFramingError checks if an error is (or wraps) a FramingError
func IsFramingError(err error) bool {
	var frameErr *FramingError
	return errors.As(err, &frameErr)
}
