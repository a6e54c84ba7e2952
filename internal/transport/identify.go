package transport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/logging"
	"github.com/muurk/dmxstrobe/internal/protocol"
)

// DefaultReplyTimeout bounds each read while waiting for an adapter reply
const DefaultReplyTimeout = 500 * time.Millisecond

// maxSkippedFrames bounds how many unrelated frames Request discards
const maxSkippedFrames = 8

// ErrNoReply is returned when the adapter does not answer in time
var ErrNoReply = errors.New("no reply from adapter")

// Identity describes an adapter that answered the identification requests
type Identity struct {
	SerialNumber string
	Params       *protocol.WidgetParams
}

// replyReader reports a read timeout, which the serial driver signals as
// zero bytes and a nil error, as ErrNoReply.
type replyReader struct {
	port serial.Port
}

func (r replyReader) Read(p []byte) (int, error) {
	n, err := r.port.Read(p)
	if n == 0 && err == nil {
		return 0, ErrNoReply
	}
	return n, err
}

// Request writes a request frame and returns the first reply with the given
// label. Frames with other labels, such as received DMX, are discarded.
func (s *Serial) Request(request []byte, label byte, timeout time.Duration) (*protocol.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	if err := s.port.SetReadTimeout(timeout); err != nil {
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", s.name, err)
	}
	if _, err := s.port.Write(request); err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", protocol.LabelName(label), err)
	}

	r := replyReader{port: s.port}
	for i := 0; i < maxSkippedFrames; i++ {
		frame, err := protocol.ReadFrame(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s reply from %s: %w", protocol.LabelName(label), s.name, err)
		}
		if frame.Label == label {
			return frame, nil
		}
		logging.Debug("skipping unrelated frame", zap.String("port", s.name), zap.Stringer("frame", frame))
	}
	return nil, fmt.Errorf("no %s reply from %s after %d frames: %w", protocol.LabelName(label), s.name, maxSkippedFrames, ErrNoReply)
}

// Identify asks the adapter for its serial number and widget parameters.
// A port that does not answer is not an Enttec-compatible adapter.
func (s *Serial) Identify(timeout time.Duration) (*Identity, error) {
	reply, err := s.Request(protocol.BuildGetSerialNumber(), protocol.LabelGetSerialNumber, timeout)
	if err != nil {
		return nil, err
	}
	serialNumber, err := reply.SerialNumber()
	if err != nil {
		return nil, err
	}

	reply, err = s.Request(protocol.BuildGetWidgetParams(), protocol.LabelGetWidgetParams, timeout)
	if err != nil {
		return nil, err
	}
	params, err := reply.WidgetParams()
	if err != nil {
		return nil, err
	}

	logging.Debug("adapter identified",
		zap.String("port", s.name),
		zap.String("serial", serialNumber),
		zap.String("firmware", params.FirmwareVersion()))
	return &Identity{SerialNumber: serialNumber, Params: params}, nil
}
