package transport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/logging"
)

// BaudRate is the line rate the Enttec protocol requires
const BaudRate = 115200

// ErrClosed is returned by Write after Close
var ErrClosed = errors.New("serial port closed")

// Mode returns the fixed 115200 8N1 port mode
func Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Serial is an open adapter port. It implements io.WriteCloser.
type Serial struct {
	name   string
	port   serial.Port
	opened time.Time

	mu     sync.Mutex
	closed bool
}

// opener is replaced in tests
var opener = serial.Open

// Open opens the named port at 115200 8N1 without flow control
func Open(name string) (*Serial, error) {
	if name == "" {
		return nil, errors.New("serial port name is required")
	}

	port, err := opener(name, Mode())
	if err != nil {
		var portErr *serial.PortError
		if errors.As(err, &portErr) && portErr.Code() == serial.PortBusy {
			return nil, fmt.Errorf("serial port %s is busy (another program has it open): %w", name, err)
		}
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}

	logging.LogPort(name, "opened", 0)
	return &Serial{name: name, port: port, opened: time.Now()}, nil
}

// Name returns the OS port name
func (s *Serial) Name() string { return s.name }

// Write sends bytes to the adapter. It blocks until the driver accepts them.
func (s *Serial) Write(p []byte) (int, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0, ErrClosed
	}
	return s.port.Write(p)
}

// Close waits for pending output to drain and closes the port. Later calls
// are no-ops.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.port.Drain(); err != nil {
		logging.Debug("serial drain failed", zap.Error(err))
	}
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", s.name, err)
	}
	logging.LogPort(s.name, "closed", time.Since(s.opened))
	return nil
}
