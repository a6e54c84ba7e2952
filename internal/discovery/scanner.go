package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/logging"
)

const (
	// DefaultPollInterval is how often WaitForAdapter rescans the ports
	DefaultPollInterval = 500 * time.Millisecond
)

// ErrNoAdapter is returned when no known DMX adapter is connected
var ErrNoAdapter = errors.New("no DMX adapter found")

// Scanner enumerates serial ports and identifies DMX adapters
type Scanner struct {
	// PollInterval is the rescan interval for WaitForAdapter
	PollInterval time.Duration

	// list enumerates ports; replaced in tests
	list func() ([]*enumerator.PortDetails, error)
}

// NewScanner creates a scanner backed by the OS port enumerator
func NewScanner() *Scanner {
	return &Scanner{
		PollInterval: DefaultPollInterval,
		list:         enumerator.GetDetailedPortsList,
	}
}

// Scan returns every serial port, adapters first, then by port name
func (s *Scanner) Scan() ([]*Device, error) {
	ports, err := s.list()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	devices := make([]*Device, 0, len(ports))
	for _, p := range ports {
		if p == nil || p.Name == "" {
			continue
		}
		d := &Device{
			Port:         p.Name,
			USB:          p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		}
		d.Adapter = isAdapter(d)
		devices = append(devices, d)
	}

	sort.SliceStable(devices, func(i, j int) bool {
		if devices[i].Adapter != devices[j].Adapter {
			return devices[i].Adapter
		}
		return devices[i].Port < devices[j].Port
	})

	logging.Debug("Serial ports enumerated", zap.Int("count", len(devices)))
	return devices, nil
}

// FindAdapter returns the first connected DMX adapter or ErrNoAdapter
func (s *Scanner) FindAdapter() (*Device, error) {
	devices, err := s.Scan()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.Adapter {
			return d, nil
		}
	}
	return nil, ErrNoAdapter
}

// WaitForAdapter rescans until an adapter is plugged in or ctx is done
func (s *Scanner) WaitForAdapter(ctx context.Context) (*Device, error) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d, err := s.FindAdapter()
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrNoAdapter) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrNoAdapter, ctx.Err())
		case <-ticker.C:
		}
	}
}

// FindAdapter is a convenience function using the OS enumerator
func FindAdapter() (*Device, error) {
	return NewScanner().FindAdapter()
}
