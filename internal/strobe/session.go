package strobe

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lucsky/cuid"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/muurk/dmxstrobe/internal/dmx"
	"github.com/muurk/dmxstrobe/internal/logging"
)

// ErrAlreadyStarted is returned by Run on a session that has already run
var ErrAlreadyStarted = errors.New("strobe session already started")

// State is the oscillator lifecycle state
type State int32

const (
	Idle State = iota
	Running
	Stopped
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether the state ends a session
func (s State) Terminal() bool {
	return s == Stopped || s == Completed || s == Failed
}

// Event is reported to the observer after every transmitted frame.
type Event struct {
	Phase Phase
	// Frame counts phase frames from 1; the safe frame repeats the last count
	Frame uint64
	// Elapsed is the time since the run started when the frame was sent
	Elapsed time.Duration
	// Duration is the configured run length
	Duration time.Duration
}

// Result summarises a finished run.
type Result struct {
	ID      string
	State   State
	Frames  uint64
	Elapsed time.Duration
	// SafeSent reports whether the final safe frame reached the transport
	SafeSent bool
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces the wall clock, normally with a fake clock in tests
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithObserver registers a callback invoked synchronously after each frame.
// It runs on the oscillator goroutine and must return quickly.
func WithObserver(fn func(Event)) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// WithLogger sets the logger used for session lifecycle messages
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// Session alternates a buffer between two snapshots at a fixed rate.
type Session struct {
	id       string
	buf      *dmx.Buffer
	cfg      Config
	clock    clock.Clock
	observer func(Event)
	log      *zap.Logger
	state    atomic.Int32
	frames   uint64
}

// NewSession validates cfg and prepares a session on buf. Nothing is sent
// until Run.
func NewSession(buf *dmx.Buffer, cfg Config, opts ...Option) (*Session, error) {
	if buf == nil {
		return nil, errors.New("strobe session requires a buffer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:    cuid.New(),
		buf:   buf,
		cfg:   cfg,
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.GetLogger()
	}
	s.log = s.log.With(zap.String("session_id", s.id))

	if 2*cfg.Frequency > LineRefreshHz {
		s.log.Warn("Strobe frame rate exceeds DMX line refresh",
			zap.Float64("frequency_hz", cfg.Frequency),
			zap.Float64("frames_per_second", 2*cfg.Frequency),
		)
	}

	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// State returns the current state. Safe to call from any goroutine.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Config returns the session configuration
func (s *Session) Config() Config { return s.cfg }

// Run drives the oscillator until the duration elapses, ctx is cancelled or a
// transmit fails. Every exit path loads the safe snapshot and sends it once.
//
// Cancellation returns a Stopped result and a nil error. A transmit failure
// returns a Failed result together with the *dmx.TransmitError.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if !s.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return nil, ErrAlreadyStarted
	}

	half := s.cfg.HalfPeriod()
	start := s.clock.Now()
	deadline := start.Add(s.cfg.Duration)

	s.log.Info("Strobe started",
		zap.Float64("frequency_hz", s.cfg.Frequency),
		zap.Duration("half_period", half),
		zap.Duration("duration", s.cfg.Duration),
		zap.Stringer("start_phase", s.cfg.StartPhase),
	)

	final, runErr := s.oscillate(ctx, start, deadline, half)

	safeErr := s.sendSafe(start)
	if safeErr != nil {
		s.log.Warn("Failed to send safe frame", zap.Error(safeErr))
		if runErr == nil {
			final, runErr = Failed, safeErr
		}
	}

	result := &Result{
		ID:       s.id,
		State:    final,
		Frames:   s.frames,
		Elapsed:  s.clock.Since(start),
		SafeSent: safeErr == nil,
	}
	s.state.Store(int32(final))

	fields := []zap.Field{
		zap.Stringer("state", final),
		zap.Uint64("frames", result.Frames),
		zap.Duration("elapsed", result.Elapsed),
	}
	if runErr != nil {
		s.log.Error("Strobe failed", append(fields, zap.Error(runErr))...)
	} else {
		s.log.Info("Strobe finished", fields...)
	}

	return result, runErr
}

// oscillate runs the phase loop and returns the terminal state it reached
func (s *Session) oscillate(ctx context.Context, start, deadline time.Time, half time.Duration) (State, error) {
	phase := s.cfg.StartPhase

	for {
		if ctx.Err() != nil {
			return Stopped, nil
		}

		iterStart := s.clock.Now()
		if !iterStart.Before(deadline) {
			return Completed, nil
		}

		s.buf.Load(s.cfg.snapshot(phase))
		if err := s.buf.Transmit(); err != nil {
			return Failed, err
		}
		s.frames++
		s.notify(Event{Phase: phase, Frame: s.frames, Elapsed: iterStart.Sub(start), Duration: s.cfg.Duration})

		wait := half - s.clock.Since(iterStart)
		if wait < 0 {
			wait = 0
		}
		if left := deadline.Sub(s.clock.Now()); wait > left {
			wait = left
		}

		if wait > 0 {
			select {
			case <-ctx.Done():
				return Stopped, nil
			case <-s.clock.After(wait):
			}
		}

		phase = phase.Flip()
	}
}

func (s *Session) sendSafe(start time.Time) error {
	s.buf.Load(s.cfg.SafeUniverse())
	if err := s.buf.Transmit(); err != nil {
		return err
	}
	s.notify(Event{Phase: PhaseSafe, Frame: s.frames, Elapsed: s.clock.Since(start), Duration: s.cfg.Duration})
	return nil
}

func (s *Session) notify(ev Event) {
	if s.observer != nil {
		s.observer(ev)
	}
}
