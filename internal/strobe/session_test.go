package strobe

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/muurk/dmxstrobe/internal/dmx"
	"github.com/muurk/dmxstrobe/internal/fixture"
	"github.com/muurk/dmxstrobe/internal/protocol"
)

// recordingTransport keeps every frame and can be told to fail writes.
type recordingTransport struct {
	mu     sync.Mutex
	frames [][]byte
	writes int
	// failWrite returns the error for the n-th write (1-based), or nil
	failWrite func(n int) error
	closed    bool
}

func (r *recordingTransport) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.failWrite != nil {
		if err := r.failWrite(r.writes); err != nil {
			return 0, err
		}
	}
	r.frames = append(r.frames, append([]byte(nil), p...))
	return len(p), nil
}

func (r *recordingTransport) Close() error {
	r.closed = true
	return nil
}

// universes decodes every recorded frame back into a Universe
func (r *recordingTransport) universes(t *testing.T) []dmx.Universe {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]dmx.Universe, 0, len(r.frames))
	for _, raw := range r.frames {
		f, err := protocol.ParseFrame(raw)
		require.NoError(t, err)
		channels, err := f.DMX()
		require.NoError(t, err)
		require.Len(t, channels, dmx.UniverseSize)

		var u dmx.Universe
		copy(u[:], channels)
		out = append(out, u)
	}
	return out
}

// driveClock advances fc in small steps whenever the session is sleeping on
// it. The returned func stops the driver.
func driveClock(fc *testingclock.FakeClock) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if fc.HasWaiters() {
				fc.Step(500 * time.Microsecond)
				continue
			}
			runtime.Gosched()
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

func par6Strobe(t *testing.T, frequency float64, duration time.Duration) Config {
	t.Helper()
	patch, err := fixture.NewPatch("par", fixture.Par6, 1)
	require.NoError(t, err)
	cfg, err := WhiteStrobe(patch, frequency, duration)
	require.NoError(t, err)
	return cfg
}

func newFakeSession(t *testing.T, cfg Config, tr *recordingTransport, opts ...Option) (*Session, *testingclock.FakeClock) {
	t.Helper()
	fc := testingclock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s, err := NewSession(dmx.NewBuffer(tr), cfg, append([]Option{WithClock(fc)}, opts...)...)
	require.NoError(t, err)
	return s, fc
}

func TestHalfPeriod(t *testing.T) {
	cfg := Config{Frequency: 8}
	assert.Equal(t, 62500*time.Microsecond, cfg.HalfPeriod())

	cfg.Frequency = 1
	assert.Equal(t, 500*time.Millisecond, cfg.HalfPeriod())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "reference", cfg: Config{Frequency: 8, Duration: 10 * time.Second}},
		{name: "zero duration", cfg: Config{Frequency: 8}},
		{name: "off first", cfg: Config{Frequency: 2, Duration: time.Second, StartPhase: PhaseOff}},
		{name: "zero frequency", cfg: Config{Frequency: 0, Duration: time.Second}, wantErr: true},
		{name: "negative frequency", cfg: Config{Frequency: -8, Duration: time.Second}, wantErr: true},
		{name: "huge frequency", cfg: Config{Frequency: 1e12, Duration: time.Second}, wantErr: true},
		{name: "negative duration", cfg: Config{Frequency: 8, Duration: -time.Second}, wantErr: true},
		{name: "safe start phase", cfg: Config{Frequency: 8, StartPhase: PhaseSafe}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWhiteStrobeSnapshots(t *testing.T) {
	cfg := par6Strobe(t, 8, time.Second)

	for ch := 1; ch <= 4; ch++ {
		assert.Equal(t, byte(255), cfg.On.Channel(ch))
	}
	assert.Equal(t, byte(0), cfg.On.Channel(5))
	assert.Equal(t, byte(0), cfg.On.Channel(6))
	assert.True(t, cfg.Off.IsDark())
	assert.Equal(t, PhaseOn, cfg.StartPhase)

	_, err := WhiteStrobe(fixture.Patch{Name: "par", Layout: fixture.Par6, Base: 510}, 8, time.Second)
	assert.True(t, dmx.IsOutOfRange(err))
}

func TestRunCompletesWithFakeClock(t *testing.T) {
	tr := &recordingTransport{}
	cfg := par6Strobe(t, 8, 250*time.Millisecond)

	var events []Event
	s, fc := newFakeSession(t, cfg, tr, WithObserver(func(ev Event) { events = append(events, ev) }))
	assert.Equal(t, Idle, s.State())
	assert.NotEmpty(t, s.ID())

	stop := driveClock(fc)
	result, err := s.Run(context.Background())
	stop()

	require.NoError(t, err)
	assert.Equal(t, Completed, result.State)
	assert.Equal(t, Completed, s.State())
	assert.Equal(t, s.ID(), result.ID)
	assert.Equal(t, uint64(4), result.Frames)
	assert.Equal(t, 250*time.Millisecond, result.Elapsed)
	assert.True(t, result.SafeSent)

	frames := tr.universes(t)
	require.Len(t, frames, 5)
	assert.Equal(t, []dmx.Universe{cfg.On, cfg.Off, cfg.On, cfg.Off}, frames[:4])
	assert.True(t, frames[4].IsDark(), "final frame must be off")

	require.Len(t, events, 5)
	for i, want := range []Phase{PhaseOn, PhaseOff, PhaseOn, PhaseOff, PhaseSafe} {
		assert.Equal(t, want, events[i].Phase, "event %d", i)
	}
	assert.Equal(t, 125*time.Millisecond, events[2].Elapsed)
	assert.False(t, tr.closed, "session does not own the transport")
}

func TestRunClampsLastSleepToDeadline(t *testing.T) {
	tr := &recordingTransport{}
	s, fc := newFakeSession(t, par6Strobe(t, 8, 100*time.Millisecond), tr)

	stop := driveClock(fc)
	result, err := s.Run(context.Background())
	stop()

	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Frames)
	assert.Equal(t, 100*time.Millisecond, result.Elapsed)
}

func TestRunStartPhaseOff(t *testing.T) {
	tr := &recordingTransport{}
	cfg := par6Strobe(t, 8, 125*time.Millisecond)
	cfg.StartPhase = PhaseOff
	s, fc := newFakeSession(t, cfg, tr)

	stop := driveClock(fc)
	_, err := s.Run(context.Background())
	stop()
	require.NoError(t, err)

	frames := tr.universes(t)
	require.Len(t, frames, 3)
	assert.Equal(t, cfg.Off, frames[0])
	assert.Equal(t, cfg.On, frames[1])
}

func TestRunZeroDurationSendsOnlySafeFrame(t *testing.T) {
	tr := &recordingTransport{}
	s, _ := newFakeSession(t, par6Strobe(t, 8, 0), tr)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Completed, result.State)
	assert.Equal(t, uint64(0), result.Frames)

	frames := tr.universes(t)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].IsDark())
}

func TestRunCustomSafeSnapshot(t *testing.T) {
	tr := &recordingTransport{}
	cfg := par6Strobe(t, 8, 0)
	var safe dmx.Universe
	require.NoError(t, safe.SetChannel(1, 40))
	cfg.Safe = &safe

	s, _ := newFakeSession(t, cfg, tr)
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	frames := tr.universes(t)
	require.Len(t, frames, 1)
	assert.Equal(t, safe, frames[0])
}

func TestRunCancelledMidRun(t *testing.T) {
	tr := &recordingTransport{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	observer := func(ev Event) {
		if ev.Frame == 3 && ev.Phase != PhaseSafe {
			cancel()
		}
	}
	s, fc := newFakeSession(t, par6Strobe(t, 8, 10*time.Second), tr, WithObserver(observer))

	stop := driveClock(fc)
	result, err := s.Run(ctx)
	stop()

	require.NoError(t, err, "cancellation is not an error")
	assert.Equal(t, Stopped, result.State)
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, uint64(3), result.Frames)
	assert.True(t, result.SafeSent)

	frames := tr.universes(t)
	require.Len(t, frames, 4)
	assert.True(t, frames[3].IsDark(), "off frame before Stopped")
}

func TestRunAlreadyCancelled(t *testing.T) {
	tr := &recordingTransport{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _ := newFakeSession(t, par6Strobe(t, 8, time.Second), tr)
	result, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stopped, result.State)
	assert.Equal(t, uint64(0), result.Frames)

	frames := tr.universes(t)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].IsDark())
}

func TestRunAlwaysFailingTransport(t *testing.T) {
	cause := errors.New("write /dev/ttyUSB0: input/output error")
	tr := &recordingTransport{failWrite: func(int) error { return cause }}

	s, _ := newFakeSession(t, par6Strobe(t, 8, time.Second), tr)
	result, err := s.Run(context.Background())

	require.Error(t, err)
	assert.True(t, dmx.IsTransmitError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Failed, result.State)
	assert.Equal(t, Failed, s.State())
	assert.Equal(t, uint64(0), result.Frames)
	assert.False(t, result.SafeSent)
	assert.Equal(t, 2, tr.writes, "one phase frame and one best-effort off frame")
}

func TestRunFailureMidRunStillSendsOffFrame(t *testing.T) {
	cause := errors.New("transient")
	tr := &recordingTransport{failWrite: func(n int) error {
		if n == 3 {
			return cause
		}
		return nil
	}}

	s, fc := newFakeSession(t, par6Strobe(t, 8, time.Second), tr)
	stop := driveClock(fc)
	result, err := s.Run(context.Background())
	stop()

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Failed, result.State)
	assert.Equal(t, uint64(2), result.Frames)
	assert.True(t, result.SafeSent)

	frames := tr.universes(t)
	require.Len(t, frames, 3)
	assert.True(t, frames[2].IsDark())
}

func TestRunTwice(t *testing.T) {
	s, _ := newFakeSession(t, par6Strobe(t, 8, 0), &recordingTransport{})
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	_, err := NewSession(dmx.NewBuffer(&recordingTransport{}), Config{Frequency: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSession(nil, Config{Frequency: 8})
	assert.Error(t, err)
}

func TestRunRealClock(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time test")
	}

	tr := &recordingTransport{}
	s, err := NewSession(dmx.NewBuffer(tr), par6Strobe(t, 8, 250*time.Millisecond))
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Completed, result.State)
	assert.GreaterOrEqual(t, result.Frames, uint64(2))
	assert.LessOrEqual(t, result.Frames, uint64(5))
	assert.GreaterOrEqual(t, result.Elapsed, 250*time.Millisecond)

	frames := tr.universes(t)
	require.NotEmpty(t, frames)
	assert.True(t, frames[len(frames)-1].IsDark())
}

func TestStateAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.True(t, Failed.Terminal())
	assert.False(t, Running.Terminal())

	assert.Equal(t, "on", PhaseOn.String())
	assert.Equal(t, PhaseOff, PhaseOn.Flip())
	assert.Equal(t, PhaseOn, PhaseOff.Flip())
}
