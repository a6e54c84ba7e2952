// Package strobe implements the timed on/off oscillator.
//
// A Session alternates a dmx.Buffer between two pre-built universe snapshots
// (ON and OFF) at a fixed rate for a bounded duration:
//
//	cfg, _ := strobe.WhiteStrobe(par, 8, 10*time.Second)
//	session, _ := strobe.NewSession(buf, cfg)
//	result, err := session.Run(ctx)
//
// # Timing
//
// Each snapshot is held for half a period, 1/(2f): 62.5 ms at 8 Hz. After a
// frame is written the session sleeps for the half-period minus the time the
// iteration already took, never negative and never past the deadline. The
// run therefore ends within one half-period of the requested duration. The
// exact frame count is not guaranteed; transport latency and scheduling
// jitter are unbounded.
//
// Time comes from a k8s.io/utils/clock Clock so tests can drive the loop with
// a fake clock.
//
// # States
//
//	Idle -> Running -> Completed   duration elapsed
//	                -> Stopped     context cancelled
//	                -> Failed      transmit error
//
// Cancellation is checked before every frame and wakes the inter-frame sleep.
// A transmit already in progress always finishes.
//
// On every exit path the Safe snapshot (all zero unless configured) is loaded
// and sent once, so the fixture ends dark. A Failed run still attempts that
// frame before returning the *dmx.TransmitError. Nothing is retried.
//
// # Ownership
//
// The session is the single writer of its buffer while Run executes. It does
// not close the transport; the caller that opened it does.
package strobe
