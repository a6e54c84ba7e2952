// Package ui provides terminal UI components for the dmxstrobe CLI.
//
// This package uses Bubble Tea and Lipgloss to render terminal output for
// the strobe, set, blackout and ports commands. Apart from the live strobe
// display, the components follow a "print once" pattern: they render styled
// boxes to a writer and return.
//
// # Components
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Bar, lamp and frame counter for a running strobe
//   - Result: Success, failure and warning boxes with styled details
//   - Confirmation: Photosensitivity warning that must be accepted
//   - StrobeModel: Bubble Tea model driving Progress from session events
//
// Parameters and details are maps; they are always rendered sorted by key
// so output is stable between runs.
//
// # Live Strobe Display
//
// RunStrobe starts a Bubble Tea program and the session side by side. The
// session's observer forwards each frame as an EventMsg; when the session
// returns, a DoneMsg makes the program quit. Pressing q, esc or ctrl+c
// cancels the session context rather than exiting directly, so the display
// stays up until the lights-off frame has gone out:
//
//	res, err := ui.RunStrobe(ctx, "Strobing par...", cfg.Duration, os.Stdout,
//	    func(ctx context.Context, observe func(strobe.Event)) (*strobe.Result, error) {
//	        sess, err := strobe.NewSession(buf, cfg, strobe.WithObserver(observe))
//	        if err != nil {
//	            return nil, err
//	        }
//	        return sess.Run(ctx)
//	    })
//
// When stdout is not a terminal (see IsTerminal), commands should skip
// RunStrobe and print only the final result.
//
// # Logging Integration
//
// This package expects logging to be controlled via the DMXSTROBE_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui
