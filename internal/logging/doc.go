// Package logging provides structured logging for dmxstrobe.
//
// This package wraps a global zap logger with convenience functions. It is
// silent unless a level is given with --log-level or the DMXSTROBE_LOG_LEVEL
// environment variable, so the CLI output stays clean by default.
//
// # Log Levels
//
//   - Debug: frame dumps, per-frame timing
//   - Info: port open/close, session start and end
//   - Warn: failed writes, best-effort cleanup failures
//   - Error: fatal command failures
//
// # Specialized Logging
//
//	logging.LogFrame("sent", frame)            // annotated hex dump, debug only
//	logging.LogSession(id, "completed", zap.Uint64("frames", n))
//	logging.LogPort("/dev/ttyUSB0", "opened", elapsed)
//
// # Configuration
//
//	if err := logging.Initialize(logLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Logs go to stderr in console format so they never mix with command output.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Initialize and SetLogger
// must be called before other goroutines start logging.
package logging
