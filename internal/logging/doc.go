// Package logging provides structured logging for wcagdemo.
//
// This package wraps a process-wide zap logger with convenience functions.
// Logging is silent by default so the terminal UI and JSON output are never
// interleaved with log lines; set WCAGDEMO_LOG_LEVEL (or pass --log-level)
// to enable it. Output always goes to stderr.
//
// # Log Levels
//
//   - Debug: key events, focus moves, rescans
//   - Info: server lifecycle, trap sessions, HTTP requests
//   - Warn: recoverable problems (bad client messages, reload failures)
//   - Error: startup failures
//
// # Usage
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.LogKeyEvent("playground", "Tab", false, "wrapped")
//
// Components that take an explicit *zap.Logger (the focus trap, the
// server) receive logging.Named("component").
package logging
