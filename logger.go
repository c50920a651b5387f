package luminicad

import (
	"log/slog"

	"github.com/rasenga223/luminicad/internal/logging"
)

// SetLogger configures the logger for luminicad and all its sub-packages.
// By default, luminicad produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by luminicad:
//   - [slog.LevelDebug]: step transitions, rejected input, document
//     transactions, rollbacks, undo and redo
//   - [slog.LevelInfo]: command commits
//   - [slog.LevelWarn]: failed commits and failed commands
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	luminicad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by luminicad.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
