package loot

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while input goroutines are logging.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by loot. By default nothing is
// logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Debug: per-frame statistics in debug mode, dropped input events
//   - Info: resource lifecycle (images loaded, settings read)
//   - Warn: recoverable failures (font fallback, screenshot errors)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// logger returns the current logger.
func logger() *zap.Logger {
	return loggerPtr.Load()
}
