// Package monitoring holds the diagnostic log streams shared by the
// measurement pipeline and the command entrypoint.
//
// Three streams are kept apart so the hot path can trace every heartbeat
// without drowning operational messages:
//
//   - ops: actionable warnings and failures
//   - diag: lifecycle and shutdown progress
//   - trace: per-sample telemetry
//
// None of the streams default to stdout, which is the display surface.
package monitoring

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu          sync.RWMutex
	opsLogger   = newLogger("[rangefinder] ", os.Stderr)
	diagLogger  *log.Logger
	traceLogger *log.Logger

	// opsHook, when set, receives ops lines instead of opsLogger.
	opsHook func(format string, v ...interface{})
)

// SetLogger redirects the ops stream to f. Passing nil mutes it.
// SetLogWriters undoes the redirect.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		f = func(string, ...interface{}) {}
	}
	mu.Lock()
	opsHook = f
	mu.Unlock()
}

// SetLogWriters configures the three logging streams. Pass nil for any
// writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	opsLogger = newLogger("[rangefinder] ", ops)
	diagLogger = newLogger("[rangefinder] ", diag)
	traceLogger = newLogger("[rangefinder] ", trace)
	opsHook = nil
}

func newLogger(prefix string, w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

func printf(l **log.Logger, format string, args ...interface{}) {
	mu.RLock()
	logger := *l
	mu.RUnlock()
	if logger != nil {
		logger.Printf(format, args...)
	}
}

// Opsf logs to the ops stream (actionable warnings, errors, lost samples),
// or to the function installed by SetLogger.
func Opsf(format string, args ...interface{}) {
	mu.RLock()
	hook := opsHook
	mu.RUnlock()
	if hook != nil {
		hook(format, args...)
		return
	}
	printf(&opsLogger, format, args...)
}

// Diagf logs to the diag stream (stage lifecycle, shutdown ordering).
func Diagf(format string, args ...interface{}) { printf(&diagLogger, format, args...) }

// Tracef logs to the trace stream (per-heartbeat telemetry).
func Tracef(format string, args ...interface{}) { printf(&traceLogger, format, args...) }
