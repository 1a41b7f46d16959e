// Package debug provides conditional debug logging for dq.
//
// Debug logging is enabled by setting the DQ_DEBUG environment variable or by
// passing --verbose:
//
//	DQ_DEBUG=1 dq list
//
// The interactive UI owns the terminal, so DQ_DEBUG_FILE redirects output to a
// file. When disabled (default), all functions are no-ops.
//
//	debug.Log("loaded %d records", n)
//	debug.L().Debug("fetch", zap.String("ref", ref))
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop()
	closeFn = func() {}
)

func init() {
	if os.Getenv("DQ_DEBUG") != "" {
		SetEnabled(true)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled turns debug logging on or off. Output goes to DQ_DEBUG_FILE when
// set, stderr otherwise.
func SetEnabled(e bool) {
	if !e {
		swap(false, zap.NewNop(), func() {})
		return
	}
	if path := os.Getenv("DQ_DEBUG_FILE"); path != "" {
		if err := SetOutputFile(path); err == nil {
			return
		}
	}
	swap(true, newLogger(zapcore.Lock(os.Stderr)), func() {})
}

// SetOutputFile enables debug logging into path (appending).
func SetOutputFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	swap(true, newLogger(zapcore.AddSync(f)), func() { _ = f.Close() })
	return nil
}

func newLogger(ws zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, zapcore.DebugLevel)
	return zap.New(core).Named("DQ_DEBUG")
}

func swap(e bool, l *zap.Logger, c func()) {
	mu.Lock()
	old := closeFn
	_ = logger.Sync()
	enabled, logger, closeFn = e, l, c
	mu.Unlock()
	old()
}

// Close flushes and releases the debug output.
func Close() {
	swap(false, zap.NewNop(), func() {})
}

// L returns the structured logger. It is a no-op logger when disabled.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	L().Debug(fmt.Sprintf(format, args...))
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	L().Debug(name, zap.Duration("took", d))
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("load")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	L().Debug("-> " + name)
	start := time.Now()
	return func() {
		L().Debug("<- "+name, zap.Duration("took", time.Since(start)))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if !Enabled() {
		return
	}
	L().Debug(fmt.Sprintf("%s: %T = %+v", name, v, v))
}
