package logger

import "sync/atomic"

var global atomic.Pointer[Logger]

// SetGlobalLogger replaces the process-wide logger.
func SetGlobalLogger(l *Logger) { global.Store(l) }

// GetGlobalLogger returns the process-wide logger. Until a host sets one it
// is a console logger at info.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewDefault("endpoints"))
	return global.Load()
}

// WithComponent tags the global logger with a component name.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// Info logs through the global logger.
func Info(msg string, fields ...map[string]any) { GetGlobalLogger().Info(msg, fields...) }
