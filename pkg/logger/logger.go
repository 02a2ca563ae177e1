// Package logger provides a zap-based application logger.
package logger

import "go.uber.org/zap"

// Log is the global zap logger used across the service. It defaults to
// a nop logger so library code can log before Init runs.
var Log = zap.NewNop()

// Init configures the global logger in production mode, tagging every
// entry with the service name.
func Init(service string) {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Log = l.With(zap.String("service", service))
}

// Sync flushes buffered entries; call on shutdown.
func Sync() {
	_ = Log.Sync()
}
