package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called so
// packages can log freely from tests.
var Log = zap.NewNop()

func Init() {
	InitWithLevel(false)
}

// InitWithLevel builds a development-style console logger. Debug output is
// only emitted when debug is true.
func InitWithLevel(debug bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		// Keep whatever logger we had rather than losing output entirely
		Log.Error("Could not build logger", zap.Error(err))
		return
	}
	Log = l
}

// Sync flushes buffered log entries. Errors from syncing stdout/stderr are
// ignored since they are expected on some terminals.
func Sync() {
	_ = Log.Sync()
}
