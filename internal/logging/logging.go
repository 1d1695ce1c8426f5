// Package logging builds the logr.Logger used across the module.
//
// Loggers are zap-backed through zapr. Verbosity follows logr conventions:
// V(0) is always on, DEBUG and TRACE are enabled by raising the level.
package logging

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...).
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

var (
	mu  sync.RWMutex
	def = logr.Discard()
)

// NewLogger returns a zap-backed logger enabled up to the given verbosity.
// development selects the human readable console encoder.
func NewLogger(verbosity int, development bool) (logr.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zl), nil
}

// NewTestLogger installs a development logger at TRACE verbosity as the
// package default and returns it.
func NewTestLogger() logr.Logger {
	l, err := NewLogger(TRACE, true)
	if err != nil {
		return logr.Discard()
	}
	SetDefault(l)

	return l
}

// SetDefault replaces the package default logger.
func SetDefault(l logr.Logger) {
	mu.Lock()
	def = l
	mu.Unlock()
}

// Default returns the package default logger (discard until set).
func Default() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return def
}

// OrDefault returns l unless it is the zero logr.Logger.
func OrDefault(l logr.Logger) logr.Logger {
	if l.GetSink() == nil {
		return Default()
	}

	return l
}
