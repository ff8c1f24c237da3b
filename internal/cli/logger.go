package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger adapts a zap SugaredLogger to the Logger interfaces of the store and the HTTP API.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger wraps logger.
func NewLogger(logger *zap.Logger) Logger {
	return Logger{sugar: logger.Sugar()}
}

// Debug logs msg with key/value pairs at debug level.
func (l Logger) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

// Info logs msg with key/value pairs at info level.
func (l Logger) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

// Warn logs msg with key/value pairs at warn level.
func (l Logger) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

// Error logs msg with key/value pairs at error level.
func (l Logger) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

// buildZapLogger creates a JSON production logger, at debug level if verbose is set.
func buildZapLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}
