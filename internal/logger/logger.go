// Package logger wraps a process-wide zap logger with a console
// encoder. Handlers report failures through HTTP responses; this
// logger covers the infrastructure paths (startup, queue, cron).
package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02 15:04:05"))
}

func init() {
	config := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "message",
			LevelKey:     "level",
			TimeKey:      "time",
			CallerKey:    "caller",
			EncodeLevel:  zapcore.CapitalLevelEncoder,
			EncodeTime:   timeEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	var err error
	log, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) { log.Info(msg, fields...) }

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) { log.Warn(msg, fields...) }

// Error logs an error message.
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Fatal logs a message and exits.
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

// Sync flushes buffered log entries. Call on shutdown.
func Sync() { _ = log.Sync() }
