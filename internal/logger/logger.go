// Package logger builds the zap loggers used across Jobtune.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys shared by components
const (
	FieldRequestID = "request_id"
	FieldComponent = "component"
)

// New builds a logger writing to stdout. json selects the JSON encoder over
// the console one and debug lowers the level to Debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	return NewTo("stdout", json, debug)
}

// NewTo is New with an explicit zap output path. CLI commands log to stderr
// so stdout carries only their JSON output.
func NewTo(output string, json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Component returns l tagged with a component name.
func Component(l *zap.Logger, name string) *zap.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return OrNop(l)
	}
	return OrNop(l).With(zap.String(FieldComponent, name))
}

// Truncate shortens s to limit runes, appending an ellipsis when truncated.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
