// Package diagnostics is the hook's debug log side channel. It never writes
// to stdout or stderr and is silent by default; setting READONLY_HOOK_DEBUG
// to a positive integer turns it on at the matching verbosity.
package diagnostics

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bsmith/readonly-bash-hook/internal/redact"
)

const debugEnvVar = "READONLY_HOOK_DEBUG"

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// VerbosityFromEnv reads READONLY_HOOK_DEBUG and returns the verbosity level
// (1, 2, or 3) and whether logging should be enabled at all. Anything unset,
// empty, non-numeric, or non-positive disables logging.
func VerbosityFromEnv() (level int, enabled bool) {
	raw := os.Getenv(debugEnvVar)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > 3 {
		n = 3
	}
	return n, true
}

func zapLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case 1:
		return zapcore.WarnLevel
	case 2:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// NewLogger builds a Zap logger writing JSON lines to a rotated file at
// path. verbosity 0 (or any non-positive value) returns a no-op logger that
// never opens path, so the hot path never pays for a log file it doesn't
// need.
func NewLogger(path string, verbosity int) *zap.Logger {
	if verbosity <= 0 || path == "" {
		return zap.NewNop()
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zapLevel(verbosity),
	)
	return zap.New(core)
}

// RedactField wraps a command or argument string in a zap.Field with any
// embedded credential redacted first, since a rejected or fallen-through
// command may legitimately contain one.
func RedactField(key, value string) zap.Field {
	return zap.String(key, redact.Redact(value))
}
