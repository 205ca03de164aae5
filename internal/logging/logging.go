// Package logging builds the process-wide zap logger: JSON lines to
// stderr, one event per line, carrying whatever fields the call site
// attaches. stdout is reserved for user-facing command output.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors the three verbosity tiers the CLI's global flags select
// between.
type Level int

const (
	LevelQuiet Level = iota
	LevelNormal
	LevelVerbose
)

// New builds a zap.Logger that writes JSON lines to stderr at the given
// level. LevelQuiet suppresses everything below Error; LevelVerbose
// enables Debug.
func New(level Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "event"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.LevelKey = "level"

	var zapLevel zapcore.Level
	switch level {
	case LevelQuiet:
		zapLevel = zapcore.ErrorLevel
	case LevelVerbose:
		zapLevel = zapcore.DebugLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zapLevel,
	)
	return zap.New(core)
}

// Event logs a single structured event line at Info, the common case
// for lifecycle operations (kild created, worktree removed, health
// reconciled).
func Event(logger *zap.Logger, name string, fields ...zap.Field) {
	logger.Info(name, fields...)
}
