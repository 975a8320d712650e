package logging

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// timestampFormat is RFC 3339 UTC with fixed microsecond precision.
const timestampFormat = "2006-01-02T15:04:05.000000Z"

var (
	loggerOnce sync.Once
	baseLogger *zap.Logger
	loggerErr  error
	atomicLvl  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func encodeTimestamp(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(timestampFormat))
}

// encodeSeverity maps zap levels to Cloud Logging severity names.
func encodeSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString("DEBUG")
	case zapcore.InfoLevel:
		enc.AppendString("INFO")
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	case zapcore.ErrorLevel:
		enc.AppendString("ERROR")
	case zapcore.DPanicLevel:
		enc.AppendString("CRITICAL")
	case zapcore.PanicLevel:
		enc.AppendString("ALERT")
	case zapcore.FatalLevel:
		enc.AppendString("EMERGENCY")
	default:
		enc.AppendString("DEFAULT")
	}
}

func initLogger() {
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLvl
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = encodeTimestamp
	cfg.EncoderConfig.LevelKey = "severity"
	cfg.EncoderConfig.EncodeLevel = encodeSeverity
	cfg.EncoderConfig.MessageKey = "message"

	baseLogger, loggerErr = cfg.Build(zap.AddCaller())
	if loggerErr != nil {
		baseLogger = zap.NewNop()
	}
	baseLogger = baseLogger.With(zap.String("service", "weight-goal-api"))
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	loggerOnce.Do(initLogger)
	return baseLogger
}

// SetLevel changes the minimum level of the process logger. Unknown names
// leave the level untouched and return false.
func SetLevel(name string) bool {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return false
	}
	atomicLvl.SetLevel(lvl)
	return true
}

// Sync flushes buffered entries. Call during shutdown.
func Sync() error {
	loggerOnce.Do(initLogger)
	return baseLogger.Sync()
}

// Err reports logger initialization failure, if any.
func Err() error {
	loggerOnce.Do(initLogger)
	return loggerErr
}
