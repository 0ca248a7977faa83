package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log defaults to a no-op logger so packages can log safely in tests
// without calling Init.
var log = zap.NewNop()

// Init builds the process-wide logger: a colored console encoder in
// development, JSON in production.
func Init(development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	log = built
	return nil
}

func Sync() {
	_ = log.Sync()
}

// L exposes the underlying logger for callers that need it directly.
func L() *zap.Logger {
	return log
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}
