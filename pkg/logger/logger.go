package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap behind the printf-style API the rest of the codebase uses.
type Logger struct {
	info  *zap.SugaredLogger
	warn  *zap.SugaredLogger
	error *zap.SugaredLogger
}

func New() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}
	sugar := base.Sugar()

	return &Logger{
		info:  sugar,
		warn:  sugar,
		error: sugar,
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Errorf(format, args...)
}

func (l *Logger) Sync() {
	_ = l.info.Sync()
}
