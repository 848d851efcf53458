package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if os.Getenv("EXPEDIENTE_DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	sugar = l.Sugar()
}

// Log carries an optional error attached via WithError.
type Log struct {
	err error
}

func New() *Log {
	return &Log{}
}

func (l *Log) WithError(err error) *Log {
	return &Log{err: err}
}

func (l *Log) Debug(s string) {
	if l.err != nil {
		sugar.Debugw(s, "error", l.err)
		return
	}
	sugar.Debug(s)
}

func (l *Log) Info(s string) {
	if l.err != nil {
		sugar.Infow(s, "error", l.err)
		return
	}
	sugar.Info(s)
}

func (l *Log) Warn(s string) {
	if l.err != nil {
		sugar.Warnw(s, "error", l.err)
		return
	}
	sugar.Warn(s)
}

func (l *Log) Error(s string) {
	if l.err != nil {
		sugar.Errorw(s, "error", l.err)
		return
	}
	sugar.Error(s)
}

// Character logs a line attributed to an in-game character.
func (l *Log) Character(name, s string) {
	sugar.Infow(s, "character", name)
}
