package mlog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	// Level, See also zapcore.ParseLevel.
	Level string `yaml:"level"`

	// File that logger will be writen into.
	// Default is stderr.
	File string `yaml:"file"`

	// Production enables json output.
	Production bool `yaml:"production"`
}

var (
	stderr = zapcore.Lock(os.Stderr)
	lvl    = zap.NewAtomicLevelAt(zap.InfoLevel)
	l      = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), stderr, lvl))
	s      = l.Sugar()

	nop = zap.NewNop()
)

// NewLogger builds a logger from lc. Unset fields fall back to an info level
// console logger writing to stderr.
func NewLogger(lc *LogConfig) (*zap.Logger, error) {
	lvl, err := parseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	var out zapcore.WriteSyncer
	if len(lc.File) > 0 {
		f, _, err := zap.Open(lc.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file, %w", err)
		}
		out = zapcore.Lock(f)
	} else {
		out = stderr
	}

	var enc zapcore.Encoder
	if lc.Production {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, out, lvl)), nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if len(s) == 0 {
		return zap.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q, %w", s, err)
	}
	return lvl, nil
}

// L is a global logger.
func L() *zap.Logger {
	return l
}

// SetLevel sets the lowest logging level for the global logger.
func SetLevel(lv zapcore.Level) {
	lvl.SetLevel(lv)
}

// S is a global logger.
func S() *zap.SugaredLogger {
	return s
}

// Nop is a logger that never writes out logs.
func Nop() *zap.Logger {
	return nop
}
