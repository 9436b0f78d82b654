// Package logging provides the structured logger used by all launcher packages.
// It wraps a sugared zap logger that can additionally write to a rotating log file.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the logging configuration
type Config struct {
	Level      string `mapstructure:"level"` // "debug", "info", "warn", "error"
	File       string `mapstructure:"file"`  // optional log file, rotated by lumberjack
	MaxSizeMB  int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	// Output is where console logs go. Defaults to stderr so the game output on stdout stays clean
	Output io.Writer `mapstructure:"-"`
}

// Log is the globally accessible sugared logger instance.
// It is a no-op logger until Init is called.
var Log = zap.NewNop().Sugar()

// Init (re)initializes the global logger
func Init(cfg Config) error {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return err
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(out), level),
	}

	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize == 0 {
			maxSize = 10
		}
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
		})
		// the file always gets debug output
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, zapcore.DebugLevel))
	}

	Log = zap.New(zapcore.NewTee(cores...)).Sugar()
	return nil
}

// Sync flushes buffered log entries
func Sync() {
	_ = Log.Sync()
}
