// Package logging builds the application's zap loggers from the
// logging configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"brian/internal/config"
)

// New builds a logger writing to stderr. The returned atomic level can
// be adjusted at runtime, which the config watcher uses on reload.
func New(cfg config.Logging) (*zap.Logger, zap.AtomicLevel, error) {
	return build(cfg, []string{"stderr"})
}

// NewFile builds a logger writing to the given file. The terminal
// frontend owns the screen, so its logs go to a file instead.
func NewFile(cfg config.Logging, path string) (*zap.Logger, zap.AtomicLevel, error) {
	return build(cfg, []string{path})
}

func build(cfg config.Logging, outputs []string) (*zap.Logger, zap.AtomicLevel, error) {
	var level zapcore.Level
	if err := level.Set(cfg.Level); err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("parse log level: %w", err)
	}
	atomic := zap.NewAtomicLevelAt(level)

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = atomic
	zcfg.OutputPaths = outputs
	zcfg.ErrorOutputPaths = outputs

	logger, err := zcfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("build logger: %w", err)
	}
	return logger, atomic, nil
}

// Level parses a configured level string, for watcher callbacks.
func Level(s string) (zapcore.Level, error) {
	var level zapcore.Level
	err := level.Set(s)
	return level, err
}
