package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig controls when a log file is rotated and how many old files are kept.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps a week of daily-sized files.
var DefaultRotation = RotationConfig{
	MaxSizeMB:  10,
	MaxBackups: 7,
	MaxAgeDays: 7,
}

// NewRotatingFile returns an append-only writer that rotates path according to cfg.
func NewRotatingFile(path string, cfg RotationConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// NewFileLogger creates a Logger backed by a rotating file.
func NewFileLogger(path, level string, cfg RotationConfig) (*Logger, io.Closer) {
	w := NewRotatingFile(path, cfg)
	return New(w, level), w
}
