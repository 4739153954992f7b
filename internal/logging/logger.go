// Package logging builds the zap logger shared by the extractor binaries.
//
// Output always goes to stderr, so stdio mode keeps stdout free for the MCP
// protocol. When a log file is configured, entries are also written there as
// JSON and the file is rotated by size.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/a3tai/mcp-house-extractor/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console or json, for the stderr sink
	File   string // optional; empty disables the file sink

	// Rotation settings for File.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Stacktrace attaches stack traces to warnings and errors.
	Stacktrace bool

	// Output replaces stderr; tests point it at a buffer.
	Output io.Writer
}

// NewDefaultConfig returns console logging at info level.
func NewDefaultConfig() *Config {
	return &Config{
		Level:      config.DefaultLogLevel,
		Format:     "console",
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// FromAppConfig derives logging settings from the application config.
func FromAppConfig(cfg *config.Config) *Config {
	c := NewDefaultConfig()
	c.Level = cfg.LogLevel
	c.File = cfg.LogFile
	c.Stacktrace = cfg.IsDebug()
	return c
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	if c.File != "" && c.MaxSizeMB <= 0 {
		return fmt.Errorf("max size must be positive when a log file is set, got %d", c.MaxSizeMB)
	}
	return nil
}

// New builds a logger from cfg. The returned close function flushes buffered
// entries and releases the log file; call it before exiting.
func New(cfg *Config) (*zap.Logger, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(zapcore.AddSync(out)), level),
	}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(newEncoder("json"), zapcore.AddSync(file), level))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Stacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.WarnLevel))
	}
	logger := zap.New(zapcore.NewTee(cores...), opts...)

	closeFn := func() error {
		err := Sync(logger)
		if file != nil {
			err = errors.Join(err, file.Close())
		}
		return err
	}
	return logger, closeFn, nil
}

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// Sync flushes logger, ignoring the harmless error returned when syncing a
// terminal or pipe.
func Sync(logger *zap.Logger) error {
	err := logger.Sync()
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

// isStdoutSyncError checks if error is harmless stdout/stderr sync error.
// On Linux, syncing stdout/stderr returns EINVAL or ENOTTY which are safe to ignore.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
