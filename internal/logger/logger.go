package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"mentor-match/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	singleton *slog.Logger
	once      sync.Once
)

// Rotation limits for LOG_FILE output.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Init initializes the singleton logger from the provided config.
// It is thread-safe and idempotent - the first successful call wins,
// and subsequent calls return the same logger instance.
//
// When cfg.LogFile is set, records are written to stdout and to a
// size-rotated file at that path.
func Init(cfg config.Config) (*slog.Logger, error) {
	once.Do(func() {
		singleton = slog.New(newHandler(output(cfg), cfg))
	})

	return singleton, nil
}

// L returns the singleton logger, or slog.Default() before Init has run.
func L() *slog.Logger {
	if singleton == nil {
		return slog.Default()
	}
	return singleton
}

func output(cfg config.Config) io.Writer {
	if cfg.LogFile == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	})
}

func newHandler(w io.Writer, cfg config.Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}

	switch cfg.LogFormat {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "json":
		fallthrough
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
