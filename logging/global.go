// Package logging wires log/slog for the service: a text handler on the
// console and, when a directory is configured, a JSON handler on a weekly
// rotating file. Package-level helpers fall back to stderr before init.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// Options configures InitLoggerWithOptions
type Options struct {
	Dir            string // empty disables file logging
	Env            string
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
}

type LoggingService struct {
	Logger   *slog.Logger
	rotating *RotatingLogger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger with default options
func InitLogger(logDir string) {
	InitLoggerWithOptions(Options{
		Dir:            logDir,
		RetentionWeeks: 4,
		MaxFileSize:    100 * 1024 * 1024,
	})
}

// InitLoggerWithOptions initializes the global logger and sets it as slog default.
// If the log directory cannot be used the logger degrades to console only.
func InitLoggerWithOptions(opts Options) *LoggingService {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ConsoleLogLevel(opts.Env, opts.Level),
	})

	service := &LoggingService{}
	handlers := []slog.Handler{console}

	if opts.Dir != "" {
		rotating, err := NewRotatingLogger(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
		if err != nil {
			slog.New(console).Error("File logging disabled", "error", err)
		} else {
			service.rotating = rotating
			// File always records debug and above
			handlers = append(handlers, slog.NewJSONHandler(rotating, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
	}

	if len(handlers) == 1 {
		service.Logger = slog.New(console)
	} else {
		service.Logger = slog.New(&multiHandler{handlers: handlers})
	}

	DefaultLoggingService = service
	slog.SetDefault(service.Logger)
	return service
}

// Close releases the rotating file, if any
func (s *LoggingService) Close() error {
	if s == nil || s.rotating == nil {
		return nil
	}
	return s.rotating.Close()
}

// Logger returns the global logger, or a stderr logger before init
func Logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// multiHandler fans records out to several handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
