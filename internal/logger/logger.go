package logger

import (
	"context"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelAlways sits above Error so audit records survive any level filter.
// Chat traffic (say, shout, talk) is logged at this level.
const LevelAlways = slog.Level(12)

var logger *slog.Logger

// Initialize sets up the process-wide logger from the given configuration.
func Initialize(config Config) error {
	var handlers []slog.Handler

	level := parseLevel(config.Level)

	opts := func() *slog.HandlerOptions {
		return &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.LevelKey {
					if lv, ok := a.Value.Any().(slog.Level); ok && lv == LevelAlways {
						a.Value = slog.StringValue("ALWAYS")
					}
				}
				return a
			},
		}
	}

	if config.ConsoleEnabled {
		if config.ConsoleFormat == "json" {
			handlers = append(handlers, slog.NewJSONHandler(os.Stdout, opts()))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stdout, opts()))
		}
	}

	if config.FileEnabled {
		rotator := &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.FileMaxSizeMB,
			MaxBackups: config.FileMaxBackups,
			MaxAge:     config.FileMaxAgeDays,
		}
		if config.FileFormat == "json" {
			handlers = append(handlers, slog.NewJSONHandler(rotator, opts()))
		} else {
			handlers = append(handlers, slog.NewTextHandler(rotator, opts()))
		}
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}

	if len(handlers) == 1 {
		logger = slog.New(handlers[0])
	} else {
		logger = slog.New(newMultiHandler(handlers...))
	}

	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message.
func Info(msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warning logs a warning message.
func Warning(msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message.
func Error(msg string, args ...any) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Always logs a record that bypasses level filtering. Used for the chat
// audit trail, which must be recorded even when the level is raised.
func Always(msg string, args ...any) {
	if logger != nil {
		logger.Log(nil, LevelAlways, msg, args...)
	}
}

// multiHandler fans a record out to every underlying handler.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return newMultiHandler(handlers...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return newMultiHandler(handlers...)
}
