package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.Default()

// Init configures the package logger. Development gets a human-readable text
// handler, everything else JSON.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets callers pass a bare error (or any single value) instead of a
// key-value pair.
func normalize(args []any) []any {
	if len(args) != 1 {
		return args
	}

	if err, ok := args[0].(error); ok {
		return []any{slog.Any("error", err)}
	}

	return []any{slog.Any("detail", args[0])}
}
