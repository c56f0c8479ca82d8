package logger

import (
	"io"
	"log/slog"
	"os"
)

// ServiceName is attached to every record.
const ServiceName = "dailyos-payments"

// New creates the service logger: JSON on stdout at Info level.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout, slog.LevelInfo)
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", ServiceName))
}
