// Package log wraps slog with a component tag so every subsystem's output is
// attributable without threading attribute slices around.
package log

import (
	"log/slog"
	"os"
)

type Logger struct {
	*slog.Logger
	component string
}

func New(component string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// WithComponent returns a logger tagged for a different subsystem.
func (l *Logger) WithComponent(component string) *Logger {
	return New(component)
}

func (l *Logger) Component() string {
	return l.component
}
