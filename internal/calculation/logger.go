package calculation

import (
	"fmt"
	"log/slog"
)

// Logger receives the engine's diagnostics. Engines start with NopLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// SlogLogger adapts a *slog.Logger, tagging every record with a component.
type SlogLogger struct {
	L         *slog.Logger
	Component string
}

// NewSlogLogger wraps l; a nil l uses slog.Default().
func NewSlogLogger(l *slog.Logger, component string) SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return SlogLogger{L: l, Component: component}
}

func (s SlogLogger) Debugf(format string, args ...any) {
	s.L.Debug(fmt.Sprintf(format, args...), "component", s.Component)
}

func (s SlogLogger) Infof(format string, args ...any) {
	s.L.Info(fmt.Sprintf(format, args...), "component", s.Component)
}

func (s SlogLogger) Warnf(format string, args ...any) {
	s.L.Warn(fmt.Sprintf(format, args...), "component", s.Component)
}

func (s SlogLogger) Errorf(format string, args ...any) {
	s.L.Error(fmt.Sprintf(format, args...), "component", s.Component)
}
