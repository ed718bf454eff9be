package auth

import (
	"fmt"
	"log/slog"
)

// SlogLogger adapts a slog.Logger to the printf-style Logger interface.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an slog.Logger; a nil argument uses slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Debug(format string, args ...any) {
	s.l.Debug(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Info(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Error(format string, args ...any) {
	s.l.Error(fmt.Sprintf(format, args...))
}

var _ Logger = (*SlogLogger)(nil)
