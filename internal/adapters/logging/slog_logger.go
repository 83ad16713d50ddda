package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/infrastructure/config"
)

// SlogLogger adapts a *slog.Logger to common.Logger
type SlogLogger struct {
	logger *slog.Logger
}

var _ common.Logger = (*SlogLogger)(nil)

// NewSlogLogger wraps logger; nil uses slog.Default()
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Log writes one record; metadata keys become attributes in sorted order
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	attrs := make([]any, 0, len(metadata)*2)
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		attrs = append(attrs, key, metadata[key])
	}
	l.logger.Log(context.Background(), slogLevel(level), message, attrs...)
}

// slogLevel maps the application levels; unknown levels log at info
func slogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case common.LevelDebug:
		return slog.LevelDebug
	case common.LevelWarning, "WARN":
		return slog.LevelWarn
	case common.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a slog logger from configuration. The returned closer releases
// the log file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
	return NewWithWriter(cfg, w), closer, nil
}

// NewWithWriter builds a slog logger writing to w
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
