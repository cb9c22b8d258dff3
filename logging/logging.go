package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-nullcfg/config"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config and defaults to INFO if invalid or empty.
// Format "text" selects the key=value handler; anything else yields JSON.
// Attributes holding config.Null or a *config.Section are rendered as the
// string "null" and the section path respectively.
func NewLogger(cfg LoggerConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   cfg.AddSource,
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: replaceConfigValues,
	}

	var handler slog.Handler

	if strings.EqualFold(cfg.Format, FormatText) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, case-insensitively.
// Unknown names map to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceConfigValues(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}

	switch v := attr.Value.Any().(type) {
	case config.NullValue:
		return slog.String(attr.Key, "null")
	case *config.Section:
		if v == nil {
			return slog.String(attr.Key, "null")
		}

		return slog.String(attr.Key, "section:"+v.Path())
	default:
		return attr
	}
}
