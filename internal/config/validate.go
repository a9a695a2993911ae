package config

import (
	"fmt"
	"strings"

	"github.com/phyten/csi/internal/termcolor"
)

// NormalizeEngine canonicalizes the color mode and checks numeric ranges.
func NormalizeEngine(values EngineSettings) (EngineSettings, error) {
	mode, err := termcolor.ParseMode(values.Color)
	if err != nil {
		return values, fmt.Errorf("invalid color: %s", values.Color)
	}
	values.Color = mode.String()
	if values.ContextLines < 0 {
		return values, fmt.Errorf("context_lines must be >= 0")
	}
	if values.MaxColumns < 0 {
		return values, fmt.Errorf("max_columns must be >= 0")
	}
	return values, nil
}

func CanonicalizeLogLevel(raw string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "", "off", "none":
		return "off", nil
	case "warning":
		return "warn", nil
	case "debug", "info", "warn", "error":
		return level, nil
	default:
		return "", fmt.Errorf("invalid log level: %s", raw)
	}
}

func CanonicalizeLogFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "", "console", "text":
		return "console", nil
	case "json":
		return format, nil
	default:
		return "", fmt.Errorf("invalid log format: %s", raw)
	}
}

func NormalizeLog(values LogSettings) (LogSettings, error) {
	var err error
	values.Level, err = CanonicalizeLogLevel(values.Level)
	if err != nil {
		return values, err
	}
	values.Format, err = CanonicalizeLogFormat(values.Format)
	if err != nil {
		return values, err
	}
	return values, nil
}
