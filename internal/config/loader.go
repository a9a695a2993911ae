package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/csi/internal/engine/opts"
)

var engineKeyMap = map[string]string{
	"recursive":     "recursive",
	"ignore_case":   "ignore_case",
	"invert_match":  "invert_match",
	"invert":        "invert_match",
	"whole_word":    "whole_word",
	"count_only":    "count_only",
	"color":         "color",
	"colour":        "color",
	"context_lines": "context_lines",
	"context":       "context_lines",
	"include":       "include",
	"includes":      "include",
	"exclude":       "exclude",
	"excludes":      "exclude",
	"max_columns":   "max_columns",
}

var logKeyMap = map[string]string{
	"level":      "level",
	"log_level":  "level",
	"format":     "format",
	"log_format": "format",
}

// topLevelLogKeys are the log keys accepted outside the log section.
var topLevelLogKeys = map[string]string{
	"log_level":  "level",
	"log_format": "format",
}

// Load reads a YAML, TOML or JSON config file chosen by extension.
// An empty path yields an empty Config.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)
	logSection := make(map[string]any)

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "engine":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("engine: %w", err)
			}
			if err := fillSection(engineSection, sub, engineKeyMap, "engine"); err != nil {
				return cfg, err
			}
		case "log":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("log: %w", err)
			}
			if err := fillSection(logSection, sub, logKeyMap, "log"); err != nil {
				return cfg, err
			}
		default:
			if canonical, ok := engineKeyMap[norm]; ok {
				engineSection[canonical] = value
				continue
			}
			if canonical, ok := topLevelLogKeys[norm]; ok {
				logSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, fmt.Errorf("engine: %w", err)
	}
	if err := assignLog(logSection, &cfg.Log); err != nil {
		return cfg, fmt.Errorf("log: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	bools := map[string]**bool{
		"recursive":    &dst.Recursive,
		"ignore_case":  &dst.IgnoreCase,
		"invert_match": &dst.InvertMatch,
		"whole_word":   &dst.WholeWord,
		"count_only":   &dst.CountOnly,
	}
	for key, value := range section {
		if target, ok := bools[key]; ok {
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			*target = &b
			continue
		}
		switch key {
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Color = &trimmed
		case "context_lines":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.ContextLines = &n
		case "max_columns":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxColumns = &n
		case "include":
			list, err := expectPatternList(value, key)
			if err != nil {
				return err
			}
			dst.Includes = &list
		case "exclude":
			list, err := expectPatternList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignLog(section map[string]any, dst *LogConfig) error {
	for key, value := range section {
		str, err := expectString(value, key)
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(str)
		switch key {
		case "level":
			dst.Level = &trimmed
		case "format":
			dst.Format = &trimmed
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

// expectPatternList accepts one expression as a string or several as a list.
// Expressions are kept verbatim: a regular expression may contain any
// separator and leading or trailing spaces are significant.
func expectPatternList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return out, nil
	case []string:
		return append([]string(nil), v...), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}
