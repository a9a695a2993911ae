package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/csi/internal/engine/opts"
)

// FromEnv reads the CSI_* variables into a layer. Every malformed value is
// reported; the returned layer still carries the valid ones.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	lookup := func(key string) (string, bool) {
		raw := strings.TrimSpace(getenv(key))
		return raw, raw != ""
	}
	setString := func(target **string, key string) {
		if raw, ok := lookup(key); ok {
			*target = &raw
		}
	}
	setPatterns := func(target **[]string, key string) {
		if raw, ok := lookup(key); ok {
			list := engineopts.SplitPatterns([]string{raw})
			*target = &list
		}
	}
	setBool := func(target **bool, key string) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}

	setBool(&cfg.Engine.Recursive, "CSI_RECURSIVE")
	setBool(&cfg.Engine.IgnoreCase, "CSI_IGNORE_CASE")
	setBool(&cfg.Engine.InvertMatch, "CSI_INVERT_MATCH")
	setBool(&cfg.Engine.WholeWord, "CSI_WHOLE_WORD")
	setBool(&cfg.Engine.CountOnly, "CSI_COUNT_ONLY")
	setString(&cfg.Engine.Color, "CSI_COLOR")
	setInt(&cfg.Engine.ContextLines, "CSI_CONTEXT_LINES", 0, math.MaxInt)
	setPatterns(&cfg.Engine.Includes, "CSI_INCLUDE")
	setPatterns(&cfg.Engine.Excludes, "CSI_EXCLUDE")
	setInt(&cfg.Engine.MaxColumns, "CSI_MAX_COLUMNS", 0, math.MaxInt)

	setString(&cfg.Log.Level, "CSI_LOG_LEVEL")
	setString(&cfg.Log.Format, "CSI_LOG_FORMAT")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
