package opts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/csi/internal/engine"
	"github.com/phyten/csi/internal/termcolor"
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the baseline options before config, env and flags apply.
func Defaults() engine.Options {
	return engine.Options{
		Recursive:      false,
		IgnoreCase:     false,
		InvertMatch:    false,
		WholeWord:      false,
		CountOnly:      false,
		ContextLines:   0,
		MaxColumns:     0,
		Colorize:       false,
		HighlightStyle: termcolor.DefaultMatchStyle(),
	}
}

// NormalizeAndValidate checks ranges and compiles the search pattern and the
// filename filters. Any invalid regular expression is reported before a
// single file is read; such errors match engine.ErrInvalidPattern.
func NormalizeAndValidate(o *engine.Options) error {
	if len(o.Paths) == 0 {
		return errors.New("at least one file or directory is required")
	}
	if o.ContextLines < 0 {
		return fmt.Errorf("context_lines must be >= 0")
	}
	if o.MaxColumns < 0 {
		return fmt.Errorf("max_columns must be >= 0")
	}

	compiled, err := engine.CompilePattern(o.Pattern, o.IgnoreCase, o.WholeWord)
	if err != nil {
		return err
	}
	o.Compiled = compiled

	filters, err := engine.CompileFilters(o.Includes, o.Excludes)
	if err != nil {
		return err
	}
	o.Filters = filters
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// SplitPatterns splits whitespace-separated regular expressions. Commas are
// left alone since they are common in repetition counts.
func SplitPatterns(vals []string) []string {
	var out []string
	for _, raw := range vals {
		out = append(out, strings.Fields(raw)...)
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}
