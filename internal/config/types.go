package config

import (
	"strings"

	"github.com/phyten/csi/internal/engine"
)

// EngineConfig is one configuration layer. A nil field leaves the value of
// lower layers untouched.
type EngineConfig struct {
	Recursive    *bool     `yaml:"recursive" toml:"recursive" json:"recursive"`
	IgnoreCase   *bool     `yaml:"ignore_case" toml:"ignore_case" json:"ignore_case"`
	InvertMatch  *bool     `yaml:"invert_match" toml:"invert_match" json:"invert_match"`
	WholeWord    *bool     `yaml:"whole_word" toml:"whole_word" json:"whole_word"`
	CountOnly    *bool     `yaml:"count_only" toml:"count_only" json:"count_only"`
	Color        *string   `yaml:"color" toml:"color" json:"color"`
	ContextLines *int      `yaml:"context_lines" toml:"context_lines" json:"context_lines"`
	Includes     *[]string `yaml:"include" toml:"include" json:"include"`
	Excludes     *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	MaxColumns   *int      `yaml:"max_columns" toml:"max_columns" json:"max_columns"`
}

type LogConfig struct {
	Level  *string `yaml:"level" toml:"level" json:"level"`
	Format *string `yaml:"format" toml:"format" json:"format"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	Log    LogConfig    `yaml:"log" toml:"log" json:"log"`
}

type EngineSettings struct {
	Recursive    bool
	IgnoreCase   bool
	InvertMatch  bool
	WholeWord    bool
	CountOnly    bool
	Color        string
	ContextLines int
	Includes     []string
	Excludes     []string
	MaxColumns   int
}

type LogSettings struct {
	Level  string
	Format string
}

func DefaultEngineSettings() EngineSettings {
	return EngineSettings{Color: "never"}
}

func DefaultLogSettings() LogSettings {
	return LogSettings{Level: "off", Format: "console"}
}

// ApplyToOptions copies the settings into opts. Color is left to the caller,
// which needs the output stream to resolve "auto".
func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Recursive = s.Recursive
	opts.IgnoreCase = s.IgnoreCase
	opts.InvertMatch = s.InvertMatch
	opts.WholeWord = s.WholeWord
	opts.CountOnly = s.CountOnly
	opts.ContextLines = s.ContextLines
	opts.Includes = cloneStrings(s.Includes)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.MaxColumns = s.MaxColumns
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(norm, "-", "_")
}
