package main

import (
	"github.com/spf13/pflag"

	"github.com/phyten/csi/internal/config"
)

type cliFlags struct {
	recursive    bool
	ignoreCase   bool
	invertMatch  bool
	wholeWord    bool
	countOnly    bool
	colorize     bool
	contextLines int
	maxColumns   int
	includes     []string
	excludes     []string
	color        string
	configPath   string
	logLevel     string
	logFormat    string
}

func (f *cliFlags) bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "descend into directories")
	fs.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	fs.BoolVarP(&f.invertMatch, "invert-match", "v", false, "select non-matching lines")
	fs.BoolVarP(&f.wholeWord, "whole-word", "w", false, "match whole words only")
	fs.BoolVarP(&f.countOnly, "count-only", "c", false, "print only the total of selected lines")
	fs.BoolVar(&f.colorize, "colorize", false, "highlight matches (same as --color=always)")
	fs.IntVarP(&f.contextLines, "context-lines", "C", 0, "print N lines of context around each selected line")
	fs.StringArrayVar(&f.includes, "include", nil, "with -r, only scan files whose name matches `PATTERN` (repeatable)")
	fs.StringArrayVar(&f.excludes, "exclude", nil, "with -r, skip files whose name matches `PATTERN` (repeatable)")
	fs.StringVar(&f.color, "color", "never", "color output: auto|always|never")
	fs.IntVar(&f.maxColumns, "max-columns", 0, "truncate emitted lines to N cells (0 = unlimited)")
	fs.StringVar(&f.configPath, "config", "", "config file (default: .csi.{yaml,toml,json} searched upward, then $XDG_CONFIG_HOME/csi)")
	fs.StringVar(&f.logLevel, "log-level", "off", "diagnostics on stderr: off|debug|info|warn|error")
	fs.StringVar(&f.logFormat, "log-format", "console", "log encoding: console|json")
}

// layer holds only the flags given on the command line, so that config
// files and the environment keep their values otherwise.
func (f *cliFlags) layer(fs *pflag.FlagSet) config.Config {
	var cfg config.Config
	e := &cfg.Engine
	e.Recursive = changed(fs, "recursive", f.recursive)
	e.IgnoreCase = changed(fs, "ignore-case", f.ignoreCase)
	e.InvertMatch = changed(fs, "invert-match", f.invertMatch)
	e.WholeWord = changed(fs, "whole-word", f.wholeWord)
	e.CountOnly = changed(fs, "count-only", f.countOnly)
	e.ContextLines = changed(fs, "context-lines", f.contextLines)
	e.MaxColumns = changed(fs, "max-columns", f.maxColumns)
	e.Includes = changed(fs, "include", f.includes)
	e.Excludes = changed(fs, "exclude", f.excludes)

	// --color wins over --colorize when both are given.
	e.Color = changed(fs, "color", f.color)
	if e.Color == nil && fs.Changed("colorize") && f.colorize {
		always := "always"
		e.Color = &always
	}

	cfg.Log.Level = changed(fs, "log-level", f.logLevel)
	cfg.Log.Format = changed(fs, "log-format", f.logFormat)
	return cfg
}

func changed[T any](fs *pflag.FlagSet, name string, v T) *T {
	if !fs.Changed(name) {
		return nil
	}
	return &v
}
