package config

import "strings"

// MergeEngine applies layers in order; later layers win.
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Recursive = Resolve(out.Recursive, layer.Recursive)
		out.IgnoreCase = Resolve(out.IgnoreCase, layer.IgnoreCase)
		out.InvertMatch = Resolve(out.InvertMatch, layer.InvertMatch)
		out.WholeWord = Resolve(out.WholeWord, layer.WholeWord)
		out.CountOnly = Resolve(out.CountOnly, layer.CountOnly)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.ContextLines = Resolve(out.ContextLines, layer.ContextLines)
		out.Includes = ResolveStrings(out.Includes, layer.Includes)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.MaxColumns = Resolve(out.MaxColumns, layer.MaxColumns)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "never"
	}
	return out
}

func MergeLog(base LogSettings, layers ...LogConfig) LogSettings {
	out := base
	for _, layer := range layers {
		out.Level = ResolveAndTrim(out.Level, layer.Level)
		out.Format = ResolveAndTrim(out.Format, layer.Format)
	}
	return out
}
