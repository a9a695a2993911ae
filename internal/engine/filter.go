package engine

import "regexp"

// FilterSet decides which base filenames the recursive walk scans.
type FilterSet struct {
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

// CompileFilters compiles include and exclude expressions in order. Each
// expression is used as given, whitespace included, and anchored at the
// start of the filename.
func CompileFilters(includes, excludes []string) (*FilterSet, error) {
	inc, err := compileNameRegex(includes, "--include")
	if err != nil {
		return nil, err
	}
	exc, err := compileNameRegex(excludes, "--exclude")
	if err != nil {
		return nil, err
	}
	return &FilterSet{includes: inc, excludes: exc}, nil
}

func compileNameRegex(patterns []string, source string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, expr := range patterns {
		if _, err := regexp.Compile(expr); err != nil {
			return nil, &PatternError{Source: source, Expr: expr, Err: err}
		}
		rx, err := regexp.Compile(`^(?:` + expr + `)`)
		if err != nil {
			return nil, &PatternError{Source: source, Expr: expr, Err: err}
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

// Allow reports whether name passes: no includes or at least one include
// matches, and no exclude matches.
func (f *FilterSet) Allow(name string) bool {
	if f == nil {
		return true
	}
	if len(f.includes) > 0 && !anyMatch(f.includes, name) {
		return false
	}
	return !anyMatch(f.excludes, name)
}

// Empty reports whether the set filters nothing.
func (f *FilterSet) Empty() bool {
	return f == nil || (len(f.includes) == 0 && len(f.excludes) == 0)
}

func anyMatch(rx []*regexp.Regexp, name string) bool {
	for _, r := range rx {
		if r.MatchString(name) {
			return true
		}
	}
	return false
}
