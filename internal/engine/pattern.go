package engine

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/phyten/csi/internal/model"
)

// ErrInvalidPattern is matched by every PatternError.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a regular expression that failed to compile.
// Source names the argument the expression came from.
type PatternError struct {
	Source string
	Expr   string
	Err    error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Source, e.Expr, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

func (e *PatternError) Is(target error) bool { return target == ErrInvalidPattern }

// Pattern is the compiled search expression. It is immutable after CompilePattern.
type Pattern struct {
	expr       string
	ignoreCase bool
	wholeWord  bool
	re         *regexp.Regexp
}

// CompilePattern compiles expr. Ignore-case prepends the (?i) flag.
// Whole-word mode keeps the expression as given and filters candidates in
// Find, since \b in RE2 only knows ASCII word characters.
func CompilePattern(expr string, ignoreCase, wholeWord bool) (*Pattern, error) {
	// Validate the user expression on its own so the error points at it and
	// not at the flag prefix.
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Source: "pattern", Expr: expr, Err: err}
	}
	if ignoreCase {
		re, err = regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, &PatternError{Source: "pattern", Expr: expr, Err: err}
		}
	}
	return &Pattern{expr: expr, ignoreCase: ignoreCase, wholeWord: wholeWord, re: re}, nil
}

// String returns the expression as given by the user.
func (p *Pattern) String() string { return p.expr }

// IgnoreCase reports whether matching is case-insensitive.
func (p *Pattern) IgnoreCase() bool { return p.ignoreCase }

// WholeWord reports whether matches must stand alone as words.
func (p *Pattern) WholeWord() bool { return p.wholeWord }

// Find returns the location of the leftmost match in line. In whole-word
// mode it is the leftmost match not bordered by a letter, digit or
// underscore on either side.
func (p *Pattern) Find(line string) (model.Span, bool) {
	if !p.wholeWord {
		loc := p.re.FindStringIndex(line)
		if loc == nil {
			return model.Span{}, false
		}
		return model.Span{ByteStart: loc[0], ByteEnd: loc[1]}, true
	}
	for _, loc := range p.re.FindAllStringIndex(line, -1) {
		if standsAlone(line, loc[0], loc[1]) {
			return model.Span{ByteStart: loc[0], ByteEnd: loc[1]}, true
		}
	}
	return model.Span{}, false
}

func standsAlone(line string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(line[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(line) {
		if r, _ := utf8.DecodeRuneInString(line[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
