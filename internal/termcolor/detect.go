package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// Env is a snapshot of the process environment. A nil Env reads as empty.
type Env map[string]string

// ParseEnv builds an Env from KEY=VALUE pairs as returned by os.Environ.
func ParseEnv(values []string) Env {
	env := make(Env, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		env[key] = value
	}
	return env
}

func (e Env) get(key string) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e[key])
}

// Resolve reports whether colors should be emitted. ModeAuto consults the
// environment and then the TTY state of stdout:
//  1. TERM=dumb, NO_COLOR or CLICOLOR=0 disable colors.
//  2. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value enable them.
//  3. Otherwise colors follow whether stdout is a terminal.
func Resolve(mode ColorMode, stdout *os.File, env Env) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if strings.EqualFold(env.get("TERM"), "dumb") {
		return false
	}
	if env.get("NO_COLOR") != "" || env.get("CLICOLOR") == "0" {
		return false
	}
	if forceColor(env.get("CLICOLOR_FORCE")) || forceColor(env.get("FORCE_COLOR")) {
		return true
	}
	return isTerminal(stdout)
}

// DetectProfile inspects COLORTERM/TERM to determine the best-fit color profile.
func DetectProfile(env Env) Profile {
	colorterm := strings.ToLower(env.get("COLORTERM"))
	for _, marker := range []string{"truecolor", "24bit", "24-bit"} {
		if strings.Contains(colorterm, marker) {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(env.get("TERM")), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	return v != "" && v != "0"
}
