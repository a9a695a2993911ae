package termcolor

import (
	"strconv"
	"strings"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// DetectScheme guesses the terminal background from COLORFGBG ("fg;bg",
// sometimes "fg;default;bg") and falls back to TERM names containing "light".
func DetectScheme(env Env) Scheme {
	if raw := env.get("COLORFGBG"); raw != "" {
		parts := strings.Split(raw, ";")
		bgRaw := strings.TrimSpace(parts[len(parts)-1])
		if bgRaw == "" && len(parts) >= 2 {
			bgRaw = strings.TrimSpace(parts[len(parts)-2])
		}
		if bg, err := strconv.Atoi(bgRaw); err == nil && bg >= 0 {
			if bg >= 7 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(env.get("TERM")), "light") {
		return SchemeLight
	}
	return SchemeDark
}
