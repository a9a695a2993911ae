package termcolor

import (
	"strconv"
	"strings"
)

// Style is a set of SGR attributes. At most one foreground is emitted,
// preferring truecolor over 256 over basic.
type Style struct {
	Bold    bool
	FGBasic *int
	FG256   *int
	FGTrue  *[3]uint8
}

// IsZero reports whether the style emits no attributes.
func (s Style) IsZero() bool {
	return !s.Bold && s.FGBasic == nil && s.FG256 == nil && s.FGTrue == nil
}

// Apply wraps text in the style's SGR sequence and a reset.
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" || s.IsZero() {
		return text
	}
	return "\x1b[" + strings.Join(sgrCodes(s), ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	codes := make([]string, 0, 2)
	if s.Bold {
		codes = append(codes, "1")
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		codes = append(codes, "38;2;"+strconv.Itoa(int(rgb[0]))+";"+strconv.Itoa(int(rgb[1]))+";"+strconv.Itoa(int(rgb[2])))
	case s.FG256 != nil:
		codes = append(codes, "38;5;"+strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, "3"+strconv.Itoa(*s.FGBasic))
	}
	return codes
}
