package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	width := 0
	g := uniseg.NewGraphemes(StripANSI(s))
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// TruncateByWidth cuts s to at most w cells without splitting a grapheme
// cluster. When a cut happens the ellipsis is appended if it fits; cells are
// given back from the kept text to make room for it.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	t := StripANSI(s)
	ellW := runewidth.StringWidth(ellipsis)

	// ends[i] is the byte offset after the i-th cluster, used[i] the width so far.
	var ends, used []int
	total := 0
	g := uniseg.NewGraphemes(t)
	for g.Next() {
		segW := runewidth.StringWidth(g.Str())
		if total+segW > w {
			break
		}
		total += segW
		_, end := g.Positions()
		ends = append(ends, end)
		used = append(used, total)
	}
	keep := len(ends)
	if ellipsis == "" || ellW > w {
		return t[:offset(ends, keep)]
	}
	for keep > 0 && used[keep-1]+ellW > w {
		keep--
	}
	return t[:offset(ends, keep)] + ellipsis
}

func offset(ends []int, n int) int {
	if n == 0 {
		return 0
	}
	return ends[n-1]
}
