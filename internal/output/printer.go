package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/csi/internal/model"
	"github.com/phyten/csi/internal/termcolor"
	"github.com/phyten/csi/internal/textutil"
)

const ellipsis = "…"

// PrinterOptions controls how lines are rendered.
type PrinterOptions struct {
	Color      bool
	Style      termcolor.Style
	MaxColumns int
}

// Printer writes the tool's plain-text output. Every emitted line ends with
// a newline, whether or not the source line had one.
type Printer struct {
	w    io.Writer
	opts PrinterOptions
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, opts PrinterOptions) *Printer {
	if opts.MaxColumns < 0 {
		opts.MaxColumns = 0
	}
	return &Printer{w: w, opts: opts}
}

// Selected writes "<file>:<line>:<text>". The span, when present, is
// highlighted if color is enabled.
func (p *Printer) Selected(m model.Match) error {
	body, term := SplitTerminator(m.Text)
	body, span := p.fit(body, m.Span)
	if p.opts.Color && span != nil {
		body = highlight(body, *span, p.opts.Style)
	}
	_, err := fmt.Fprintf(p.w, "%s:%d:%s%s", m.File, m.Line, body, terminator(term))
	return err
}

// Context writes a context line verbatim, without prefix.
func (p *Printer) Context(text string) error {
	body, term := SplitTerminator(text)
	body, _ = p.fit(body, nil)
	_, err := io.WriteString(p.w, body+terminator(term))
	return err
}

// IsDirectory writes the diagnostic for a directory given without recursion.
func (p *Printer) IsDirectory(path string) error {
	_, err := fmt.Fprintf(p.w, "%s: Is a directory\n", path)
	return err
}

// Unreadable writes the diagnostic for a file that could not be read.
func (p *Printer) Unreadable(path string) error {
	_, err := fmt.Fprintf(p.w, "Error: Unable to read file %s\n", path)
	return err
}

// Total writes the run total of count-only mode.
func (p *Printer) Total(n int) error {
	_, err := fmt.Fprintf(p.w, "Total matching lines count: %d\n", n)
	return err
}

// fit truncates body to MaxColumns cells and clips span to what stays visible.
func (p *Printer) fit(body string, span *model.Span) (string, *model.Span) {
	if p.opts.MaxColumns == 0 {
		return body, span
	}
	cut := textutil.TruncateByWidth(body, p.opts.MaxColumns, ellipsis)
	if cut == body {
		return body, span
	}
	kept := strings.TrimSuffix(cut, ellipsis)
	if span == nil || !strings.HasPrefix(body, kept) || span.ByteStart >= len(kept) {
		return cut, nil
	}
	clipped := *span
	if clipped.ByteEnd > len(kept) {
		clipped.ByteEnd = len(kept)
	}
	return cut, &clipped
}

func highlight(body string, span model.Span, style termcolor.Style) string {
	if span.ByteStart < 0 || span.ByteEnd > len(body) || span.Len() == 0 {
		return body
	}
	return body[:span.ByteStart] + termcolor.Apply(style, body[span.ByteStart:span.ByteEnd], true) + body[span.ByteEnd:]
}

// SplitTerminator separates a trailing "\n" or "\r\n" from text.
func SplitTerminator(text string) (body, term string) {
	if strings.HasSuffix(text, "\r\n") {
		return text[:len(text)-2], "\r\n"
	}
	if strings.HasSuffix(text, "\n") {
		return text[:len(text)-1], "\n"
	}
	return text, ""
}

func terminator(term string) string {
	if term == "" {
		return "\n"
	}
	return term
}
