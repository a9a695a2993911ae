package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phyten/csi/internal/model"
	"github.com/phyten/csi/internal/output"
)

type runner struct {
	opts Options
	out  *output.Printer
	log  *zap.Logger
	res  *Result
}

// Run は指定されたオプションに従って入力を順に走査し、選択行を w に書き出します。
//
// 読み取れないファイルや -r なしのディレクトリは診断を出力したうえで
// Result.Errors に記録され、処理は継続します。エラーが返るのは
// パターンが不正な場合と出力に失敗した場合のみです。
func Run(opts Options, w io.Writer) (*Result, error) {
	start := time.Now()
	if opts.Compiled == nil {
		p, err := CompilePattern(opts.Pattern, opts.IgnoreCase, opts.WholeWord)
		if err != nil {
			return nil, err
		}
		opts.Compiled = p
	}
	if opts.Filters == nil {
		f, err := CompileFilters(opts.Includes, opts.Excludes)
		if err != nil {
			return nil, err
		}
		opts.Filters = f
	}
	if opts.ContextLines < 0 {
		return nil, fmt.Errorf("context lines must be >= 0")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	log.Debug("run start",
		zap.Stringer("pattern", opts.Compiled),
		zap.Bool("ignore_case", opts.Compiled.IgnoreCase()),
		zap.Bool("whole_word", opts.Compiled.WholeWord()),
		zap.Bool("filtered", !opts.Filters.Empty()),
		zap.Int("context_lines", opts.ContextLines),
	)

	r := &runner{
		opts: opts,
		out: output.NewPrinter(w, output.PrinterOptions{
			Color:      opts.Colorize,
			Style:      opts.HighlightStyle,
			MaxColumns: opts.MaxColumns,
		}),
		log: log,
		res: &Result{},
	}

	for _, path := range opts.Paths {
		if err := r.visit(path); err != nil {
			return r.res, err
		}
	}
	if opts.CountOnly {
		if err := r.out.Total(r.res.Total); err != nil {
			return r.res, fmt.Errorf("write total: %w", err)
		}
	}
	r.res.ErrorCount = len(r.res.Errors)

	log.Info("run complete",
		zap.Int("inputs", len(opts.Paths)),
		zap.Int("files", r.res.Files),
		zap.Int("total", r.res.Total),
		zap.Int("errors", r.res.ErrorCount),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r.res, nil
}

func (r *runner) visit(path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		if !r.opts.Recursive {
			r.record(path, KindDirectory, "is a directory")
			if err := r.out.IsDirectory(path); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
		return r.walk(path)
	}
	// Missing paths fall through to the scan and surface as unreadable.
	return r.scanFile(path)
}

func (r *runner) scanFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return r.unreadable(path, err)
	}
	lines := splitLines(string(data))
	count := 0
	for i, line := range lines {
		body, _ := output.SplitTerminator(line)
		span, found := r.opts.Compiled.Find(body)
		if found == r.opts.InvertMatch {
			continue
		}
		count++
		if r.opts.CountOnly {
			continue
		}
		// Clamped so that i+c cannot overflow for huge values.
		if c := min(r.opts.ContextLines, len(lines)); c > 0 {
			for j := max(0, i-c); j <= min(len(lines)-1, i+c); j++ {
				if err := r.out.Context(lines[j]); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
		}
		m := model.Match{File: path, Line: i + 1, Text: line}
		if found {
			m.Span = &span
		}
		if err := r.out.Selected(m); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	r.res.Files++
	r.res.Total += count
	r.log.Debug("scanned file", zap.String("path", path), zap.Int("lines", len(lines)), zap.Int("selected", count))
	return nil
}

func (r *runner) unreadable(path string, cause error) error {
	r.record(path, KindUnreadable, cause.Error())
	r.log.Warn("unable to read file", zap.String("path", path), zap.Error(cause))
	if err := r.out.Unreadable(path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (r *runner) record(path string, kind FileErrorKind, msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "unknown error"
	}
	r.res.Errors = append(r.res.Errors, FileError{Path: path, Kind: kind, Message: msg})
}

// splitLines splits after each "\n"; a trailing empty piece is dropped.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
