package engine

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phyten/csi/internal/termcolor"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCapture(t *testing.T, opts Options) (string, *Result) {
	t.Helper()
	var buf bytes.Buffer
	res, err := Run(opts, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return buf.String(), res
}

func TestRun基本の出力(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "foo\nbar\nfoo\n")

	out, res := runCapture(t, Options{Pattern: "foo", Paths: []string{path}})
	want := path + ":1:foo\n" + path + ":3:foo\n"
	if out != want {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", want, out)
	}
	if res.Total != 2 || res.Files != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	out, _ = runCapture(t, Options{Pattern: "foo", Paths: []string{path}, CountOnly: true})
	if out != "Total matching lines count: 2\n" {
		t.Fatalf("count-only output mismatch: %q", out)
	}
}

func TestRunTotalMatchesPrintedLines(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha\nbeta\ngamma\ndelta\n")
	b := writeFile(t, dir, "b.txt", "epsilon\nalphabet\n")
	opts := Options{Pattern: "a$|alpha", Paths: []string{a, b}}

	out, res := runCapture(t, opts)
	printed := strings.Count(out, "\n")

	opts.CountOnly = true
	countOut, countRes := runCapture(t, opts)
	if countOut != "Total matching lines count: "+strconv.Itoa(printed)+"\n" {
		t.Fatalf("total %q does not equal printed line count %d", countOut, printed)
	}
	if res.Total != countRes.Total || res.Total != printed {
		t.Fatalf("totals disagree: normal=%d count=%d printed=%d", res.Total, countRes.Total, printed)
	}
}

func selectedLines(t *testing.T, out, path string) []int {
	t.Helper()
	var nums []int
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		rest, ok := strings.CutPrefix(line, path+":")
		if !ok {
			continue
		}
		n, _, _ := strings.Cut(rest, ":")
		v, err := strconv.Atoi(n)
		if err != nil {
			t.Fatalf("bad line number in %q", line)
		}
		nums = append(nums, v)
	}
	return nums
}

func TestRun反転は補集合になる(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.txt", "one\ntwo\nthree\nfour\nfive\nsix\n")

	normal, _ := runCapture(t, Options{Pattern: "o", Paths: []string{path}})
	inverted, _ := runCapture(t, Options{Pattern: "o", Paths: []string{path}, InvertMatch: true})

	got := map[int]bool{}
	for _, n := range selectedLines(t, normal, path) {
		got[n] = true
	}
	for _, n := range selectedLines(t, inverted, path) {
		if got[n] {
			t.Fatalf("line %d selected both with and without inversion", n)
		}
		got[n] = true
	}
	if len(got) != 6 {
		t.Fatalf("union should cover all 6 lines, got %v", got)
	}
	if want := []int{3, 5, 6}; !reflect.DeepEqual(selectedLines(t, inverted, path), want) {
		t.Fatalf("inverted selection = %v, want %v", selectedLines(t, inverted, path), want)
	}
}

func TestRunWholeWord(t *testing.T) {
	path := writeFile(t, t.TempDir(), "w.txt", "concatenate\n")

	out, _ := runCapture(t, Options{Pattern: "cat", Paths: []string{path}})
	if out != path+":1:concatenate\n" {
		t.Fatalf("plain mode should select the line, got %q", out)
	}
	out, res := runCapture(t, Options{Pattern: "cat", Paths: []string{path}, WholeWord: true})
	if out != "" || res.Total != 0 {
		t.Fatalf("whole-word mode must not select, got %q", out)
	}
}

func TestRunContextLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.txt", "l1\nl2\nhit\nl4\nl5\n")

	out, _ := runCapture(t, Options{Pattern: "hit", Paths: []string{path}, ContextLines: 1})
	want := "l2\nhit\nl4\n" + path + ":3:hit\n"
	if out != want {
		t.Fatalf("context output mismatch:\nwant %q\ngot  %q", want, out)
	}
}

func TestRunContextClampsAndRepeats(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.txt", "a\nx\nx\n")

	out, _ := runCapture(t, Options{Pattern: "x", Paths: []string{path}, ContextLines: 1})
	want := "a\nx\nx\n" + path + ":2:x\n" +
		"x\nx\n" + path + ":3:x\n"
	if out != want {
		t.Fatalf("adjacent windows should repeat lines:\nwant %q\ngot  %q", want, out)
	}
}

func TestRunContextHugeValueCoversFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "one\ntwo\nthree\n")

	out, _ := runCapture(t, Options{Pattern: "two", Paths: []string{path}, ContextLines: math.MaxInt})
	want := "one\ntwo\nthree\n" + path + ":2:two\n"
	if out != want {
		t.Fatalf("巨大な -C でもファイル全体が文脈になるはず:\nwant %q\ngot  %q", want, out)
	}
}

func TestRunContextSuppressedByCountOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.txt", "a\nx\nb\n")

	out, _ := runCapture(t, Options{Pattern: "x", Paths: []string{path}, ContextLines: 2, CountOnly: true})
	if out != "Total matching lines count: 1\n" {
		t.Fatalf("count-only must not print context, got %q", out)
	}
}

func TestRunDirectoryWithoutRecursion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "foo\n")

	out, res := runCapture(t, Options{Pattern: "foo", Paths: []string{dir}})
	if out != dir+": Is a directory\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if res.ErrorCount != 1 || res.Errors[0].Kind != KindDirectory || res.Errors[0].Path != dir {
		t.Fatalf("directory diagnostic not recorded: %+v", res.Errors)
	}
	if res.Total != 0 || res.Files != 0 {
		t.Fatalf("directory must contribute nothing: %+v", res)
	}
}

func TestRun読めないファイルは継続する(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	good := writeFile(t, dir, "good.txt", "foo\n")

	core, logs := observer.New(zap.WarnLevel)
	out, res := runCapture(t, Options{
		Pattern:   "foo",
		Paths:     []string{missing, good},
		CountOnly: false,
		Logger:    zap.New(core),
	})
	want := "Error: Unable to read file " + missing + "\n" + good + ":1:foo\n"
	if out != want {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", want, out)
	}
	if res.Total != 1 || res.ErrorCount != 1 || res.Errors[0].Kind != KindUnreadable {
		t.Fatalf("unexpected result: %+v", res)
	}
	entries := logs.FilterMessage("unable to read file").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warn entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != missing {
		t.Fatalf("warn entry path = %v, want %s", got, missing)
	}
}

func TestRunRecursiveInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x\n")
	writeFile(t, dir, "b.txt", "x\n")
	writeFile(t, dir, "c.py", "x\n")

	core, logs := observer.New(zapcore.DebugLevel)
	out, res := runCapture(t, Options{
		Pattern:   "x",
		Paths:     []string{dir},
		Recursive: true,
		Includes:  []string{`.*\.py$`},
		Logger:    zap.New(core),
	})
	want := filepath.Join(dir, "a.py") + ":1:x\n" + filepath.Join(dir, "c.py") + ":1:x\n"
	if out != want {
		t.Fatalf("filter output mismatch:\nwant %q\ngot  %q", want, out)
	}
	if res.Files != 2 || res.Total != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if n := logs.FilterMessage("filtered").Len(); n != 1 {
		t.Fatalf("expected one filtered entry, got %d", n)
	}
	if n := logs.FilterMessage("run complete").Len(); n != 1 {
		t.Fatalf("expected one run summary, got %d", n)
	}
	starts := logs.FilterMessage("run start").All()
	if len(starts) != 1 {
		t.Fatalf("expected one run start entry, got %d", len(starts))
	}
	fields := starts[0].ContextMap()
	if fields["pattern"] != "x" || fields["filtered"] != true || fields["ignore_case"] != false || fields["whole_word"] != false {
		t.Fatalf("unexpected run start fields: %v", fields)
	}
}

func TestRunRecursiveNestedCountsTotal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.txt", "foo\n")
	writeFile(t, dir, filepath.Join("sub", "deep", "n.txt"), "foo\nfoo\n")
	writeFile(t, dir, filepath.Join("sub", "skip.log"), "foo\n")

	out, res := runCapture(t, Options{
		Pattern:   "foo",
		Paths:     []string{dir},
		Recursive: true,
		CountOnly: true,
		Excludes:  []string{`.*\.log$`},
	})
	if out != "Total matching lines count: 3\n" {
		t.Fatalf("walked files must count toward total, got %q", out)
	}
	if res.Files != 2 {
		t.Fatalf("expected 2 files scanned, got %d", res.Files)
	}
}

func TestRunRecursiveSkipsDirectorySymlink(t *testing.T) {
	dir := t.TempDir()
	target := t.TempDir()
	writeFile(t, target, "inner.txt", "foo\n")
	writeFile(t, dir, "a.txt", "foo\n")
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	out, _ := runCapture(t, Options{Pattern: "foo", Paths: []string{dir}, Recursive: true})
	if out != filepath.Join(dir, "a.txt")+":1:foo\n" {
		t.Fatalf("nested directory symlink should not be followed, got %q", out)
	}
}

func TestRunColorize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.txt", "a cat here\nnothing\n")
	style := termcolor.DefaultMatchStyle()

	out, _ := runCapture(t, Options{Pattern: "cat", Paths: []string{path}, Colorize: true, HighlightStyle: style})
	want := path + ":1:a \x1b[31mcat\x1b[0m here\n"
	if out != want {
		t.Fatalf("highlight mismatch:\nwant %q\ngot  %q", want, out)
	}

	out, _ = runCapture(t, Options{Pattern: "cat", Paths: []string{path}, Colorize: true, HighlightStyle: style, InvertMatch: true})
	if out != path+":2:nothing\n" {
		t.Fatalf("inverted lines must not be highlighted, got %q", out)
	}
}

func TestRunLineTerminators(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.txt", "foo\r\nbar\nfoo")

	out, _ := runCapture(t, Options{Pattern: "foo$", Paths: []string{path}})
	want := path + ":1:foo\r\n" + path + ":3:foo\n"
	if out != want {
		t.Fatalf("terminator handling mismatch:\nwant %q\ngot  %q", want, out)
	}
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "foo\nbar\n")
	writeFile(t, dir, filepath.Join("s", "b.txt"), "bar\nfoo\n")
	opts := Options{Pattern: "foo", Paths: []string{dir}, Recursive: true, ContextLines: 1}

	first, _ := runCapture(t, opts)
	second, _ := runCapture(t, opts)
	if first != second {
		t.Fatalf("runs differ:\n%q\n%q", first, second)
	}
}

func TestRunInvalidPattern(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(Options{Pattern: "(", Paths: []string{"x"}}, &buf)
	if err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written before the pattern compiles, got %q", buf.String())
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\n\nb", []string{"a\n", "\n", "b"}},
	}
	for _, tc := range cases {
		if got := splitLines(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitLines(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
