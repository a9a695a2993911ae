package engine

import (
	"go.uber.org/zap"

	"github.com/phyten/csi/internal/termcolor"
)

// FileErrorKind は実行を中断しない入力エラーの種別です。
type FileErrorKind string

const (
	KindUnreadable FileErrorKind = "unreadable"
	KindDirectory  FileErrorKind = "directory"
)

// FileError は 1 入力の処理に失敗した際の情報を表す
type FileError struct {
	Path    string        `json:"path"`
	Kind    FileErrorKind `json:"kind"`
	Message string        `json:"message"`
}

// Options は実行オプション
type Options struct {
	Pattern      string
	Paths        []string
	Recursive    bool
	IgnoreCase   bool
	InvertMatch  bool
	WholeWord    bool
	CountOnly    bool
	ContextLines int
	Includes     []string
	Excludes     []string
	MaxColumns   int

	Colorize       bool
	HighlightStyle termcolor.Style

	// Filled by opts.NormalizeAndValidate; Run compiles them when nil.
	Compiled *Pattern
	Filters  *FilterSet

	Logger *zap.Logger `json:"-"`
}

// Result は出力
type Result struct {
	Total      int         `json:"total"`
	Files      int         `json:"files"`
	Errors     []FileError `json:"errors,omitempty"`
	ErrorCount int         `json:"error_count"`
}
