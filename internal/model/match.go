package model

// Span は 1 行内での一致範囲をバイトオフセットで表します。End は排他的です。
type Span struct {
	ByteStart int
	ByteEnd   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.ByteEnd < s.ByteStart {
		return 0
	}
	return s.ByteEnd - s.ByteStart
}

// Match は選択された 1 行を表します。
type Match struct {
	File string
	Line int
	Text string
	// Span is nil for lines selected under inversion.
	Span *Span
}
