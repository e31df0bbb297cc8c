package primitive

import (
	"fmt"

	"github.com/shinji-kodama/tigerrt/internal/model"
)

// Chr returns a one-character buffer holding the byte value i.
// Values outside 0..255 halt the program.
func (r *Runtime) Chr(i int) model.TextBuffer {
	if i < 0 || i > 255 {
		r.halt("chr: character code %d out of range", i)
	}
	return model.TextBuffer{byte(i), 0}
}

// Substring returns the n bytes of s starting at the zero-based index
// first. A range that does not fit inside s halts the program.
func (r *Runtime) Substring(s model.TextBuffer, first, n int) model.TextBuffer {
	b := content("substring", s)
	if first < 0 || n < 0 || first > len(b) || n > len(b)-first {
		r.halt("substring: range [%d, %d) out of bounds for length %d", first, first+n, len(b))
	}
	buf := make(model.TextBuffer, n+1)
	copy(buf, b[first:first+n])
	return buf
}

// Concat returns a new buffer holding the content of a followed by the
// content of b.
func Concat(a, b model.TextBuffer) model.TextBuffer {
	left := content("concat", a)
	right := content("concat", b)
	buf := make(model.TextBuffer, len(left)+len(right)+1)
	copy(buf, left)
	copy(buf[len(left):], right)
	return buf
}

// halt writes a diagnostic line to stderr and exits with status 1.
func (r *Runtime) halt(format string, args ...any) {
	fmt.Fprintf(r.stderr, format+"\n", args...)
	r.Exit(1)
}
