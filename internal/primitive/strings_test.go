package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/tigerrt/internal/model"
)

// TestChr verifies conversion of byte values to one-character buffers.
func TestChr(t *testing.T) {
	tr := newTestRuntime("")

	buf := tr.rt.Chr(65)
	require.Len(t, buf, 2)
	assert.Equal(t, "A", buf.String())

	assert.Equal(t, "\xff", tr.rt.Chr(255).String())
	assert.Equal(t, 0, Size(tr.rt.Chr(0)))
	assert.Empty(t, tr.exits)
}

// TestChr_OutOfRange verifies that invalid codes halt with status 1.
func TestChr_OutOfRange(t *testing.T) {
	for _, code := range []int{-1, 256, 1 << 20} {
		tr := newTestRuntime("")
		assert.PanicsWithError(t, "exit status 1", func() {
			tr.rt.Chr(code)
		})
		assert.Equal(t, []int{1}, tr.exits)
		assert.Contains(t, tr.stderr.String(), "chr: character code")
	}
}

// TestSubstring covers valid ranges and edge positions.
func TestSubstring(t *testing.T) {
	tests := []struct {
		name  string
		input string
		first int
		n     int
		want  string
	}{
		{"middle", "hello", 1, 3, "ell"},
		{"whole", "hello", 0, 5, "hello"},
		{"empty at end", "hello", 5, 0, ""},
		{"single", "hello", 4, 1, "o"},
		{"empty source", "", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRuntime("")
			got := tr.rt.Substring(model.NewTextBuffer(tt.input), tt.first, tt.n)
			assert.True(t, got.Terminated())
			assert.Equal(t, tt.want, got.String())
			assert.Empty(t, tr.exits)
		})
	}
}

// TestSubstring_DoesNotAlias ensures the result is a fresh allocation.
func TestSubstring_DoesNotAlias(t *testing.T) {
	tr := newTestRuntime("")
	src := model.NewTextBuffer("hello")
	got := tr.rt.Substring(src, 0, 2)
	src[0] = 'j'
	assert.Equal(t, "he", got.String())
}

// TestSubstring_OutOfRange verifies that invalid ranges halt with status 1.
func TestSubstring_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		first int
		n     int
	}{
		{"negative first", -1, 2},
		{"negative count", 1, -1},
		{"past end", 3, 3},
		{"first beyond length", 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRuntime("")
			assert.PanicsWithError(t, "exit status 1", func() {
				tr.rt.Substring(model.NewTextBuffer("hello"), tt.first, tt.n)
			})
			assert.Contains(t, tr.stderr.String(), "substring: range")
		})
	}
}

// TestConcat verifies joining of two buffers.
func TestConcat(t *testing.T) {
	assert.Equal(t, "foobar", Concat(model.NewTextBuffer("foo"), model.NewTextBuffer("bar")).String())
	assert.Equal(t, "foo", Concat(model.NewTextBuffer("foo"), model.NewTextBuffer("")).String())
	assert.Equal(t, "", Concat(model.NewTextBuffer(""), model.NewTextBuffer("")).String())

	got := Concat(model.TextBuffer("a\x00junk"), model.NewTextBuffer("b"))
	assert.Equal(t, model.TextBuffer("ab\x00"), got)

	assert.Panics(t, func() {
		Concat(model.TextBuffer("a"), model.NewTextBuffer("b"))
	})
}
