//go:build cgo

package main

import (
	"bytes"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// useRuntime swaps the shared runtime for one over in-memory streams and
// restores the original when the test ends. The returned slice collects
// the statuses passed to the exit function.
func useRuntime(t *testing.T, input string) (*bytes.Buffer, *bytes.Buffer, *[]int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	exits := &[]int{}

	saved := rt
	rt = primitive.New(strings.NewReader(input), &stdout,
		primitive.WithStderr(&stderr),
		primitive.WithExitFunc(func(code int) { *exits = append(*exits, code) }),
	)
	t.Cleanup(func() { rt = saved })

	return &stdout, &stderr, exits
}

// TestText_BorrowsCString verifies a C string is viewed in place, with its
// terminator, and never copied.
func TestText_BorrowsCString(t *testing.T) {
	p := cstring("hello")
	defer cfree(p)

	buf := text(p)
	require.Len(t, buf, 6)
	assert.Equal(t, "hello", buf.String())
	assert.Equal(t, byte(0), buf[5])
	assert.Equal(t, unsafe.Pointer(p), unsafe.Pointer(&buf[0]))
}

// TestPrintPrimitives verifies output goes through the shared buffer.
func TestPrintPrimitives(t *testing.T) {
	stdout, _, _ := useRuntime(t, "")

	p := cstring("n = ")
	defer cfree(p)

	__prints__(p)
	__printi__(-42)
	assert.Empty(t, stdout.String(), "output stays buffered until flushed")

	__flush__()
	assert.Equal(t, "n = -42", stdout.String())
}

// TestGetChar_ReadsSuccessiveBytes verifies each call returns a fresh
// two-byte malloc'd buffer and consumes exactly one byte.
func TestGetChar_ReadsSuccessiveBytes(t *testing.T) {
	useRuntime(t, "abc")

	var got [][]byte
	for i := 0; i < 4; i++ {
		p := __getchar__()
		got = append(got, gobytes(p, 2))
		cfree(p)
	}

	assert.Equal(t, [][]byte{{'a', 0}, {'b', 0}, {'c', 0}, {0, 0}}, got)
}

// TestScalarPrimitives covers ord, size and not across the boundary.
func TestScalarPrimitives(t *testing.T) {
	seven := cstring("7")
	zero := cstring("0")
	word := cstring("tiger")
	defer cfree(seven)
	defer cfree(zero)
	defer cfree(word)

	assert.EqualValues(t, 7, __ord__(seven))
	assert.EqualValues(t, -1, __ord__(zero))
	assert.EqualValues(t, 5, __size__(word))
	assert.EqualValues(t, 1, __not__(0))
	assert.EqualValues(t, 0, __not__(9))
}

// TestStringPrimitives verifies allocating primitives return caller-owned
// copies that outlive their inputs.
func TestStringPrimitives(t *testing.T) {
	useRuntime(t, "")

	a := cstring("foo")
	b := cstring("bar")
	joined := __concat__(a, b)
	part := __substring__(a, 1, 2)
	cfree(a)
	cfree(b)
	defer cfree(joined)
	defer cfree(part)

	assert.Equal(t, "foobar", gostring(joined))
	assert.Equal(t, []byte("foobar\x00"), gobytes(joined, 7))
	assert.Equal(t, "oo", gostring(part))

	c := __chr__(65)
	defer cfree(c)
	assert.Equal(t, []byte{'A', 0}, gobytes(c, 2))
}

// TestChr_OutOfRangeHalts verifies the diagnostic and exit status.
func TestChr_OutOfRangeHalts(t *testing.T) {
	_, stderr, exits := useRuntime(t, "")

	assert.PanicsWithError(t, "exit status 1", func() { __chr__(300) })
	assert.Equal(t, []int{1}, *exits)
	assert.Contains(t, stderr.String(), "chr: character code 300 out of range")
}

// TestExit verifies pending output is flushed before the exit function runs.
func TestExit(t *testing.T) {
	stdout, _, exits := useRuntime(t, "")

	p := cstring("bye")
	defer cfree(p)
	__prints__(p)

	assert.PanicsWithError(t, "exit status 3", func() { __exit__(3) })
	assert.Equal(t, []int{3}, *exits)
	assert.Equal(t, "bye", stdout.String())
}

// TestFlushHook verifies the hook registered with atexit writes out
// buffered output.
func TestFlushHook(t *testing.T) {
	stdout, _, _ := useRuntime(t, "")

	p := cstring("tail")
	defer cfree(p)
	__prints__(p)
	require.Empty(t, stdout.String())

	tigerrtFlush()
	assert.Equal(t, "tail", stdout.String())
}
