package primitive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shinji-kodama/tigerrt/internal/model"
)

// DefaultOutputBufferSize is the stdout buffer size used when no
// WithOutputBufferSize option is given.
const DefaultOutputBufferSize = 4096

// ExitSignal is raised by Runtime.Exit when the injected exit function
// returns instead of terminating the process. Drivers that run generated
// code in-process recover it to learn the requested status.
type ExitSignal struct {
	Code int
}

// Error satisfies the error interface.
func (e *ExitSignal) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Runtime owns the standard streams the primitives operate on.
//
// A Runtime is not safe for concurrent use, matching the single-threaded
// model of generated code.
type Runtime struct {
	in     *bufio.Reader
	out    *bufio.Writer
	stderr io.Writer
	exit   func(int)

	outSize     int
	resetInput  bool
	flushOnExit bool

	// err is the first write error seen on stdout.
	err error
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithStderr sets the stream that halting diagnostics are written to.
// Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *Runtime) {
		r.stderr = w
	}
}

// WithExitFunc replaces os.Exit as the process terminator.
func WithExitFunc(fn func(int)) Option {
	return func(r *Runtime) {
		r.exit = fn
	}
}

// WithOutputBufferSize sets the size of the stdout buffer. Values <= 0
// keep the default.
func WithOutputBufferSize(n int) Option {
	return func(r *Runtime) {
		if n > 0 {
			r.outSize = n
		}
	}
}

// WithInputReset controls whether GetChar drops input that is already
// buffered after consuming its byte. Disabled by default: every call then
// consumes exactly one byte and no unread input is lost.
func WithInputReset(enabled bool) Option {
	return func(r *Runtime) {
		r.resetInput = enabled
	}
}

// WithFlushOnExit controls whether Exit flushes stdout before terminating.
// Enabled by default.
func WithFlushOnExit(enabled bool) Option {
	return func(r *Runtime) {
		r.flushOnExit = enabled
	}
}

// New creates a Runtime reading from stdin and writing to stdout.
func New(stdin io.Reader, stdout io.Writer, opts ...Option) *Runtime {
	r := &Runtime{
		stderr:      os.Stderr,
		exit:        os.Exit,
		outSize:     DefaultOutputBufferSize,
		resetInput:  false,
		flushOnExit: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.in = bufio.NewReader(stdin)
	r.out = bufio.NewWriterSize(stdout, r.outSize)
	return r
}

// Err returns the first error encountered while writing to stdout.
func (r *Runtime) Err() error {
	return r.err
}

func (r *Runtime) write(b []byte) {
	if _, err := r.out.Write(b); err != nil && r.err == nil {
		r.err = err
	}
}

// PrintString writes the content of s to stdout verbatim.
func (r *Runtime) PrintString(s model.TextBuffer) {
	r.write(content("prints", s))
}

// PrintInt writes the decimal representation of i to stdout.
func (r *Runtime) PrintInt(i int) {
	var scratch [20]byte
	r.write(strconv.AppendInt(scratch[:0], int64(i), 10))
}

// Flush forces buffered stdout content to its destination.
func (r *Runtime) Flush() {
	if err := r.out.Flush(); err != nil && r.err == nil {
		r.err = err
	}
}

// GetChar blocks until one byte is available on stdin and returns it as a
// newly allocated two-byte buffer (the character and its terminator).
//
// At end of stream the returned buffer is {0, 0}, whose length is zero.
// Unread input stays available to the next call. Only when input reset is
// enabled is the rest of the read buffer discarded.
func (r *Runtime) GetChar() model.TextBuffer {
	buf := make(model.TextBuffer, 2)
	if c, err := r.in.ReadByte(); err == nil {
		buf[0] = c
	}
	if r.resetInput {
		_, _ = r.in.Discard(r.in.Buffered())
	}
	return buf
}

// ParseDigit maps the first byte of s from '1'..'9' to 1..9. Any other
// first byte returns -1.
//
// '0' is deliberately unmapped and also yields -1.
func ParseDigit(s model.TextBuffer) int {
	if len(s) == 0 {
		return -1
	}
	if c := s[0]; c >= '1' && c <= '9' {
		return int(c - '0')
	}
	return -1
}

// Size returns the number of bytes preceding the terminator of s.
func Size(s model.TextBuffer) int {
	return len(content("size", s))
}

// Not returns 1 if i is zero and 0 otherwise.
func Not(i int) int {
	if i == 0 {
		return 1
	}
	return 0
}

// Exit terminates the process with the given status and never returns.
//
// Stdout is flushed first unless flush-on-exit was disabled. If the exit
// function returns, Exit panics with *ExitSignal.
func (r *Runtime) Exit(code int) {
	if r.flushOnExit {
		r.Flush()
	}
	r.exit(code)
	panic(&ExitSignal{Code: code})
}

// content returns the bytes of s before the terminator, panicking with a
// ContractError attributed to op when there is none.
func content(op string, s model.TextBuffer) []byte {
	if !s.Terminated() {
		panic(&model.ContractError{Op: op, Reason: model.ErrUnterminated.Error()})
	}
	return s.Bytes()
}
