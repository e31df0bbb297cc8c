// Package model defines the data types for the tigerrt runtime.
//
// TextBuffer mirrors the string representation generated code works with:
// a byte sequence that always ends in a nul byte. Ty names the three value
// types that cross the runtime boundary (int, string, unit).
package model

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrUnterminated is returned when raw bytes handed to the runtime do not
// contain a terminating nul byte.
var ErrUnterminated = errors.New("text buffer is not nul-terminated")

// TextBuffer is an owned, nul-terminated byte sequence.
//
// The logical content is every byte before the first nul. Bytes after the
// first nul (if any) are carried along but never observed by the runtime,
// exactly like a C string with trailing garbage.
//
// Buffers returned by allocating primitives (GetChar, Chr, Substring,
// Concat) belong to the caller. Nothing in the runtime keeps a reference.
type TextBuffer []byte

// NewTextBuffer copies s into a freshly allocated buffer and appends the
// terminating nul.
func NewTextBuffer(s string) TextBuffer {
	buf := make(TextBuffer, len(s)+1)
	copy(buf, s)
	return buf
}

// TextBufferFromBytes wraps raw bytes as a TextBuffer after checking that
// they contain a nul terminator. The bytes are not copied.
func TextBufferFromBytes(b []byte) (TextBuffer, error) {
	if bytes.IndexByte(b, 0) < 0 {
		return nil, ErrUnterminated
	}
	return TextBuffer(b), nil
}

// Terminated reports whether the buffer contains a nul byte.
func (t TextBuffer) Terminated() bool {
	return bytes.IndexByte(t, 0) >= 0
}

// Len returns the number of bytes preceding the first nul.
//
// It panics with a *ContractError when the buffer has no terminator,
// instead of reading past the end of the slice.
func (t TextBuffer) Len() int {
	n := bytes.IndexByte(t, 0)
	if n < 0 {
		panic(&ContractError{Op: "len", Reason: ErrUnterminated.Error()})
	}
	return n
}

// Bytes returns the content bytes, without the terminator.
// The returned slice aliases the buffer.
func (t TextBuffer) Bytes() []byte {
	return t[:t.Len()]
}

// String returns the content as a Go string.
func (t TextBuffer) String() string {
	return string(t.Bytes())
}

// Ty is the type of a value crossing the runtime boundary.
type Ty string

const (
	// TyInt is the platform native signed integer.
	TyInt Ty = "int"

	// TyString is a TextBuffer.
	TyString Ty = "string"

	// TyUnit marks a primitive that produces no value.
	TyUnit Ty = "unit"
)

// String returns the string representation of Ty.
func (t Ty) String() string {
	return string(t)
}

// ContractError reports a violated precondition of a primitive, such as a
// buffer without a terminator. Primitives have no error return in their
// calling convention, so it is raised with panic.
type ContractError struct {
	// Op is the primitive (or helper) whose precondition failed.
	Op string

	// Reason describes the violated precondition.
	Reason string
}

// Error satisfies the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Reason)
}

// ExitCode defines the exit codes of the tigerrt CLI.
// Exit codes requested by the exit primitive are passed through unchanged
// and are not drawn from this set.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPlanNotFound indicates the call plan file does not exist.
	ExitPlanNotFound ExitCode = 2

	// ExitInvalidPlan indicates the call plan failed to parse or validate.
	ExitInvalidPlan ExitCode = 3

	// ExitUnknownSymbol indicates a call named a primitive that is not bound.
	ExitUnknownSymbol ExitCode = 4

	// ExitInvalidArgument indicates a primitive argument could not be
	// converted to the parameter type.
	ExitInvalidArgument ExitCode = 5

	// ExitConfigError indicates the runtime configuration is invalid.
	ExitConfigError ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
