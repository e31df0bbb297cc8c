// Command libtiger exports the runtime primitives under the C symbol names
// generated Tiger code calls. Build it as a static archive and link it with
// the compiler's output:
//
//	go build -buildmode=c-archive -o libtiger.a ./cmd/libtiger
//	cc program.o libtiger.a -lpthread -o program
//
// Strings cross the boundary as nul-terminated char*. Buffers returned by
// __getchar__, __chr__, __substring__ and __concat__ are allocated with
// malloc and must be released by the caller with free.
//
// Runtime settings come from TIGERRT_* environment variables and
// $HOME/.tigerrt/config.yaml, as for the tigerrt CLI.
package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/shinji-kodama/tigerrt/internal/config"
	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// rt is shared by every export, like the process-wide stdio streams of a
// C runtime.
var rt = newRuntime()

func newRuntime() *primitive.Runtime {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "libtiger: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	return primitive.New(os.Stdin, os.Stdout, cfg.Options()...)
}

// text borrows a C string as a TextBuffer, terminator included. The bytes
// are not copied.
func text(s *C.char) model.TextBuffer {
	n := int(C.strlen(s))
	buf, err := model.TextBufferFromBytes(unsafe.Slice((*byte)(unsafe.Pointer(s)), n+1))
	if err != nil {
		panic(&model.ContractError{Op: "text", Reason: err.Error()})
	}
	return buf
}

// cbuffer copies t, every byte of it, into malloc'd memory owned by the
// caller.
func cbuffer(t model.TextBuffer) *C.char {
	p := C.malloc(C.size_t(len(t)))
	copy(unsafe.Slice((*byte)(p), len(t)), t)
	return (*C.char)(p)
}

//export __prints__
func __prints__(s *C.char) {
	rt.PrintString(text(s))
}

//export __printi__
func __printi__(i C.int) {
	rt.PrintInt(int(i))
}

//export __flush__
func __flush__() {
	rt.Flush()
}

//export __getchar__
func __getchar__() *C.char {
	return cbuffer(rt.GetChar())
}

//export __ord__
func __ord__(s *C.char) C.int {
	return C.int(primitive.ParseDigit(text(s)))
}

//export __size__
func __size__(s *C.char) C.int {
	return C.int(primitive.Size(text(s)))
}

//export __not__
func __not__(i C.int) C.int {
	return C.int(primitive.Not(int(i)))
}

//export __exit__
func __exit__(i C.int) {
	rt.Exit(int(i))
}

//export __chr__
func __chr__(i C.int) *C.char {
	return cbuffer(rt.Chr(int(i)))
}

//export __substring__
func __substring__(s *C.char, first, n C.int) *C.char {
	return cbuffer(rt.Substring(text(s), int(first), int(n)))
}

//export __concat__
func __concat__(a, b *C.char) *C.char {
	return cbuffer(primitive.Concat(text(a), text(b)))
}

//export tigerrtFlush
func tigerrtFlush() {
	rt.Flush()
}

func main() {}
