package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// Go-side helpers for building and inspecting C buffers. Test files cannot
// use cgo directly, so the tests go through these.

func cstring(s string) *C.char {
	return C.CString(s)
}

func gostring(p *C.char) string {
	return C.GoString(p)
}

func gobytes(p *C.char, n int) []byte {
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

func cfree(p *C.char) {
	C.free(unsafe.Pointer(p))
}
