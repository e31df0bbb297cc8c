package main

/*
#include <stdlib.h>

extern void tigerrtFlush(void);

static void tigerrt_flush_at_exit(void) {
	atexit(tigerrtFlush);
}
*/
import "C"

// A program that returns from main without calling __flush__ or __exit__
// still gets its buffered output, as with C stdio.
func init() {
	C.tigerrt_flush_at_exit()
}
