// Package primitive implements the runtime primitives that compiled Tiger
// programs link against: printing, flushing, reading a character, parsing
// a digit, string length, logical negation, process exit, and the string
// helpers chr, substring and concat.
//
// The process-wide standard streams of the C runtime are modelled as an
// explicit Runtime value holding injected reader and writer handles, so
// tests can drive the primitives with in-memory streams.
//
// Primitives keep the calling convention of generated code: they return
// plain values and never an error. Invalid input is signalled the same way
// the C shim did, with the -1 sentinel of ParseDigit, or by halting the
// program. A violated precondition, such as a buffer with no terminator,
// panics with *model.ContractError.
package primitive
