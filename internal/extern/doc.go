// Package extern binds source-level primitive names to their linker labels,
// signatures, and Go implementations.
//
// The table lists the externs every Tiger program sees at top level
// (prints, printi, flush, getchar, ord, chr, size, substring, concat, not,
// exit). Generated code refers to them by label (__prints__ ...). Drivers
// without a compiler (the CLI and call plans) use dynamic dispatch through
// Table.Call.
package extern
