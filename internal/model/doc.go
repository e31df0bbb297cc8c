// Package model defines the data types shared by the tigerrt runtime,
// its binding table, and the CLI.
//
// This package contains pure data structures with no external dependencies.
// The central type is TextBuffer, the nul-terminated byte sequence that
// generated code passes to and receives from the runtime primitives.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// plus ContractError for precondition violations inside the primitives.
package model
