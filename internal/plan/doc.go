// Package plan loads, validates and executes call plans: declarative
// sequences of runtime primitive calls that drive the runtime the way
// compiled code would, without needing a compiler.
//
// Plans are written in YAML or in JSONC (JSON with Comments). JSONC is
// supported via github.com/tidwall/jsonc, which strips comments and
// trailing commas before the standard encoding/json parser runs.
//
// A plan looks like:
//
//	name: echo-digit
//	steps:
//	  - call: getchar
//	    bind: c
//	  - call: ord
//	    args: ["$c"]
//	    bind: n
//	  - call: printi
//	    args: ["$n"]
//	  - call: flush
//
// String arguments starting with "$" refer to the value bound by an
// earlier step. "$$" escapes a literal dollar sign.
package plan
