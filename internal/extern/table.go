package extern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

var (
	// ErrUnknownSymbol is returned when a name resolves to no binding.
	ErrUnknownSymbol = errors.New("unknown primitive")

	// ErrArity is returned when a call passes the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")

	// ErrArgType is returned when an argument does not match its parameter type.
	ErrArgType = errors.New("argument type mismatch")
)

// Value is a value crossing the runtime boundary: an int, a
// model.TextBuffer, or nil for unit.
type Value any

// Impl is the Go implementation behind a binding. Arguments have already
// been checked against the binding's parameter types.
type Impl func(args []Value) Value

// Binding ties a source-level name to its linker label and signature.
type Binding struct {
	// Name is the identifier Tiger source uses (e.g. "prints").
	Name string `json:"name"`

	// Label is the symbol generated code links against (e.g. "__prints__").
	Label string `json:"label"`

	// Params lists the parameter types in order.
	Params []model.Ty `json:"params"`

	// Result is the return type, TyUnit for none.
	Result model.Ty `json:"result"`

	impl Impl
}

// Signature renders the binding as "name(type, ...) result".
func (b Binding) Signature() string {
	params := make([]string, len(b.Params))
	for i, p := range b.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s) %s", b.Name, strings.Join(params, ", "), b.Result)
}

// Table resolves bindings by source name or linker label.
type Table struct {
	bindings []Binding
	index    map[string]int
}

// NewTable registers every primitive of rt.
func NewTable(rt *primitive.Runtime) *Table {
	t := &Table{index: make(map[string]int)}

	t.register("prints", []model.Ty{model.TyString}, model.TyUnit, func(args []Value) Value {
		rt.PrintString(args[0].(model.TextBuffer))
		return nil
	})
	t.register("printi", []model.Ty{model.TyInt}, model.TyUnit, func(args []Value) Value {
		rt.PrintInt(args[0].(int))
		return nil
	})
	t.register("flush", nil, model.TyUnit, func([]Value) Value {
		rt.Flush()
		return nil
	})
	t.register("getchar", nil, model.TyString, func([]Value) Value {
		return rt.GetChar()
	})
	t.register("ord", []model.Ty{model.TyString}, model.TyInt, func(args []Value) Value {
		return primitive.ParseDigit(args[0].(model.TextBuffer))
	})
	t.register("chr", []model.Ty{model.TyInt}, model.TyString, func(args []Value) Value {
		return rt.Chr(args[0].(int))
	})
	t.register("size", []model.Ty{model.TyString}, model.TyInt, func(args []Value) Value {
		return primitive.Size(args[0].(model.TextBuffer))
	})
	t.register("substring", []model.Ty{model.TyString, model.TyInt, model.TyInt}, model.TyString, func(args []Value) Value {
		return rt.Substring(args[0].(model.TextBuffer), args[1].(int), args[2].(int))
	})
	t.register("concat", []model.Ty{model.TyString, model.TyString}, model.TyString, func(args []Value) Value {
		return primitive.Concat(args[0].(model.TextBuffer), args[1].(model.TextBuffer))
	})
	t.register("not", []model.Ty{model.TyInt}, model.TyInt, func(args []Value) Value {
		return primitive.Not(args[0].(int))
	})
	t.register("exit", []model.Ty{model.TyInt}, model.TyUnit, func(args []Value) Value {
		rt.Exit(args[0].(int))
		return nil
	})

	return t
}

// LabelFor returns the linker label of a source-level name.
func LabelFor(name string) string {
	return "__" + name + "__"
}

func (t *Table) register(name string, params []model.Ty, result model.Ty, impl Impl) {
	b := Binding{Name: name, Label: LabelFor(name), Params: params, Result: result, impl: impl}
	t.index[b.Name] = len(t.bindings)
	t.index[b.Label] = len(t.bindings)
	t.bindings = append(t.bindings, b)
}

// Bindings returns all bindings in registration order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Lookup resolves a source name or a linker label.
func (t *Table) Lookup(name string) (Binding, bool) {
	i, ok := t.index[name]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// Call invokes the named primitive after checking arity and argument
// types. Unit primitives return a nil Value.
//
// Exit does not return: the runtime's exit function runs, and if it
// returns, the *primitive.ExitSignal panic propagates to the caller.
func (t *Table) Call(name string, args []Value) (Value, error) {
	b, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	if len(args) != len(b.Params) {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", b.Name, ErrArity, len(b.Params), len(args))
	}
	for i, want := range b.Params {
		if got := TypeOf(args[i]); got != want {
			return nil, fmt.Errorf("%s: argument %d: %w: want %s, got %s", b.Name, i+1, ErrArgType, want, got)
		}
	}
	return b.impl(args), nil
}

// CallStrings parses raw command-line arguments according to the
// parameter types of the named primitive and calls it.
func (t *Table) CallStrings(name string, raw []string) (Value, error) {
	b, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	if len(raw) != len(b.Params) {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", b.Name, ErrArity, len(b.Params), len(raw))
	}
	args := make([]Value, len(raw))
	for i, s := range raw {
		v, err := ParseValue(b.Params[i], s)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", b.Name, i+1, err)
		}
		args[i] = v
	}
	return t.Call(name, args)
}

// ParseValue converts a textual argument to a Value of type ty.
func ParseValue(ty model.Ty, s string) (Value, error) {
	switch ty {
	case model.TyInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an int", ErrArgType, s)
		}
		return n, nil
	case model.TyString:
		return model.NewTextBuffer(s), nil
	default:
		return nil, fmt.Errorf("%w: cannot pass a %s argument", ErrArgType, ty)
	}
}

// TypeOf reports the runtime type of v. Unsupported Go types report "".
func TypeOf(v Value) model.Ty {
	switch v.(type) {
	case nil:
		return model.TyUnit
	case int:
		return model.TyInt
	case model.TextBuffer:
		return model.TyString
	default:
		return ""
	}
}

// Format renders a Value the way the print primitives would.
func Format(v Value) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case model.TextBuffer:
		return val.String()
	default:
		return ""
	}
}
