package plan

import (
	"fmt"

	"github.com/shinji-kodama/tigerrt/internal/extern"
	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// Result reports how a plan finished.
type Result struct {
	// Status is the code passed to the exit primitive, 0 otherwise.
	Status int

	// Exited is true when the plan ended by calling exit.
	Exited bool

	// Steps is the number of steps that ran, including an exit step.
	Steps int

	// Slots holds the values bound by the steps that ran.
	Slots map[string]extern.Value
}

// Exec runs the steps of p in order through table.
//
// The exit primitive ends execution. Exec recovers the runtime's
// *primitive.ExitSignal and reports the status in Result instead of
// returning an error. Contract violations raised by a primitive are
// returned as errors naming the failing step.
//
// The runtime behind table must use an exit function that returns (see
// primitive.WithExitFunc), otherwise exit terminates the process.
func Exec(p *Plan, table *extern.Table) (res *Result, err error) {
	res = &Result{Slots: make(map[string]extern.Value)}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch sig := r.(type) {
		case *primitive.ExitSignal:
			res.Status = sig.Code
			res.Exited = true
			err = nil
		case *model.ContractError:
			err = fmt.Errorf("step %d: %w", res.Steps, sig)
		default:
			panic(r)
		}
	}()

	for i, step := range p.Steps {
		res.Steps = i + 1

		args, err := resolveArgs(step, table, res.Slots)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Call, err)
		}
		v, err := table.Call(step.Call, args)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Call, err)
		}
		if step.Bind != "" {
			res.Slots[step.Bind] = v
		}
	}
	return res, nil
}

// resolveArgs converts a step's raw arguments to values, substituting slot
// references with the values bound so far.
func resolveArgs(step Step, table *extern.Table, slots map[string]extern.Value) ([]extern.Value, error) {
	b, ok := table.Lookup(step.Call)
	if !ok {
		return nil, fmt.Errorf("%w: %q", extern.ErrUnknownSymbol, step.Call)
	}
	if len(step.Args) != len(b.Params) {
		return nil, fmt.Errorf("%w: want %d, got %d", extern.ErrArity, len(b.Params), len(step.Args))
	}

	args := make([]extern.Value, len(step.Args))
	for i, raw := range step.Args {
		a, err := parseArg(raw, b.Params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if a.ref == "" {
			args[i] = a.literal
			continue
		}
		v, bound := slots[a.ref]
		if !bound {
			return nil, fmt.Errorf("argument %d: reference to unbound slot %q", i+1, a.ref)
		}
		args[i] = v
	}
	return args, nil
}
