// Package cli: call.go implements the "tigerrt call" command.
//
// The call command invokes one primitive on the process's standard streams.
// Arguments are parsed according to the primitive's parameter types, and a
// non-unit result is printed on its own line. Calling exit ends the process
// with the requested status.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/tigerrt/internal/extern"
	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// NewCallCommand creates the "call" cobra command.
func NewCallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <primitive> [args...]",
		Short: "Invoke a single runtime primitive",
		Long: `Invoke a single runtime primitive by source name or linker label.

Examples:
  tigerrt call size hello          # prints 5
  tigerrt call __ord__ 7           # prints 7
  tigerrt call substring hello 1 3 # prints ell
  echo x | tigerrt call getchar    # prints x
  tigerrt call exit 3              # exits with status 3`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], args[1:])
		},
	}
	return cmd
}

// runCall builds a runtime over the given streams and invokes one binding.
func runCall(stdin io.Reader, stdout, stderr io.Writer, name string, raw []string) error {
	rt, err := newRuntime(stdin, stdout, stderr)
	if err != nil {
		return err
	}
	table := extern.NewTable(rt)

	b, ok := table.Lookup(name)
	if !ok {
		return callError(fmt.Errorf("%w: %q", extern.ErrUnknownSymbol, name))
	}
	VerboseLog("Calling %s (%s)", b.Signature(), b.Label)

	v, exit, err := invoke(table, name, raw)
	if err != nil {
		return callError(err)
	}
	if exit != nil {
		VerboseLog("Primitive requested exit status %d", exit.Code)
		return &processExit{code: exit.Code}
	}

	rt.Flush()
	if err := rt.Err(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write output", err)
	}
	if b.Result != model.TyUnit {
		fmt.Fprintln(stdout, extern.Format(v))
	}
	return nil
}

// invoke calls a binding and recovers the ExitSignal raised by exit (or by
// a halting primitive such as chr).
func invoke(table *extern.Table, name string, raw []string) (v extern.Value, exit *primitive.ExitSignal, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(*primitive.ExitSignal)
			if !ok {
				panic(r)
			}
			exit = sig
		}
	}()

	v, err = table.CallStrings(name, raw)
	return v, nil, err
}
