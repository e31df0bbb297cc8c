// Package cli: exec.go implements the "tigerrt exec" command.
//
// The exec command loads a call plan (YAML or JSONC), validates every step
// against the binding table, and runs it on the process's standard streams.
// If the plan calls exit, the process ends with that status.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/tigerrt/internal/extern"
	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/plan"
)

// execFlags holds the flag values for the exec command.
type execFlags struct {
	// validateOnly stops after validation without running any step.
	validateOnly bool
}

// NewExecCommand creates the "exec" cobra command.
func NewExecCommand() *cobra.Command {
	flags := &execFlags{}

	cmd := &cobra.Command{
		Use:   "exec <plan-file>",
		Short: "Run a call plan against the runtime",
		Long: `Run a call plan: a YAML or JSONC file listing primitive calls in order.

Examples:
  tigerrt exec echo-digit.yaml
  tigerrt exec greet.jsonc --validate-only`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.validateOnly, "validate-only", false,
		"Validate the plan without running it")

	return cmd
}

// runExec is the main logic function for the exec command.
func runExec(stdin io.Reader, stdout, stderr io.Writer, path string, flags *execFlags) error {
	// Step 1: Load and parse the plan file.
	p, err := plan.Load(path)
	if err != nil {
		return err // Load already returns CLIError for missing/invalid files
	}
	VerboseLog("Loaded plan %q with %d step(s) from %s", p.Name, len(p.Steps), path)

	// Step 2: Build the runtime and binding table.
	rt, err := newRuntime(stdin, stdout, stderr)
	if err != nil {
		return err
	}
	table := extern.NewTable(rt)

	// Step 3: Validate every step before running any of them.
	if errs := plan.Validate(p, table); len(errs) > 0 {
		for _, e := range errs {
			VerboseLog("%s", e.Error())
		}
		return model.WrapCLIError(model.ExitInvalidPlan,
			fmt.Sprintf("plan %q is invalid", p.Name), plan.JoinErrors(errs))
	}

	if flags.validateOnly {
		return printValidateResult(stdout, p)
	}

	// Step 4: Run the plan.
	res, err := plan.Exec(p, table)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "plan execution failed", err)
	}
	VerboseLog("Plan %q finished after %d step(s)", p.Name, res.Steps)

	// Step 5: Push remaining output and report the program's exit status.
	rt.Flush()
	if err := rt.Err(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write output", err)
	}
	if res.Exited {
		return &processExit{code: res.Status}
	}
	return nil
}

// printValidateResult reports a successful validation in text or JSON.
func printValidateResult(w io.Writer, p *plan.Plan) error {
	if IsJSONOutput() {
		data, err := json.MarshalIndent(map[string]interface{}{
			"name":  p.Name,
			"valid": true,
			"steps": len(p.Steps),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "Plan %q is valid (%d steps)\n", p.Name, len(p.Steps))
	return err
}
