// Package cli: symbols.go implements the "tigerrt symbols" command.
//
// The symbols command lists every primitive binding: the name Tiger source
// uses, the linker label generated code calls, and the signature. Output is
// a text table or a JSON array, depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/tigerrt/internal/extern"
	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// NewSymbolsCommand creates the "symbols" cobra command.
func NewSymbolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List the runtime primitive bindings",
		Long: `List every runtime primitive with its linker label and signature.

Examples:
  tigerrt symbols
  tigerrt symbols --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			// The table only needs a runtime to bind closures; nothing is
			// read or written while listing.
			rt := primitive.New(strings.NewReader(""), io.Discard)
			return printSymbols(cmd.OutOrStdout(), extern.NewTable(rt).Bindings())
		},
	}
	return cmd
}

// symbolJSON is the JSON output structure for a single binding.
type symbolJSON struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Params    []string `json:"params"`
	Result    string   `json:"result"`
	Signature string   `json:"signature"`
}

// printSymbols outputs the bindings in text or JSON format, depending on
// the global --json flag.
func printSymbols(w io.Writer, bindings []extern.Binding) error {
	if IsJSONOutput() {
		return printSymbolsJSON(w, bindings)
	}
	return printSymbolsText(w, bindings)
}

// printSymbolsJSON outputs the bindings under a top-level "symbols" key.
func printSymbolsJSON(w io.Writer, bindings []extern.Binding) error {
	type resultJSON struct {
		Symbols []symbolJSON `json:"symbols"`
	}

	result := resultJSON{Symbols: make([]symbolJSON, 0, len(bindings))}
	for _, b := range bindings {
		result.Symbols = append(result.Symbols, symbolJSON{
			Name:      b.Name,
			Label:     b.Label,
			Params:    FormatParams(b.Params),
			Result:    b.Result.String(),
			Signature: b.Signature(),
		})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printSymbolsText outputs the bindings as a table:
//
//	NAME       LABEL           SIGNATURE
//	prints     __prints__      prints(string) unit
//	substring  __substring__   substring(string, int, int) string
func printSymbolsText(w io.Writer, bindings []extern.Binding) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Label", "Signature")
	for _, b := range bindings {
		if err := table.Append(b.Name, b.Label, b.Signature()); err != nil {
			return err
		}
	}
	return table.Render()
}

// FormatParams converts parameter types to their names. An empty parameter
// list yields an empty (non-nil) slice so JSON shows [] rather than null.
func FormatParams(params []model.Ty) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.String())
	}
	return out
}
