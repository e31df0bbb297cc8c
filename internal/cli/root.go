// Package cli implements the cobra-based CLI commands for tigerrt.
//
// Each subcommand (symbols, call, exec) is defined in its own file within
// this package. This file defines the root command that serves as the
// parent for all subcommands and handles global flags, runtime
// construction and exit-code translation.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/tigerrt/internal/config"
	"github.com/shinji-kodama/tigerrt/internal/extern"
	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool

	// configFile is an explicit runtime config file. When empty,
	// $HOME/.tigerrt/config.yaml is used if it exists.
	configFile string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text and global flags; the work is done by the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use: "tigerrt",

		// Short is the brief description shown in the parent's help listing.
		Short: "Runtime primitives for compiled Tiger programs",

		// Long is the detailed description shown in "tigerrt --help".
		Long: `tigerrt hosts the runtime primitives that compiled Tiger programs link
against (prints, printi, flush, getchar, ord, size, not, exit, chr,
substring, concat).

The CLI lists the bindings, invokes a single primitive on the process's
standard streams, or executes a call plan that strings primitives together
the way generated code would.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when the --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// PersistentFlags are inherited by all subcommands, so these global
	// flags need no re-declaration per command.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// --config is read by newRuntime through viper. An explicit file must
	// exist; the default location is optional.
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Runtime config file (default: $HOME/.tigerrt/config.yaml)")

	// Register subcommands. Each one is defined in its own file
	// (symbols.go, call.go, exec.go) and returns a *cobra.Command.
	rootCmd.AddCommand(NewSymbolsCommand())
	rootCmd.AddCommand(NewCallCommand())
	rootCmd.AddCommand(NewExecCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// A program that called the exit primitive ends with the status it asked
// for. CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exit *processExit
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}

	printError(rootCmd.ErrOrStderr(), err.Error(), nil)
	os.Exit(int(model.ExitGeneralError))
}

// processExit carries the status a program passed to the exit primitive
// back to Execute, so deferred cleanup runs before the process ends.
type processExit struct {
	code int
}

func (e *processExit) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// newRuntime loads the runtime configuration and builds a Runtime over the
// given streams.
//
// The exit function is a no-op: Runtime.Exit then raises
// *primitive.ExitSignal, which the commands turn into a processExit.
func newRuntime(stdin io.Reader, stdout, stderr io.Writer) (*primitive.Runtime, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to load configuration", err)
	}
	if cfg.Source != "" {
		VerboseLog("Loaded configuration from %s", cfg.Source)
	}
	VerboseLog("Runtime: output buffer %d bytes, discard buffered input %t, flush on exit %t",
		cfg.OutputBufferSize, cfg.DiscardBufferedInput, cfg.FlushOnExit)

	opts := append(cfg.Options(),
		primitive.WithStderr(stderr),
		primitive.WithExitFunc(func(int) {}),
	)
	return primitive.New(stdin, stdout, opts...), nil
}

// callError translates binding-table errors into CLI errors.
func callError(err error) error {
	switch {
	case errors.Is(err, extern.ErrUnknownSymbol):
		return model.WrapCLIError(model.ExitUnknownSymbol, "cannot resolve primitive", err)
	case errors.Is(err, extern.ErrArity), errors.Is(err, extern.ErrArgType):
		return model.WrapCLIError(model.ExitInvalidArgument, "invalid arguments", err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, "call failed", err)
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(w, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
