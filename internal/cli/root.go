package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fusedglass/kiln/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database string // path to the SQLite database; empty means resolve via env/config
	Verbose  bool
	Format   string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the kiln CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kiln",
		Short: "Track kilns, firing programs, and glass projects",
		Long: `A firing log for fused-glass work.

Kilns hold named firing programs (ordered ramp/target/dwell steps), and
projects record each firing of a piece along with photos of the result.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Flag parse failures are command errors, not domain failures.
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Database, "database", "", "path to the kiln database (default: $KILN_DATABASE or config file)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewKilnCommand(opts))
	cmd.AddCommand(NewProgramCommand(opts))
	cmd.AddCommand(NewProjectCommand(opts))

	return cmd
}

// commandArgs wraps a cobra positional-args validator so a wrong argument
// count exits with the command-error code instead of the domain-failure one.
func commandArgs(validator cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validator(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds an OutputFormatter wired to the command's writers.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openStore resolves the database path and opens the store.
// Failures to locate or open the database are command errors (exit 2).
func openStore(opts *RootOptions, formatter *OutputFormatter) (*store.Store, error) {
	path, err := resolveDatabasePath(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolve database path", err)
	}
	formatter.VerboseLog("Using database: %s", path)

	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open database %s", path), err)
	}
	return st, nil
}

// reportError renders a domain error and converts it into an ExitError so
// the process exits non-zero. The returned error carries no message of its
// own; the formatter has already written the user-facing text.
func reportError(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(errorCode(err), err.Error(), nil); outErr != nil {
		return WrapExitError(ExitCommandError, "write output", outErr)
	}
	return NewExitError(ExitFailure, "")
}
