package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fusedglass/kiln/internal/model"
)

// NewKilnCommand creates the kiln command group.
func NewKilnCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kiln",
		Short: "Manage kilns",
	}

	cmd.AddCommand(newKilnCreateCommand(rootOpts))
	cmd.AddCommand(newKilnListCommand(rootOpts))
	cmd.AddCommand(newKilnInfoCommand(rootOpts))

	return cmd
}

func newKilnCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Register a new kiln",
		Long: `Register a new kiln.

Kiln names are unique across the database. The description is optional.

Example:
  kiln kiln create "Big Blue" "240V octagon in the garage"`,
		Args:          commandArgs(cobra.RangeArgs(1, 2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			description := ""
			if len(args) == 2 {
				description = args[1]
			}
			if err := st.AddKiln(cmd.Context(), args[0], description); err != nil {
				return reportError(formatter, err)
			}
			return formatter.Success(fmt.Sprintf("Created kiln %s", args[0]))
		},
	}
}

func newKilnListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List kiln names",
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.ListKilns(cmd.Context())
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(names)
			}
			if len(names) == 0 {
				return formatter.Success("(no kilns)")
			}
			return formatter.Success(strings.Join(names, "\n"))
		},
	}
}

func newKilnInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "info <name>",
		Short:         "Show a kiln and its programs",
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			k, err := st.GetKiln(cmd.Context(), args[0])
			if err != nil {
				return reportError(formatter, err)
			}
			if k == nil {
				return reportError(formatter, model.NewNoSuchName(args[0]))
			}
			programs, err := st.ListPrograms(cmd.Context(), args[0])
			if err != nil {
				return reportError(formatter, err)
			}

			if formatter.Format == "json" {
				return formatter.Success(struct {
					kilnView
					Programs []string `json:"programs"`
				}{newKilnView(k), programs})
			}

			var b strings.Builder
			b.WriteString(renderKiln(k))
			fmt.Fprintf(&b, "\nPrograms: %d\n", len(programs))
			for _, name := range programs {
				fmt.Fprintf(&b, "  %s\n", name)
			}
			return formatter.Success(strings.TrimRight(b.String(), "\n"))
		},
	}
}
