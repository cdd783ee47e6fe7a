package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fusedglass/kiln/internal/model"
)

// NewProgramCommand creates the program command group.
func NewProgramCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Manage firing programs",
	}

	cmd.AddCommand(newProgramCreateCommand(rootOpts))
	cmd.AddCommand(newProgramListCommand(rootOpts))
	cmd.AddCommand(newProgramInfoCommand(rootOpts))
	cmd.AddCommand(newProgramAddStepCommand(rootOpts))
	cmd.AddCommand(newProgramSetStepsCommand(rootOpts))

	return cmd
}

func newProgramCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <kiln> <name> [description]",
		Short: "Create an empty firing program on a kiln",
		Long: `Create an empty firing program on a kiln.

Program names are unique per kiln; two kilns may each have "Full fuse".
Add steps afterwards with "program add-step" or "program set-steps".`,
		Args:          commandArgs(cobra.RangeArgs(2, 3)),
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
			if len(args) == 3 {
				description = args[2]
			}
			if _, err := st.AddProgram(cmd.Context(), args[0], args[1], description); err != nil {
				return reportError(formatter, err)
			}
			return formatter.Success(fmt.Sprintf("Created program %s on kiln %s", args[1], args[0]))
		},
	}
}

func newProgramListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <kiln>",
		Short:         "List program names for a kiln",
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

			names, err := st.ListPrograms(cmd.Context(), args[0])
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(names)
			}
			if len(names) == 0 {
				return formatter.Success("(no programs)")
			}
			return formatter.Success(strings.Join(names, "\n"))
		},
	}
}

func newProgramInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "info <kiln> <name>",
		Short:         "Show a program and its steps",
		Args:          commandArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			program, err := st.GetProgram(cmd.Context(), args[0], args[1])
			if err != nil {
				return reportError(formatter, err)
			}
			if program == nil {
				return reportError(formatter, model.NewNoSuchProgram(args[0], args[1]))
			}
			if formatter.Format == "json" {
				return formatter.Success(newProgramView(program))
			}
			return formatter.Success(renderProgram(program))
		},
	}
}

func newProgramAddStepCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-step <kiln> <program> <ramp> <target> <dwell>",
		Short: "Append one step to a program",
		Long: `Append one step to a program.

Ramp is "AFAP" or a non-negative integer in degrees per second. Target is
the hold temperature and dwell the hold time. The program's full step list
is rewritten in one transaction.

Example:
  kiln program add-step "Big Blue" "Full fuse" AFAP 1000 30`,
		Args:          commandArgs(cobra.ExactArgs(5)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			ramp, err := model.ParseRampRate(args[2])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid ramp", err)
			}
			target, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid target temperature", err)
			}
			dwell, err := strconv.ParseInt(args[4], 10, 64)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid dwell time", err)
			}

			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			program, err := st.GetProgram(cmd.Context(), args[0], args[1])
			if err != nil {
				return reportError(formatter, err)
			}
			if program == nil {
				return reportError(formatter, model.NewNoSuchProgram(args[0], args[1]))
			}

			program.AddStep(model.NewFiringStep(0, program.Sequence().ID, ramp, target, dwell))
			committed, err := st.ReplaceProgramSteps(cmd.Context(), program)
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(newProgramView(committed))
			}
			return formatter.Success(renderProgram(committed))
		},
	}
}

func newProgramSetStepsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-steps <kiln> <program> <steps.yaml>",
		Short: "Replace a program's steps from a YAML file",
		Long: `Replace a program's steps wholesale from a YAML file.

The file lists steps in firing order:

  steps:
    - ramp: AFAP
      target: 1000
      dwell: 30
    - ramp: 300
      target: 1250
      dwell: 15

All existing steps are dropped and the file's steps written in one
transaction.`,
		Args:          commandArgs(cobra.ExactArgs(3)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			steps, err := LoadStepFile(args[2])
			if err != nil {
				return WrapExitError(ExitCommandError, "load step file", err)
			}

			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			current, err := st.GetProgram(cmd.Context(), args[0], args[1])
			if err != nil {
				return reportError(formatter, err)
			}
			if current == nil {
				return reportError(formatter, model.NewNoSuchProgram(args[0], args[1]))
			}

			replacement := model.NewKilnProgram(current.Kiln(), current.Sequence()).AddSteps(steps)
			committed, err := st.ReplaceProgramSteps(cmd.Context(), replacement)
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(newProgramView(committed))
			}
			return formatter.Success(renderProgram(committed))
		},
	}
}
