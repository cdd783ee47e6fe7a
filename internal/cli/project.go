package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fusedglass/kiln/internal/model"
	"github.com/fusedglass/kiln/internal/store"
)

// NewProjectCommand creates the project command group.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage glass projects",
	}

	cmd.AddCommand(newProjectCreateCommand(rootOpts))
	cmd.AddCommand(newProjectInfoCommand(rootOpts))
	cmd.AddCommand(newProjectFireCommand(rootOpts))
	cmd.AddCommand(newProjectAddImageCommand(rootOpts))
	cmd.AddCommand(newProjectExportImageCommand(rootOpts))

	return cmd
}

func newProjectCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "create <name> [description]",
		Short:         "Start tracking a new project",
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
			if _, err := st.AddProject(cmd.Context(), args[0], description); err != nil {
				return reportError(formatter, err)
			}
			return formatter.Success(fmt.Sprintf("Created project %s", args[0]))
		},
	}
}

func newProjectInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "info <name>",
		Short:         "Show a project with its firings and images",
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

			project, err := loadProject(cmd, st, args[0])
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(newProjectView(project))
			}
			return formatter.Success(renderProject(project))
		},
	}
}

func newProjectFireCommand(rootOpts *RootOptions) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "fire <project> <kiln> <program>",
		Short: "Record a firing of a project",
		Long: `Record that a project was fired with a kiln's program.

The firing is appended to the project's log along with an optional comment
about the outcome.

Example:
  kiln project fire "Blue bowl" "Big Blue" "Full fuse" --comment "slight haze"`,
		Args:          commandArgs(cobra.ExactArgs(3)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			project, err := loadProject(cmd, st, args[0])
			if err != nil {
				return reportError(formatter, err)
			}
			updated, err := st.AddProjectFiring(cmd.Context(), project, args[1], args[2], comment)
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(newProjectView(updated))
			}
			return formatter.Success(renderProject(updated))
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "note about the firing outcome")

	return cmd
}

func newProjectAddImageCommand(rootOpts *RootOptions) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "add-image <project> <file>",
		Short: "Attach an image file to a project",
		Long: `Attach an image file to a project.

The file is read here and stored as a blob under its base name; the
database never touches the filesystem itself.`,
		Args:          commandArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			contents, err := os.ReadFile(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "read image file", err)
			}

			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			project, err := loadProject(cmd, st, args[0])
			if err != nil {
				return reportError(formatter, err)
			}
			updated, err := st.AddProjectImage(cmd.Context(), project, filepath.Base(args[1]), caption, contents)
			if err != nil {
				return reportError(formatter, err)
			}
			if formatter.Format == "json" {
				return formatter.Success(newProjectView(updated))
			}
			return formatter.Success(renderProject(updated))
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "caption stored with the image")

	return cmd
}

func newProjectExportImageCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-image <project> <index>",
		Short: "Write a stored image back to disk",
		Long: `Write a stored project image back to disk.

Index is zero-based in the order "project info" lists images. Without
--out the image's stored name is used; if that file already exists a
random suffix keeps the export from clobbering it.`,
		Args:          commandArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid image index", err)
			}

			st, err := openStore(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			project, err := loadProject(cmd, st, args[0])
			if err != nil {
				return reportError(formatter, err)
			}
			if index < 0 || index >= project.NumPictures() {
				return reportError(formatter, model.NewInvalidIndex(index))
			}
			img := project.PictureAt(index)

			path := out
			if path == "" {
				path = exportPath(img.Name)
			}
			if err := os.WriteFile(path, img.Contents, 0o644); err != nil {
				return WrapExitError(ExitCommandError, "write image file", err)
			}
			return formatter.Success(fmt.Sprintf("Wrote %s (%d bytes)", path, len(img.Contents)))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (default: the image's stored name)")

	return cmd
}

// loadProject fetches a project aggregate, mapping absence to a domain error.
func loadProject(cmd *cobra.Command, st *store.Store, name string) (*model.KilnProject, error) {
	project, err := st.GetProject(cmd.Context(), name)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, model.NewNoSuchName(name)
	}
	return project, nil
}

// exportPath returns name unless a file by that name exists, in which case
// a uuid is spliced in before the extension.
func exportPath(name string) string {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)
}
