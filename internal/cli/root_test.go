package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "kiln", cmd.Use)
	assert.Contains(t, cmd.Long, "firing")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	paths := [][]string{
		{"kiln", "create"},
		{"kiln", "list"},
		{"kiln", "info"},
		{"program", "create"},
		{"program", "list"},
		{"program", "info"},
		{"program", "add-step"},
		{"program", "set-steps"},
		{"project", "create"},
		{"project", "info"},
		{"project", "fire"},
		{"project", "add-image"},
		{"project", "export-image"},
	}

	for _, path := range paths {
		t.Run(path[0]+"_"+path[1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("database")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "kiln", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBadArgumentsExitCommandError(t *testing.T) {
	cases := [][]string{
		{"kiln", "create"},
		{"kiln", "list", "extra"},
		{"program", "info", "onlykiln"},
		{"project", "export-image", "justproject"},
	}

	for _, args := range cases {
		t.Run(args[0]+"_"+args[1], func(t *testing.T) {
			cmd := NewRootCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestUnknownFlagExitsCommandError(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"kiln", "list", "--bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// run executes one CLI invocation against the given database and returns
// combined output. Each invocation builds a fresh command tree the way a
// real process would.
func run(t *testing.T, database string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--database", database}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestCLIRoundTrip(t *testing.T) {
	database := filepath.Join(t.TempDir(), "kiln.db")

	out, err := run(t, database, "kiln", "create", "Big Blue", "240V octagon")
	require.NoError(t, err)
	assert.Contains(t, out, "Created kiln Big Blue")

	out, err = run(t, database, "kiln", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Big Blue")

	_, err = run(t, database, "program", "create", "Big Blue", "Full fuse", "Standard schedule")
	require.NoError(t, err)

	out, err = run(t, database, "program", "add-step", "Big Blue", "Full fuse", "AFAP", "1000", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "ramp AFAP to 1000, hold 30")

	out, err = run(t, database, "program", "info", "Big Blue", "Full fuse")
	require.NoError(t, err)
	assert.Contains(t, out, "Program: Full fuse (kiln Big Blue)")

	_, err = run(t, database, "project", "create", "Blue bowl")
	require.NoError(t, err)

	out, err = run(t, database, "project", "fire", "Blue bowl", "Big Blue", "Full fuse", "--comment", "slight haze")
	require.NoError(t, err)
	assert.Contains(t, out, "Big Blue / Full fuse - slight haze")
}

func TestCLIDuplicateKilnFails(t *testing.T) {
	database := filepath.Join(t.TempDir(), "kiln.db")

	_, err := run(t, database, "kiln", "create", "Big Blue")
	require.NoError(t, err)

	out, err := run(t, database, "kiln", "create", "Big Blue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DUPLICATE_NAME")
}

func TestCLIMissingProgramFails(t *testing.T) {
	database := filepath.Join(t.TempDir(), "kiln.db")

	_, err := run(t, database, "kiln", "create", "Big Blue")
	require.NoError(t, err)

	out, err := run(t, database, "program", "info", "Big Blue", "Ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NO_SUCH_PROGRAM")
}

func TestCLIAddAndExportImage(t *testing.T) {
	dir := t.TempDir()
	database := filepath.Join(dir, "kiln.db")
	src := filepath.Join(dir, "front.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not really a jpeg"), 0o644))

	_, err := run(t, database, "project", "create", "Blue bowl")
	require.NoError(t, err)

	out, err := run(t, database, "project", "add-image", "Blue bowl", src, "--caption", "after firing")
	require.NoError(t, err)
	assert.Contains(t, out, "front.jpg")

	dest := filepath.Join(dir, "export.jpg")
	_, err = run(t, database, "project", "export-image", "Blue bowl", "0", "--out", dest)
	require.NoError(t, err)

	exported, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("not really a jpeg"), exported)
}

func TestCLIExportImageBadIndex(t *testing.T) {
	database := filepath.Join(t.TempDir(), "kiln.db")

	_, err := run(t, database, "project", "create", "Blue bowl")
	require.NoError(t, err)

	out, err := run(t, database, "project", "export-image", "Blue bowl", "3")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID_INDEX")
}
