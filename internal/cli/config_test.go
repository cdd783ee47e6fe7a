package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig redirects the user config dir into a temp dir so tests
// never touch the real ~/.config/kiln.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("KILN_DATABASE", "")
	os.Unsetenv("KILN_DATABASE")
	return dir
}

func TestResolveDatabasePath_FlagWins(t *testing.T) {
	isolateConfig(t)
	t.Setenv("KILN_DATABASE", "/elsewhere/env.db")

	path, err := resolveDatabasePath("/explicit/flag.db")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/flag.db", path)
}

func TestResolveDatabasePath_EnvOverridesDefault(t *testing.T) {
	dir := isolateConfig(t)
	want := filepath.Join(dir, "env.db")
	t.Setenv("KILN_DATABASE", want)

	path, err := resolveDatabasePath("")
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestResolveDatabasePath_ConfigFile(t *testing.T) {
	dir := isolateConfig(t)
	configDir := filepath.Join(dir, "kiln")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.yaml"),
		[]byte("database: /from/config/kiln.db\n"),
		0o644,
	))

	path, err := resolveDatabasePath("")
	require.NoError(t, err)
	assert.Equal(t, "/from/config/kiln.db", path)
}

func TestResolveDatabasePath_Default(t *testing.T) {
	dir := isolateConfig(t)

	path, err := resolveDatabasePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kiln", "kiln.db"), path)

	// The containing directory is created so a first run can open the store.
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
