package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config and environment keys for the database location.
	cfgKeyDatabase = "database"
	envPrefix      = "KILN"

	// defaultDatabaseFile is used when neither flag, env, nor config
	// name a database.
	defaultDatabaseFile = "kiln.db"
)

// resolveDatabasePath picks the SQLite database path, in priority order:
// the --database flag, the KILN_DATABASE environment variable, the
// "database" key in ~/.config/kiln/config.yaml, and finally kiln.db in
// that same directory. A missing config file is not an error.
func resolveDatabasePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	configDir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(cfgKeyDatabase); err != nil {
		return "", fmt.Errorf("bind env: %w", err)
	}
	defaultPath := filepath.Join(configDir, defaultDatabaseFile)
	v.SetDefault(cfgKeyDatabase, defaultPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return "", fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml falls through to env/default.
	}

	path := v.GetString(cfgKeyDatabase)
	if path == defaultPath {
		// First run with no explicit location; make sure ~/.config/kiln
		// exists so the store can create the file.
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return "", fmt.Errorf("create config dir: %w", err)
		}
	}
	return path, nil
}

// defaultConfigDir returns ~/.config/kiln, honoring XDG_CONFIG_HOME.
func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "kiln"), nil
}
