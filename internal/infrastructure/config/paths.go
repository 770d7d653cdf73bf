package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "voyage"
	databaseName = "voyage.db"
	configName   = "config.toml"
	schemaName   = "config.schema.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Dirs holds the XDG base directories of the application.
type Dirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetDirs resolves $XDG_CONFIG_HOME/voyage, $XDG_DATA_HOME/voyage and
// $XDG_STATE_HOME/voyage, falling back to the usual ~/.config, ~/.local/share
// and ~/.local/state. With VOYAGE_ENV=dev everything lives under ./.dev/voyage.
func GetDirs() (*Dirs, error) {
	if os.Getenv("VOYAGE_ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &Dirs{ConfigHome: devDir, DataHome: devDir, StateHome: devDir}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &Dirs{
		ConfigHome: filepath.Join(xdgDir("XDG_CONFIG_HOME", homeDir, ".config"), appName),
		DataHome:   filepath.Join(xdgDir("XDG_DATA_HOME", homeDir, ".local", "share"), appName),
		StateHome:  filepath.Join(xdgDir("XDG_STATE_HOME", homeDir, ".local", "state"), appName),
	}, nil
}

func xdgDir(env, home string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// GetConfigDir returns the configuration directory.
func GetConfigDir() (string, error) {
	dirs, err := GetDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetConfigFile returns the path of config.toml.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName), nil
}

// GetSchemaFile returns the path the JSON schema is written to.
func GetSchemaFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, schemaName), nil
}

// GetDatabaseFile returns the default profile database path.
// History and bookmarks are user data and belong in XDG_DATA_HOME.
func GetDatabaseFile() (string, error) {
	dirs, err := GetDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.DataHome, databaseName), nil
}

// GetLogDir returns the default log directory under XDG_STATE_HOME.
func GetLogDir() (string, error) {
	dirs, err := GetDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.StateHome, "logs"), nil
}

// EnsureDirectories creates the XDG directories if they are missing.
func EnsureDirectories() error {
	dirs, err := GetDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
