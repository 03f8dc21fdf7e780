// Package paths resolves where the journal keeps its configuration and
// its category files. Every location is resolved once at start-up and
// handed to the core as an explicit value.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under the platform base directories.
const appName = "journal"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else names one.
const DefaultDataDirName = ".journal-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "JOURNAL_CONFIG_DIR"
	EnvDataDir   = "JOURNAL_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $xdgVar/journal on Linux, falling back to
// ~/<fallback...>/journal. Other platforms use os.UserConfigDir, which is
// ~/Library/Application Support on macOS and %APPDATA% on Windows.
func xdgDir(xdgVar string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if v := os.Getenv(xdgVar); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/journal (fallback ~/.config/journal)
// macOS:   ~/Library/Application Support/journal
// Windows: %APPDATA%/journal
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// firstAbs returns the absolute form of the first non-empty candidate.
// ok is false when every candidate is empty.
func firstAbs(candidates ...string) (dir string, ok bool, err error) {
	for _, c := range candidates {
		if c != "" {
			dir, err = filepath.Abs(c)
			return dir, true, err
		}
	}
	return "", false, nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence flag > JOURNAL_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok, err := firstAbs(flag, os.Getenv(EnvConfigDir)); ok {
		return dir, err
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// flag > config.yaml value > JOURNAL_DATA_DIR env > $(CWD)/.journal-db.
// The CWD-relative default keeps each working tree's journal separate.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir, ok, err := firstAbs(flag, configValue, os.Getenv(EnvDataDir)); ok {
		return dir, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
