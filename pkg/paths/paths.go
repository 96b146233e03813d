// Package paths provides centralized path handling for update-alternatives.
// It implements XDG Base Directory specification compliance and resolves
// the storage and link directories for system-wide or per-user operation.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory used in user mode
	EnvDataDir = "UPDATE_ALTERNATIVES_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories
// IMPORTANT: the effective system directories normally come from pkg/config;
// these constants are the last-resort fallbacks when no value was resolved.
const (
	// DefaultStorageDir is the system-wide alternatives database directory
	DefaultStorageDir = "/etc/alternatives"

	// DefaultLinkDir is the system-wide directory for materialized links
	DefaultLinkDir = "/usr/local/bin"

	// AppDirName is the directory name for update-alternatives files
	AppDirName = "update-alternatives"

	// UserStorageDirName is the database directory name under the data dir
	UserStorageDirName = "alternatives"
)

// paths resolves the directories for one invocation
type paths struct {
	userMode   bool
	storageDir string
	linkDir    string
	configDir  string
	stateDir   string
}

// New creates a types.Pather for one invocation. storageDir and linkDir are
// explicit overrides and win when non-empty; otherwise user mode derives the
// directories from the XDG base dirs and system mode falls back to the
// defaults.
func New(userMode bool, storageDir, linkDir string) (types.Pather, error) {
	p := &paths{userMode: userMode}

	var err error
	if p.storageDir, err = resolveDir(storageDir, userMode, userStorageDir, DefaultStorageDir); err != nil {
		return nil, err
	}
	if p.linkDir, err = resolveDir(linkDir, userMode, userLinkDir, DefaultLinkDir); err != nil {
		return nil, err
	}

	p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	p.stateDir = stateHome()

	return p, nil
}

// resolveDir picks the explicit value, the user-mode derivation or the
// system default, in that order, and normalizes the winner.
func resolveDir(explicit string, userMode bool, userDir func() (string, error), systemDefault string) (string, error) {
	if explicit != "" {
		return NormalizePath(explicit)
	}
	if userMode {
		return userDir()
	}
	return systemDefault, nil
}

// userStorageDir returns the per-user database directory,
// $XDG_DATA_HOME/update-alternatives/alternatives by default.
func userStorageDir() (string, error) {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		return filepath.Join(expandHome(dataDir), UserStorageDirName), nil
	}
	return filepath.Join(xdg.DataHome, AppDirName, UserStorageDirName), nil
}

// userLinkDir returns the per-user link directory, ~/.local/bin.
func userLinkDir() (string, error) {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "bin"), nil
}

// stateHome returns the update-alternatives state directory.
// XDG_STATE_HOME is checked manually so tests can redirect it per-process.
func stateHome() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, AppDirName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "state", AppDirName)
}

// StorageDir returns the directory holding one database file per name
func (p *paths) StorageDir() string {
	return p.storageDir
}

// LinkDir returns the directory the materialized symlinks live in
func (p *paths) LinkDir() string {
	return p.linkDir
}

// ConfigDir returns the config directory for update-alternatives
func (p *paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the state directory for update-alternatives
func (p *paths) StateDir() string {
	return p.stateDir
}

// UserMode reports whether the paths point at per-user directories
func (p *paths) UserMode() bool {
	return p.userMode
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
