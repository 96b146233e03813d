package types

import (
	"io/fs"
)

// FS is the filesystem interface required for update-alternatives operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat reports on the link itself rather than its destination.
	// For testing, implementations may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides the directories update-alternatives operates on
type Pather interface {
	// StorageDir returns the directory holding one database file per name
	StorageDir() string

	// LinkDir returns the directory the materialized symlinks live in
	LinkDir() string

	// ConfigDir returns the config directory for update-alternatives
	ConfigDir() string

	// StateDir returns the state directory for update-alternatives
	StateDir() string

	// UserMode reports whether the paths point at per-user directories
	UserMode() bool
}
