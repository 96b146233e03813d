// Package commands provides the high-level command implementations for
// update-alternatives.
//
// This package contains the orchestration layer between the CLI interface
// and the alternatives engine.
//
// Each command is implemented in its own subdirectory:
//   - list/      - List command
//   - add/       - Add command
//   - remove/    - Remove command
//   - sync/      - Sync command
//   - install/   - Install command (manifests)
//   - genconfig/ - GenConfig command
//   - internal/  - Shared load-mutate-commit session
//
// This file serves as the main entry point and re-exports all command
// functions so callers need a single import.
package commands

import (
	"github.com/fthomys/update-alternatives/pkg/commands/add"
	"github.com/fthomys/update-alternatives/pkg/commands/genconfig"
	"github.com/fthomys/update-alternatives/pkg/commands/install"
	"github.com/fthomys/update-alternatives/pkg/commands/list"
	"github.com/fthomys/update-alternatives/pkg/commands/remove"
	"github.com/fthomys/update-alternatives/pkg/commands/sync"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// Re-export all command types and functions to maintain a stable API

// List resolves the requested alternative groups.
type ListOptions = list.ListOptions

func List(opts ListOptions) (*types.ListResult, error) {
	return list.List(opts)
}

// Add registers a target under a name with a priority.
type AddOptions = add.AddOptions

func Add(opts AddOptions) (*types.AddResult, error) {
	return add.Add(opts)
}

// Remove deletes the record for a target under a name.
type RemoveOptions = remove.RemoveOptions

func Remove(opts RemoveOptions) (*types.RemoveResult, error) {
	return remove.Remove(opts)
}

// Sync rematerializes every link from the database on disk.
type SyncOptions = sync.SyncOptions

func Sync(opts SyncOptions) (*types.SyncResult, error) {
	return sync.Sync(opts)
}

// Install applies alternative manifests.
type InstallOptions = install.InstallOptions

func Install(opts InstallOptions) (*types.InstallResult, error) {
	return install.Install(opts)
}

// GenConfig outputs or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
