package commands

import (
	"github.com/fthomys/update-alternatives/pkg/commands/add"
	"github.com/fthomys/update-alternatives/pkg/commands/genconfig"
	"github.com/fthomys/update-alternatives/pkg/commands/install"
	"github.com/fthomys/update-alternatives/pkg/commands/list"
	"github.com/fthomys/update-alternatives/pkg/commands/remove"
	"github.com/fthomys/update-alternatives/pkg/commands/sync"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// CommandType represents the type of command being executed
type CommandType string

const (
	CommandList      CommandType = "list"
	CommandAdd       CommandType = "add"
	CommandRemove    CommandType = "remove"
	CommandSync      CommandType = "sync"
	CommandInstall   CommandType = "install"
	CommandGenConfig CommandType = "gen-config"
)

// DispatchOptions contains all possible options for commands.
// Each command will use only the fields it needs.
type DispatchOptions struct {
	// Common fields
	FileSystem types.FS
	StorageDir string
	LinkDir    string

	// For list command
	Names []string

	// For add and remove commands
	Name   string
	Target string

	// For add command
	Priority int

	// For install command
	ManifestPaths []string
	ManifestDir   string

	// For gen-config command
	ConfigPath string
	Force      bool
}

// Dispatch is the central dispatcher for all commands. The result is one of
// the command result types from pkg/types, ready for a ui.Renderer.
func Dispatch(cmdType CommandType, opts DispatchOptions) (interface{}, error) {
	logger := logging.GetLogger("commands.dispatch")
	logger.Debug().
		Str("command", string(cmdType)).
		Str("storageDir", opts.StorageDir).
		Str("linkDir", opts.LinkDir).
		Msg("Dispatching command")

	var result interface{}
	var err error

	switch cmdType {
	case CommandList:
		result, err = list.List(list.ListOptions{
			FileSystem: opts.FileSystem,
			StorageDir: opts.StorageDir,
			Names:      opts.Names,
		})

	case CommandAdd:
		result, err = add.Add(add.AddOptions{
			FileSystem: opts.FileSystem,
			StorageDir: opts.StorageDir,
			LinkDir:    opts.LinkDir,
			Name:       opts.Name,
			Target:     opts.Target,
			Priority:   opts.Priority,
		})

	case CommandRemove:
		result, err = remove.Remove(remove.RemoveOptions{
			FileSystem: opts.FileSystem,
			StorageDir: opts.StorageDir,
			LinkDir:    opts.LinkDir,
			Name:       opts.Name,
			Target:     opts.Target,
		})

	case CommandSync:
		result, err = sync.Sync(sync.SyncOptions{
			FileSystem: opts.FileSystem,
			StorageDir: opts.StorageDir,
			LinkDir:    opts.LinkDir,
		})

	case CommandInstall:
		result, err = install.Install(install.InstallOptions{
			FileSystem:    opts.FileSystem,
			StorageDir:    opts.StorageDir,
			LinkDir:       opts.LinkDir,
			ManifestPaths: opts.ManifestPaths,
			ManifestDir:   opts.ManifestDir,
		})

	case CommandGenConfig:
		result, err = genconfig.GenConfig(genconfig.GenConfigOptions{
			FileSystem: opts.FileSystem,
			Path:       opts.ConfigPath,
			Force:      opts.Force,
		})

	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown command type: %s", cmdType)
	}

	if err != nil {
		logger.Error().
			Str("command", string(cmdType)).
			Err(err).
			Msg("Command execution failed")
		return result, err
	}

	logger.Info().
		Str("command", string(cmdType)).
		Msg("Command completed successfully")

	return result, nil
}
