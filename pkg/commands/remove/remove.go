package remove

import (
	"github.com/fthomys/update-alternatives/pkg/commands/internal"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// RemoveOptions defines the options for the Remove command.
type RemoveOptions struct {
	FileSystem types.FS
	StorageDir string
	LinkDir    string

	Name   string
	Target string
}

// Remove deletes the record for Target under Name and commits when the
// database changed. An unknown name or absent target is a silent no-op.
// Removing the last record leaves a tombstone: commit then deletes the
// group's file and its link.
func Remove(opts RemoveOptions) (*types.RemoveResult, error) {
	logger := logging.GetLogger("commands.remove")
	logger.Debug().
		Str("command", "remove").
		Str("name", opts.Name).
		Str("target", opts.Target).
		Msg("Executing command")

	sess, err := internal.Open(opts.FileSystem, opts.StorageDir, opts.LinkDir)
	if err != nil {
		return nil, err
	}

	result := &types.RemoveResult{
		Parsed:   sess.Parsed,
		Name:     opts.Name,
		Target:   opts.Target,
		Warnings: sess.Warnings,
	}

	result.Removed = sess.DB.Remove(opts.Name, opts.Target)
	if !result.Removed {
		logger.Debug().Str("name", opts.Name).Str("target", opts.Target).Msg("No such record, nothing to do")
		return result, nil
	}

	commit, err := sess.Commit()
	result.Commit = commit
	if err != nil {
		return result, err
	}

	logger.Info().
		Str("command", "remove").
		Str("name", opts.Name).
		Str("target", opts.Target).
		Msg("Command finished")
	return result, nil
}
