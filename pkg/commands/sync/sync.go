package sync

import (
	"github.com/fthomys/update-alternatives/pkg/commands/internal"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// SyncOptions defines the options for the Sync command.
type SyncOptions struct {
	FileSystem types.FS
	StorageDir string
	LinkDir    string
}

// Sync rematerializes every link from the database on disk without writing
// the database itself. It repairs links that were deleted or repointed
// behind the tool's back.
func Sync(opts SyncOptions) (*types.SyncResult, error) {
	logger := logging.GetLogger("commands.sync")
	logger.Debug().Str("command", "sync").Str("linkDir", opts.LinkDir).Msg("Executing command")

	sess, err := internal.Open(opts.FileSystem, opts.StorageDir, opts.LinkDir)
	if err != nil {
		return nil, err
	}

	result := &types.SyncResult{
		Parsed:   sess.Parsed,
		Warnings: sess.Warnings,
	}

	links, err := sess.Materialize()
	result.Links = links
	if err != nil {
		return result, err
	}

	logger.Info().
		Str("command", "sync").
		Int("changed", links.Changed()).
		Msg("Command finished")
	return result, nil
}
