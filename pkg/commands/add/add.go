package add

import (
	"path/filepath"

	"github.com/fthomys/update-alternatives/pkg/alternatives"
	"github.com/fthomys/update-alternatives/pkg/commands/internal"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// AddOptions defines the options for the Add command.
type AddOptions struct {
	FileSystem types.FS
	StorageDir string
	LinkDir    string

	Name     string
	Target   string
	Priority int
}

// Add registers Target under Name with the given priority, creating the
// group on demand, and commits when the database changed. Re-adding an
// identical record is a silent no-op that writes nothing.
func Add(opts AddOptions) (*types.AddResult, error) {
	logger := logging.GetLogger("commands.add")
	logger.Debug().
		Str("command", "add").
		Str("name", opts.Name).
		Str("target", opts.Target).
		Int("priority", opts.Priority).
		Msg("Executing command")

	if err := alternatives.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if opts.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target must not be empty")
	}
	if !filepath.IsAbs(opts.Target) {
		return nil, errors.Newf(errors.ErrInvalidInput, "target %s must be an absolute path", opts.Target)
	}

	sess, err := internal.Open(opts.FileSystem, opts.StorageDir, opts.LinkDir)
	if err != nil {
		return nil, err
	}

	result := &types.AddResult{
		Parsed:   sess.Parsed,
		Name:     opts.Name,
		Target:   opts.Target,
		Priority: opts.Priority,
		Warnings: sess.Warnings,
	}

	result.Changed = sess.DB.Add(opts.Name, opts.Target, opts.Priority)
	if !result.Changed {
		logger.Debug().Str("name", opts.Name).Str("target", opts.Target).Msg("Record already present, nothing to do")
		return result, nil
	}

	commit, err := sess.Commit()
	result.Commit = commit
	if err != nil {
		return result, err
	}

	logger.Info().
		Str("command", "add").
		Str("name", opts.Name).
		Str("target", opts.Target).
		Int("priority", opts.Priority).
		Msg("Command finished")
	return result, nil
}
