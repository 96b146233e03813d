// Package linker materializes a resolved name -> target view as symlinks.
// It knows nothing about priorities; choosing winners is the database's
// job. Links are replaced through a temp name plus rename so a concurrent
// reader never observes a missing or half-written link.
package linker

import (
	"os"
	"path/filepath"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// Entry is one resolved link: the shared name and the target it should
// point at. An empty target means the link must be removed.
type Entry struct {
	Name   string
	Target string
}

// Linker writes resolved entries into a link directory.
type Linker interface {
	// Materialize brings linkDir in line with entries. It attempts every
	// entry even after a failure and reports a per-link outcome; the error
	// is non-nil if any link failed. The result is always returned.
	Materialize(linkDir string, entries []Entry) (*types.LinkResult, error)
}

type symlinkLinker struct {
	fs types.FS
}

// New creates a Linker backed by the given filesystem.
func New(fsys types.FS) Linker {
	return &symlinkLinker{fs: fsys}
}

func (l *symlinkLinker) Materialize(linkDir string, entries []Entry) (*types.LinkResult, error) {
	logger := logging.GetLogger("linker")

	result := &types.LinkResult{Changes: make([]types.LinkChange, 0, len(entries))}

	if err := l.fs.MkdirAll(linkDir, 0755); err != nil {
		return result, errors.Wrap(err, errors.ErrLinkCreate, "cannot create link dir").
			WithDetail("dir", linkDir)
	}

	var firstErr error
	for _, entry := range entries {
		change := l.materializeOne(linkDir, entry)
		result.Changes = append(result.Changes, change)

		switch change.State {
		case types.LinkFailed:
			logger.Error().
				Str("name", entry.Name).
				Str("target", entry.Target).
				Str("reason", change.Error).
				Msg("Failed to materialize link")
			if firstErr == nil {
				firstErr = errors.Newf(errors.ErrLinkCreate, "%s: %s", entry.Name, change.Error)
			}
		case types.LinkUnchanged:
			logger.Trace().Str("name", entry.Name).Msg("Link already correct")
		default:
			logger.Debug().
				Str("name", entry.Name).
				Str("target", entry.Target).
				Str("state", string(change.State)).
				Msg("Link materialized")
		}
	}

	if firstErr != nil {
		return result, errors.Wrapf(firstErr, errors.ErrLinkCreate,
			"failed to materialize %d of %d links", result.Failed(), len(entries)).
			WithDetail("dir", linkDir)
	}

	logger.Debug().
		Int("links", len(entries)).
		Int("changed", result.Changed()).
		Msg("Links materialized")
	return result, nil
}

// materializeOne handles a single entry and reports what happened to it.
func (l *symlinkLinker) materializeOne(linkDir string, entry Entry) types.LinkChange {
	path := filepath.Join(linkDir, entry.Name)
	change := types.LinkChange{
		Name:   entry.Name,
		Path:   path,
		Target: entry.Target,
	}

	if entry.Target == "" {
		return l.removeLink(path, change)
	}

	if current, err := l.fs.Readlink(path); err == nil {
		if current == entry.Target {
			change.State = types.LinkUnchanged
			return change
		}
		return l.replaceLink(linkDir, path, entry, change, types.LinkUpdated)
	}

	info, err := l.fs.Lstat(path)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		// Refuse to clobber something the user put there
		change.State = types.LinkFailed
		change.Error = "existing path is not a symlink"
		return change
	case err != nil && !os.IsNotExist(err):
		change.State = types.LinkFailed
		change.Error = err.Error()
		return change
	}

	return l.replaceLink(linkDir, path, entry, change, types.LinkCreated)
}

// removeLink deletes the link for a name whose group is empty. An absent
// link is already correct; a non-symlink in the way is refused.
func (l *symlinkLinker) removeLink(path string, change types.LinkChange) types.LinkChange {
	info, err := l.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			change.State = types.LinkUnchanged
			return change
		}
		change.State = types.LinkFailed
		change.Error = err.Error()
		return change
	}

	if info.Mode()&os.ModeSymlink == 0 {
		change.State = types.LinkFailed
		change.Error = "existing path is not a symlink"
		return change
	}

	if err := l.fs.Remove(path); err != nil {
		change.State = types.LinkFailed
		change.Error = err.Error()
		return change
	}

	change.State = types.LinkRemoved
	return change
}

// replaceLink creates the link under a temp dot-name in the same directory
// and renames it over the final name, so the visible link is replaced
// atomically.
func (l *symlinkLinker) replaceLink(linkDir, path string, entry Entry, change types.LinkChange, state types.LinkState) types.LinkChange {
	tmp := filepath.Join(linkDir, "."+entry.Name+".tmp")

	// A stale temp link from an interrupted run would fail the Symlink call
	if err := l.fs.Remove(tmp); err != nil && !os.IsNotExist(err) {
		change.State = types.LinkFailed
		change.Error = err.Error()
		return change
	}

	if err := l.fs.Symlink(entry.Target, tmp); err != nil {
		change.State = types.LinkFailed
		change.Error = err.Error()
		return change
	}

	if err := l.fs.Rename(tmp, path); err != nil {
		_ = l.fs.Remove(tmp)
		change.State = types.LinkFailed
		change.Error = err.Error()
		return change
	}

	change.State = state
	return change
}
