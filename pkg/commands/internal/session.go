// Package internal holds the load-mutate-commit session shared by every
// command. A session loads the database once; commands mutate it in memory
// and commit at most once, so a failed run never leaves a half-written
// database behind.
package internal

import (
	"github.com/fthomys/update-alternatives/pkg/alternatives"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// Session is one load-mutate-commit cycle against a storage dir and link dir.
type Session struct {
	FS         types.FS
	StorageDir string
	LinkDir    string
	DB         *alternatives.Database

	// Warnings collects the unparseable group files skipped during load.
	Warnings []types.ParseWarning

	// Parsed is the record count at load time, before any mutation. The
	// classic tool reported this number on every invocation.
	Parsed int
}

// Open loads the database under storageDir. A missing storage dir yields an
// empty session, not an error.
func Open(fsys types.FS, storageDir, linkDir string) (*Session, error) {
	logger := logging.GetLogger("commands.session")

	db, warnings, err := alternatives.Load(fsys, storageDir)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("storageDir", storageDir).
		Str("linkDir", linkDir).
		Int("groups", db.Len()).
		Int("records", db.Records()).
		Msg("Session opened")

	return &Session{
		FS:         fsys,
		StorageDir: storageDir,
		LinkDir:    linkDir,
		DB:         db,
		Warnings:   warnings,
		Parsed:     db.Records(),
	}, nil
}

// Commit persists the database and then rematerializes every link. The link
// pass only runs when the persist succeeded, so the links never get ahead
// of the database.
func (s *Session) Commit() (*types.CommitResult, error) {
	commit := &types.CommitResult{}

	if err := s.DB.Persist(); err != nil {
		return commit, errors.Wrapf(err, errors.ErrStoreWrite,
			"could not commit changes to %s", s.StorageDir)
	}
	commit.Persisted = true

	links, err := s.DB.MaterializeLinks(s.LinkDir)
	commit.Links = links
	if err != nil {
		return commit, errors.Wrap(err, errors.ErrLinkCreate, "could not write symlinks")
	}

	return commit, nil
}

// Materialize rewrites the links from the loaded database without
// persisting anything. This is the sync path.
func (s *Session) Materialize() (*types.LinkResult, error) {
	links, err := s.DB.MaterializeLinks(s.LinkDir)
	if err != nil {
		return links, errors.Wrap(err, errors.ErrLinkCreate, "could not write symlinks")
	}
	return links, nil
}
