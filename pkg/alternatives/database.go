package alternatives

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/linker"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// Database holds every alternative group, keyed by name. One database file
// per name lives under dir; the filename is the name itself.
//
// A group emptied during a session stays in the map as a tombstone: Persist
// removes its file and MaterializeLinks removes its link. Tombstones are
// not resurrected by Load since their files no longer exist.
type Database struct {
	fs     types.FS
	dir    string
	groups map[string]*Group
}

// New creates an empty database backed by dir.
func New(fsys types.FS, dir string) *Database {
	return &Database{
		fs:     fsys,
		dir:    dir,
		groups: make(map[string]*Group),
	}
}

// Load reads every database file under dir. A file that fails to parse is
// skipped and reported as a warning; the rest of the database still loads.
// A missing dir yields an empty database (first run). Other I/O errors
// abort the load.
func Load(fsys types.FS, dir string) (*Database, []types.ParseWarning, error) {
	logger := logging.GetLogger("alternatives.database")
	logger.Trace().Str("dir", dir).Msg("Loading database")

	db := New(fsys, dir)

	if _, err := fsys.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dir).Msg("Storage dir does not exist, starting empty")
			return db, nil, nil
		}
		return nil, nil, errors.Wrap(err, errors.ErrStoreRead, "cannot access storage dir").
			WithDetail("dir", dir)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrStoreRead, "cannot read storage dir").
			WithDetail("dir", dir)
	}

	var warnings []types.ParseWarning
	for _, entry := range entries {
		name := entry.Name()

		// Dot entries are never groups; this also hides temp files left
		// behind by an interrupted Persist.
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, warnings, errors.Wrap(err, errors.ErrStoreRead, "cannot read group file").
				WithDetail("path", path)
		}

		group, warning := parseGroup(name, path, data)
		if warning != nil {
			logger.Warn().
				Str("name", name).
				Int("line", warning.Line).
				Str("reason", warning.Message).
				Msg("Skipping unparseable group file")
			warnings = append(warnings, *warning)
			continue
		}

		db.groups[name] = group
	}

	logger.Debug().Int("groups", len(db.groups)).Int("warnings", len(warnings)).Msg("Database loaded")
	return db, warnings, nil
}

// parseGroup parses one database file. The first malformed line poisons the
// whole file: the caller gets a warning and no group.
func parseGroup(name, path string, data []byte) (*Group, *types.ParseWarning) {
	group := NewGroup(name)

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}

		record, err := parseRecord(line)
		if err != nil {
			return nil, &types.ParseWarning{
				Name:    name,
				Path:    path,
				Line:    i + 1,
				Message: err.Error(),
			}
		}

		group.Add(record.Target, record.Priority)
	}

	return group, nil
}

// Add registers target under name with the given priority, creating the
// group on demand. It reports whether the database changed.
func (db *Database) Add(name, target string, priority int) bool {
	group, ok := db.groups[name]
	if !ok {
		group = NewGroup(name)
		db.groups[name] = group
	}
	return group.Add(target, priority)
}

// Remove deletes the record for target under name. An unknown name or
// absent target is a no-op.
func (db *Database) Remove(name, target string) bool {
	group, ok := db.groups[name]
	if !ok {
		return false
	}
	return group.Remove(target)
}

// Lookup returns the group for name. Unknown names yield ok=false, never
// an error.
func (db *Database) Lookup(name string) (*Group, bool) {
	group, ok := db.groups[name]
	return group, ok
}

// Names returns every group name in sorted order, tombstones included.
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.groups))
	for name := range db.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of groups, tombstones included.
func (db *Database) Len() int {
	return len(db.groups)
}

// Records returns the total number of records across all groups.
func (db *Database) Records() int {
	n := 0
	for _, group := range db.groups {
		n += group.Len()
	}
	return n
}

// StorageDir returns the directory this database persists to.
func (db *Database) StorageDir() string {
	return db.dir
}

// Persist writes every group back to the storage dir, one file per name.
// Each file is written to a temp name and renamed into place so no reader
// observes a torn file. Empty groups have their file removed instead. A
// failing file does not stop the others, but any failure fails the call.
func (db *Database) Persist() error {
	logger := logging.GetLogger("alternatives.database")
	done := logging.LogOperationStart(logger, "persist")
	defer done()

	if err := db.fs.MkdirAll(db.dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrStoreWrite, "cannot create storage dir").
			WithDetail("dir", db.dir)
	}

	var firstErr error
	failed := 0

	for _, name := range db.Names() {
		group := db.groups[name]
		path := filepath.Join(db.dir, name)

		var err error
		if group.Len() == 0 {
			err = db.removeGroupFile(path)
		} else {
			err = db.writeGroupFile(path, name, group)
		}

		if err != nil {
			logger.Error().Err(err).Str("name", name).Msg("Failed to persist group")
			if firstErr == nil {
				firstErr = err
			}
			failed++
		}
	}

	if failed > 0 {
		return errors.Wrapf(firstErr, errors.ErrStoreWrite,
			"failed to persist %d of %d groups", failed, db.Len()).
			WithDetail("dir", db.dir)
	}

	logger.Debug().Int("groups", db.Len()).Str("dir", db.dir).Msg("Database persisted")
	return nil
}

// writeGroupFile serializes a group and atomically replaces its file.
func (db *Database) writeGroupFile(path, name string, group *Group) error {
	var sb strings.Builder
	for record := range group.All() {
		sb.WriteString(record.String())
		sb.WriteString("\n")
	}

	tmp := filepath.Join(db.dir, "."+name+".tmp")
	if err := db.fs.WriteFile(tmp, []byte(sb.String()), 0644); err != nil {
		return err
	}

	if err := db.fs.Rename(tmp, path); err != nil {
		_ = db.fs.Remove(tmp)
		return err
	}

	return nil
}

// removeGroupFile deletes a tombstoned group's file if it exists.
func (db *Database) removeGroupFile(path string) error {
	if err := db.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MaterializeLinks resolves every group to its winning target and hands the
// resolved view to the symlink materializer. Tombstoned groups resolve to a
// removal. Remaining links are still attempted after a failure; the call
// fails if any link failed.
func (db *Database) MaterializeLinks(linkDir string) (*types.LinkResult, error) {
	entries := make([]linker.Entry, 0, db.Len())
	for _, name := range db.Names() {
		entry := linker.Entry{Name: name}
		if current, ok := db.groups[name].Current(); ok {
			entry.Target = current.Target
		}
		entries = append(entries, entry)
	}

	return linker.New(db.fs).Materialize(linkDir, entries)
}
