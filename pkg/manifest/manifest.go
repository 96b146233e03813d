// Package manifest loads alternative registrations from TOML manifest
// files. Package hooks drop one manifest per package; the install command
// applies them in bulk.
package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/fthomys/update-alternatives/pkg/alternatives"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

var log = logging.GetLogger("manifest")

// Entry is one alternative registration in a manifest file
type Entry struct {
	Name     string `toml:"name"`
	Target   string `toml:"target"`
	Priority int    `toml:"priority"`
}

// Manifest represents one parsed manifest file
type Manifest struct {
	Path    string  `toml:"-"`
	Entries []Entry `toml:"alternative"`
}

// Load reads and validates a manifest file. Unlike database files, a
// malformed manifest is an error rather than a warning: the caller asked
// for this file explicitly.
func Load(fsys types.FS, path string) (*Manifest, error) {
	logger := log.With().Str("path", path).Logger()

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
	}
	m.Path = path

	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Int("entries", len(m.Entries)).Msg("Manifest loaded")
	return &m, nil
}

// Validate checks every entry and rejects duplicate (name, target) pairs.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Entries))
	for i, entry := range m.Entries {
		if err := alternatives.ValidateName(entry.Name); err != nil {
			return errors.Wrapf(err, errors.ErrManifestValid,
				"entry %d in %s", i+1, m.Path)
		}
		if !filepath.IsAbs(entry.Target) {
			return errors.Newf(errors.ErrManifestValid,
				"entry %d in %s: target %q must be an absolute path", i+1, m.Path, entry.Target)
		}

		key := entry.Name + "\x00" + entry.Target
		if seen[key] {
			return errors.Newf(errors.ErrManifestValid,
				"duplicate entry for %s %s in %s", entry.Name, entry.Target, m.Path)
		}
		seen[key] = true
	}
	return nil
}

// Scan returns the manifest files in dir, sorted by name. A missing
// directory yields no manifests.
func Scan(fsys types.FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to scan manifest directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}
