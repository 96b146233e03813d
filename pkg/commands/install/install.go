package install

import (
	"github.com/fthomys/update-alternatives/pkg/commands/internal"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/manifest"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// InstallOptions defines the options for the Install command.
type InstallOptions struct {
	FileSystem types.FS
	StorageDir string
	LinkDir    string

	// ManifestPaths are the manifest files to apply. When empty, ManifestDir
	// is scanned for *.toml files instead.
	ManifestPaths []string
	ManifestDir   string
}

// Install applies alternative manifests: every entry is registered as if
// passed to add, then the database is committed once. A manifest that fails
// to load or validate aborts the run before anything is written, so a bad
// manifest can never leave a partial install behind.
func Install(opts InstallOptions) (*types.InstallResult, error) {
	logger := logging.GetLogger("commands.install")
	logger.Debug().
		Str("command", "install").
		Strs("manifests", opts.ManifestPaths).
		Str("manifestDir", opts.ManifestDir).
		Msg("Executing command")

	paths := opts.ManifestPaths
	if len(paths) == 0 {
		scanned, err := manifest.Scan(opts.FileSystem, opts.ManifestDir)
		if err != nil {
			return nil, err
		}
		paths = scanned
	}

	sess, err := internal.Open(opts.FileSystem, opts.StorageDir, opts.LinkDir)
	if err != nil {
		return nil, err
	}

	result := &types.InstallResult{
		Parsed:    sess.Parsed,
		Manifests: paths,
		Warnings:  sess.Warnings,
	}

	for _, path := range paths {
		m, err := manifest.Load(opts.FileSystem, path)
		if err != nil {
			return result, err
		}

		for _, entry := range m.Entries {
			if sess.DB.Add(entry.Name, entry.Target, entry.Priority) {
				result.Changed = true
			}
			result.Applied++
		}
	}

	if !result.Changed {
		logger.Debug().Int("applied", result.Applied).Msg("Database already up to date, nothing to commit")
		return result, nil
	}

	commit, err := sess.Commit()
	result.Commit = commit
	if err != nil {
		return result, err
	}

	logger.Info().
		Str("command", "install").
		Int("manifests", len(paths)).
		Int("applied", result.Applied).
		Msg("Command finished")
	return result, nil
}
