package genconfig

import (
	"path/filepath"

	"github.com/fthomys/update-alternatives/pkg/config"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	FileSystem types.FS

	// Path is the destination config file. Empty returns the content
	// without writing anything.
	Path string

	// Force overwrites an existing file at Path.
	Force bool
}

// GenConfig outputs or writes the default configuration with every value
// commented out, so the generated file changes nothing until edited.
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &types.GenConfigResult{
		Content: config.GenerateConfigContent(),
	}

	if opts.Path == "" {
		logger.Debug().Msg("Outputting config content")
		return result, nil
	}

	result.Path = opts.Path

	if _, err := opts.FileSystem.Stat(opts.Path); err == nil && !opts.Force {
		return result, errors.Newf(errors.ErrFileWrite, "config file already exists at %s", opts.Path).
			WithDetail("path", opts.Path)
	}

	if err := opts.FileSystem.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "could not create %s", filepath.Dir(opts.Path))
	}

	if err := opts.FileSystem.WriteFile(opts.Path, []byte(result.Content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "could not write config to %s", opts.Path)
	}

	result.Written = true
	logger.Info().Str("path", opts.Path).Msg("Written config file")
	return result, nil
}
