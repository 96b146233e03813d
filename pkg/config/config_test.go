package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fthomys/update-alternatives/pkg/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "/etc/alternatives", cfg.Storage.Dir)
	assert.Equal(t, "/usr/local/bin", cfg.Links.Dir)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, "/etc/update-alternatives/manifests.d", cfg.Manifests.Dir)
}

func TestLoadLayering(t *testing.T) {
	t.Run("file_overrides_defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeConfig(t, tmpDir, "config.toml", `
[storage]
dir = "/srv/alternatives"
`)

		cfg, err := LoadFrom([]string{path}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/srv/alternatives", cfg.Storage.Dir)
		// Untouched keys keep their defaults
		assert.Equal(t, "/usr/local/bin", cfg.Links.Dir)
	})

	t.Run("later_file_overrides_earlier", func(t *testing.T) {
		tmpDir := t.TempDir()
		system := writeConfig(t, tmpDir, "system.toml", `
[storage]
dir = "/srv/alternatives"

[output]
format = "text"
`)
		user := writeConfig(t, tmpDir, "user.toml", `
[storage]
dir = "/home/me/alternatives"
`)

		cfg, err := LoadFrom([]string{system, user}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/home/me/alternatives", cfg.Storage.Dir)
		// Keys only in the earlier file survive
		assert.Equal(t, "text", cfg.Output.Format)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeConfig(t, tmpDir, "config.toml", `
[links]
dir = "/srv/bin"
`)
		t.Setenv("UPDATE_ALTERNATIVES_LINKS_DIR", "/opt/bin")

		cfg, err := LoadFrom([]string{path}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/opt/bin", cfg.Links.Dir)
	})

	t.Run("flag_overrides_win", func(t *testing.T) {
		t.Setenv("UPDATE_ALTERNATIVES_STORAGE_DIR", "/from/env")

		cfg, err := LoadFrom(nil, map[string]interface{}{
			"storage.dir": "/from/flag",
		})
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", cfg.Storage.Dir)
	})

	t.Run("missing_files_are_skipped", func(t *testing.T) {
		cfg, err := LoadFrom([]string{"/nonexistent/config.toml"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/etc/alternatives", cfg.Storage.Dir)
	})

	t.Run("malformed_file_fails", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeConfig(t, tmpDir, "config.toml", "[storage\ndir = ???")

		_, err := LoadFrom([]string{path}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
		wantErr   string
	}{
		{
			name:      "relative_storage_dir",
			overrides: map[string]interface{}{"storage.dir": "alternatives"},
			wantErr:   "storage.dir",
		},
		{
			name:      "relative_links_dir",
			overrides: map[string]interface{}{"links.dir": "bin"},
			wantErr:   "links.dir",
		},
		{
			name:      "unknown_output_format",
			overrides: map[string]interface{}{"output.format": "xml"},
			wantErr:   "output.format",
		},
		{
			name:      "relative_manifests_dir",
			overrides: map[string]interface{}{"manifests.dir": "manifests.d"},
			wantErr:   "manifests.dir",
		},
		{
			name:      "empty_manifests_dir_is_allowed",
			overrides: map[string]interface{}{"manifests.dir": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(nil, tt.overrides)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestUserConfigPath(t *testing.T) {
	path := UserConfigPath()
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasSuffix(path, filepath.Join("update-alternatives", "config.toml")))
}
