package add

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Run("adds a record and commits database and link", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		result, err := Add(AddOptions{
			FileSystem: env.FS,
			StorageDir: env.StorageDir,
			LinkDir:    env.LinkDir,
			Name:       "editor",
			Target:     "/usr/bin/vim",
			Priority:   50,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Parsed)
		assert.True(t, result.Changed)
		require.NotNil(t, result.Commit)
		assert.True(t, result.Commit.Persisted)
		assert.Equal(t, 1, result.Commit.Links.Changed())

		data, err := env.FS.ReadFile(env.GroupPath("editor"))
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/vim 50\n", string(data))
		assert.Equal(t, "/usr/bin/vim", env.ReadLink("editor"))
	})

	t.Run("higher priority takes over the link", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{"/usr/bin/vim": 50})

		result, err := Add(AddOptions{
			FileSystem: env.FS,
			StorageDir: env.StorageDir,
			LinkDir:    env.LinkDir,
			Name:       "editor",
			Target:     "/usr/bin/nvim",
			Priority:   60,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Parsed)
		assert.True(t, result.Changed)
		assert.Equal(t, "/usr/bin/nvim", env.ReadLink("editor"))
	})

	t.Run("identical record is a no-op that writes nothing", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{"/usr/bin/vim": 50})

		result, err := Add(AddOptions{
			FileSystem: env.FS,
			StorageDir: env.StorageDir,
			LinkDir:    env.LinkDir,
			Name:       "editor",
			Target:     "/usr/bin/vim",
			Priority:   50,
		})

		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Nil(t, result.Commit)

		// No materialization ran, so no link appeared
		_, err = env.FS.Lstat(env.LinkPath("editor"))
		assert.Error(t, err)
	})

	t.Run("re-adding a target updates its priority", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{
			"/usr/bin/vim":  50,
			"/usr/bin/nano": 40,
		})

		result, err := Add(AddOptions{
			FileSystem: env.FS,
			StorageDir: env.StorageDir,
			LinkDir:    env.LinkDir,
			Name:       "editor",
			Target:     "/usr/bin/nano",
			Priority:   70,
		})

		require.NoError(t, err)
		assert.True(t, result.Changed)

		data, err := env.FS.ReadFile(env.GroupPath("editor"))
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/nano 70\n/usr/bin/vim 50\n", string(data))
		assert.Equal(t, "/usr/bin/nano", env.ReadLink("editor"))
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		for _, name := range []string{"", ".editor", "bin/editor"} {
			_, err := Add(AddOptions{
				FileSystem: env.FS,
				StorageDir: env.StorageDir,
				LinkDir:    env.LinkDir,
				Name:       name,
				Target:     "/usr/bin/vim",
				Priority:   50,
			})
			require.Error(t, err, "name %q", name)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		}
	})

	t.Run("rejects empty and relative targets", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		for _, target := range []string{"", "vim", "bin/vim"} {
			_, err := Add(AddOptions{
				FileSystem: env.FS,
				StorageDir: env.StorageDir,
				LinkDir:    env.LinkDir,
				Name:       "editor",
				Target:     target,
				Priority:   50,
			})
			require.Error(t, err, "target %q", target)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		}
	})

	t.Run("persist failure reports the commit voice", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		fs := env.FS.(*testutil.MemoryFS)
		fs.WithError(filepath.Join(env.StorageDir, ".editor.tmp"), os.ErrPermission)

		result, err := Add(AddOptions{
			FileSystem: env.FS,
			StorageDir: env.StorageDir,
			LinkDir:    env.LinkDir,
			Name:       "editor",
			Target:     "/usr/bin/vim",
			Priority:   50,
		})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStoreWrite))
		assert.Contains(t, errors.UserMessage(err), "could not commit changes to "+env.StorageDir)
		require.NotNil(t, result)
		require.NotNil(t, result.Commit)
		assert.False(t, result.Commit.Persisted)
	})
}
