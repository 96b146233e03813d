package sync

import (
	"testing"

	"github.com/fthomys/update-alternatives/pkg/testutil"
	"github.com/fthomys/update-alternatives/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync(t *testing.T) {
	t.Run("materializes every winner", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{
			"/usr/bin/nvim": 60,
			"/usr/bin/vim":  50,
		})
		env.WriteGroup("pager", map[string]int{"/usr/bin/less": 10})

		result, err := Sync(SyncOptions{
			FileSystem: env.FS,
			StorageDir: env.StorageDir,
			LinkDir:    env.LinkDir,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Parsed)
		assert.Equal(t, 2, result.Links.Changed())
		assert.Equal(t, "/usr/bin/nvim", env.ReadLink("editor"))
		assert.Equal(t, "/usr/bin/less", env.ReadLink("pager"))
	})

	t.Run("repairs a link deleted behind the tool's back", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{"/usr/bin/vim": 50})

		_, err := Sync(SyncOptions{FileSystem: env.FS, StorageDir: env.StorageDir, LinkDir: env.LinkDir})
		require.NoError(t, err)
		require.NoError(t, env.FS.Remove(env.LinkPath("editor")))

		result, err := Sync(SyncOptions{FileSystem: env.FS, StorageDir: env.StorageDir, LinkDir: env.LinkDir})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Links.Changed())
		assert.Equal(t, "/usr/bin/vim", env.ReadLink("editor"))
	})

	t.Run("second run is idempotent", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{"/usr/bin/vim": 50})

		_, err := Sync(SyncOptions{FileSystem: env.FS, StorageDir: env.StorageDir, LinkDir: env.LinkDir})
		require.NoError(t, err)

		result, err := Sync(SyncOptions{FileSystem: env.FS, StorageDir: env.StorageDir, LinkDir: env.LinkDir})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Links.Changed())
		require.Len(t, result.Links.Changes, 1)
		assert.Equal(t, types.LinkUnchanged, result.Links.Changes[0].State)
	})

	t.Run("never writes the database", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteGroup("editor", map[string]int{"/usr/bin/vim": 50})
		env.WriteGroupRaw("pager", "/usr/bin/less sixty\n")

		result, err := Sync(SyncOptions{FileSystem: env.FS, StorageDir: env.StorageDir, LinkDir: env.LinkDir})

		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "pager", result.Warnings[0].Name)

		// The poisoned file is skipped, not rewritten or removed
		data, err := env.FS.ReadFile(env.GroupPath("pager"))
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/less sixty\n", string(data))

		// And no link was materialized for it
		_, err = env.FS.Lstat(env.LinkPath("pager"))
		assert.Error(t, err)
	})

	t.Run("empty database syncs nothing", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		result, err := Sync(SyncOptions{FileSystem: env.FS, StorageDir: env.StorageDir, LinkDir: env.LinkDir})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Parsed)
		assert.Empty(t, result.Links.Changes)
	})
}
