// pkg/linker/linker_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MemoryFS
// PURPOSE: Test symlink creation, replacement and removal semantics

package linker_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/linker"
	"github.com/fthomys/update-alternatives/pkg/testutil"
	"github.com/fthomys/update-alternatives/pkg/types"
)

const linkDir = "/usr/local/bin"

func TestMaterialize(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(fs *testutil.MemoryFS)
		entries   []linker.Entry
		wantState map[string]types.LinkState
		wantDest  map[string]string // name -> expected link destination
		wantGone  []string          // names whose link must not exist
		wantErr   bool
	}{
		{
			name: "creates_missing_link",
			entries: []linker.Entry{
				{Name: "editor", Target: "/usr/bin/vim"},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkCreated},
			wantDest:  map[string]string{"editor": "/usr/bin/vim"},
		},
		{
			name: "updates_link_with_wrong_destination",
			setup: func(fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll(linkDir, 0755))
				require.NoError(t, fs.Symlink("/usr/bin/nano", linkDir+"/editor"))
			},
			entries: []linker.Entry{
				{Name: "editor", Target: "/usr/bin/vim"},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkUpdated},
			wantDest:  map[string]string{"editor": "/usr/bin/vim"},
		},
		{
			name: "leaves_correct_link_alone",
			setup: func(fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll(linkDir, 0755))
				require.NoError(t, fs.Symlink("/usr/bin/vim", linkDir+"/editor"))
			},
			entries: []linker.Entry{
				{Name: "editor", Target: "/usr/bin/vim"},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkUnchanged},
			wantDest:  map[string]string{"editor": "/usr/bin/vim"},
		},
		{
			name: "empty_target_removes_link",
			setup: func(fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll(linkDir, 0755))
				require.NoError(t, fs.Symlink("/usr/bin/vim", linkDir+"/editor"))
			},
			entries: []linker.Entry{
				{Name: "editor", Target: ""},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkRemoved},
			wantGone:  []string{"editor"},
		},
		{
			name: "removing_absent_link_is_noop",
			entries: []linker.Entry{
				{Name: "editor", Target: ""},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkUnchanged},
			wantGone:  []string{"editor"},
		},
		{
			name: "refuses_to_replace_regular_file",
			setup: func(fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll(linkDir, 0755))
				require.NoError(t, fs.WriteFile(linkDir+"/editor", []byte("#!/bin/sh\n"), 0755))
			},
			entries: []linker.Entry{
				{Name: "editor", Target: "/usr/bin/vim"},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkFailed},
			wantErr:   true,
		},
		{
			name: "refuses_to_remove_regular_file",
			setup: func(fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll(linkDir, 0755))
				require.NoError(t, fs.WriteFile(linkDir+"/editor", []byte("#!/bin/sh\n"), 0755))
			},
			entries: []linker.Entry{
				{Name: "editor", Target: ""},
			},
			wantState: map[string]types.LinkState{"editor": types.LinkFailed},
			wantErr:   true,
		},
		{
			name: "mixed_entries_in_one_pass",
			setup: func(fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll(linkDir, 0755))
				require.NoError(t, fs.Symlink("/usr/bin/vim", linkDir+"/editor"))
				require.NoError(t, fs.Symlink("/usr/bin/more", linkDir+"/pager"))
			},
			entries: []linker.Entry{
				{Name: "browser", Target: "/usr/bin/firefox"},
				{Name: "editor", Target: "/usr/bin/vim"},
				{Name: "pager", Target: "/usr/bin/less"},
			},
			wantState: map[string]types.LinkState{
				"browser": types.LinkCreated,
				"editor":  types.LinkUnchanged,
				"pager":   types.LinkUpdated,
			},
			wantDest: map[string]string{
				"browser": "/usr/bin/firefox",
				"editor":  "/usr/bin/vim",
				"pager":   "/usr/bin/less",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.NewMemoryFS()
			if tt.setup != nil {
				tt.setup(fs)
			}

			result, err := linker.New(fs).Materialize(linkDir, tt.entries)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, result, "result is reported even on failure")
			require.Len(t, result.Changes, len(tt.entries))

			states := make(map[string]types.LinkState)
			for _, change := range result.Changes {
				states[change.Name] = change.State
			}
			assert.Equal(t, tt.wantState, states)

			for name, dest := range tt.wantDest {
				got, err := fs.Readlink(linkDir + "/" + name)
				require.NoError(t, err)
				assert.Equal(t, dest, got)
			}
			for _, name := range tt.wantGone {
				_, err := fs.Lstat(linkDir + "/" + name)
				assert.True(t, os.IsNotExist(err), "%s should not exist", name)
			}
		})
	}
}

func TestMaterializeCreatesLinkDir(t *testing.T) {
	fs := testutil.NewMemoryFS()

	_, err := linker.New(fs).Materialize(linkDir, []linker.Entry{
		{Name: "editor", Target: "/usr/bin/vim"},
	})
	require.NoError(t, err)

	info, err := fs.Stat(linkDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMaterializePartialFailure(t *testing.T) {
	fs := testutil.NewMemoryFS()
	require.NoError(t, fs.MkdirAll(linkDir, 0755))

	// Fail the editor link's temp file, leave the others alone
	fs.WithError(linkDir+"/.editor.tmp", os.ErrPermission)

	result, err := linker.New(fs).Materialize(linkDir, []linker.Entry{
		{Name: "browser", Target: "/usr/bin/firefox"},
		{Name: "editor", Target: "/usr/bin/vim"},
		{Name: "pager", Target: "/usr/bin/less"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkCreate))
	require.NotNil(t, result)

	assert.Equal(t, 1, result.Failed())
	assert.Equal(t, 2, result.Changed())

	// The healthy links still landed
	dest, readErr := fs.Readlink(linkDir + "/browser")
	require.NoError(t, readErr)
	assert.Equal(t, "/usr/bin/firefox", dest)
	dest, readErr = fs.Readlink(linkDir + "/pager")
	require.NoError(t, readErr)
	assert.Equal(t, "/usr/bin/less", dest)
}

func TestMaterializeCleansStaleTempFile(t *testing.T) {
	fs := testutil.NewMemoryFS()
	require.NoError(t, fs.MkdirAll(linkDir, 0755))
	// A temp file left behind by an interrupted earlier run
	require.NoError(t, fs.Symlink("/usr/bin/stale", linkDir+"/.editor.tmp"))

	result, err := linker.New(fs).Materialize(linkDir, []linker.Entry{
		{Name: "editor", Target: "/usr/bin/vim"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Changed())

	dest, err := fs.Readlink(linkDir + "/editor")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/vim", dest)

	_, err = fs.Lstat(linkDir + "/.editor.tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be cleaned up")
}

func TestMaterializeEmptyEntries(t *testing.T) {
	fs := testutil.NewMemoryFS()

	result, err := linker.New(fs).Materialize(linkDir, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Equal(t, 0, result.Changed())
}
