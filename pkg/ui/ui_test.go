package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/types"
	"github.com/fthomys/update-alternatives/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "create terminal renderer", format: ui.FormatTerminal},
		{name: "create text renderer", format: ui.FormatText},
		{name: "create json renderer", format: ui.FormatJSON},
		{name: "auto falls back to text for non files", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(tt.format, buf)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, renderer)
			}
		})
	}
}

func TestRendererInterface(t *testing.T) {
	formats := []ui.Format{
		ui.FormatTerminal,
		ui.FormatText,
		ui.FormatJSON,
	}

	for _, format := range formats {
		t.Run(format.String()+" renderer implements interface", func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			assert.NoError(t, renderer.RenderMessage("test message"))
			assert.NoError(t, renderer.RenderError(assert.AnError))
			assert.NoError(t, renderer.RenderResult(&types.SyncResult{Links: &types.LinkResult{}}))
		})
	}
}

func listFixture() *types.ListResult {
	return &types.ListResult{
		Parsed: 3,
		Groups: []types.GroupInfo{
			{
				Name:    "editor",
				Current: "/usr/bin/nvim",
				Records: []types.RecordInfo{
					{Target: "/usr/bin/nvim", Priority: 60, Selected: true},
					{Target: "/usr/bin/vim", Priority: 50},
				},
			},
			{
				Name:    "pager",
				Current: "/usr/bin/less",
				Records: []types.RecordInfo{
					{Target: "/usr/bin/less", Priority: 10, Selected: true},
				},
			},
		},
	}
}

// The text renderer is the compatibility surface: scripts parse these exact
// lines, so they are asserted verbatim.
func TestTextRendererVoice(t *testing.T) {
	render := func(t *testing.T, result interface{}) string {
		t.Helper()
		buf := &bytes.Buffer{}
		renderer, err := ui.NewRenderer(ui.FormatText, buf)
		require.NoError(t, err)
		require.NoError(t, renderer.RenderResult(result))
		return buf.String()
	}

	t.Run("list marks the winner", func(t *testing.T) {
		expected := "update-alternatives: parsed 3 alternatives\n" +
			"update-alternatives: alternatives for editor:\n" +
			"* /usr/bin/nvim 60\n" +
			"  /usr/bin/vim 50\n" +
			"update-alternatives: alternatives for pager:\n" +
			"* /usr/bin/less 10\n"
		assert.Equal(t, expected, render(t, listFixture()))
	})

	t.Run("add reports the new alternative", func(t *testing.T) {
		result := &types.AddResult{
			Parsed:   2,
			Name:     "editor",
			Target:   "/usr/bin/nvim",
			Priority: 60,
			Changed:  true,
		}
		expected := "update-alternatives: parsed 2 alternatives\n" +
			"update-alternatives: added alternative /usr/bin/nvim for editor with priority 60\n"
		assert.Equal(t, expected, render(t, result))
	})

	t.Run("add is silent when nothing changed", func(t *testing.T) {
		result := &types.AddResult{
			Parsed:   2,
			Name:     "editor",
			Target:   "/usr/bin/vim",
			Priority: 50,
		}
		assert.Equal(t, "update-alternatives: parsed 2 alternatives\n", render(t, result))
	})

	t.Run("remove reports the removed alternative", func(t *testing.T) {
		result := &types.RemoveResult{
			Parsed:  2,
			Name:    "editor",
			Target:  "/usr/bin/vim",
			Removed: true,
		}
		expected := "update-alternatives: parsed 2 alternatives\n" +
			"update-alternatives: removed alternative /usr/bin/vim for editor\n"
		assert.Equal(t, expected, render(t, result))
	})

	t.Run("remove is silent for unknown target", func(t *testing.T) {
		result := &types.RemoveResult{
			Parsed: 2,
			Name:   "editor",
			Target: "/usr/bin/emacs",
		}
		assert.Equal(t, "update-alternatives: parsed 2 alternatives\n", render(t, result))
	})

	t.Run("sync prints only the parse summary", func(t *testing.T) {
		result := &types.SyncResult{
			Parsed: 4,
			Links: &types.LinkResult{Changes: []types.LinkChange{
				{Name: "editor", Path: "/usr/local/bin/editor", Target: "/usr/bin/nvim", State: types.LinkCreated},
			}},
		}
		assert.Equal(t, "update-alternatives: parsed 4 alternatives\n", render(t, result))
	})

	t.Run("install reports manifests applied", func(t *testing.T) {
		result := &types.InstallResult{
			Parsed:    1,
			Manifests: []string{"/etc/update-alternatives/manifests.d/neovim.toml"},
			Applied:   2,
			Changed:   true,
		}
		expected := "update-alternatives: parsed 1 alternatives\n" +
			"update-alternatives: applied 2 alternatives from 1 manifests\n"
		assert.Equal(t, expected, render(t, result))
	})

	t.Run("warnings follow the parse summary", func(t *testing.T) {
		result := &types.ListResult{
			Parsed: 1,
			Warnings: []types.ParseWarning{
				{Name: "pager", Path: "/etc/alternatives/pager", Line: 2, Message: `invalid priority "sixty"`},
			},
			Groups: []types.GroupInfo{
				{Name: "editor", Current: "/usr/bin/vim", Records: []types.RecordInfo{
					{Target: "/usr/bin/vim", Priority: 50, Selected: true},
				}},
			},
		}
		expected := "update-alternatives: parsed 1 alternatives\n" +
			"update-alternatives: skipping pager (line 2): invalid priority \"sixty\"\n" +
			"update-alternatives: alternatives for editor:\n" +
			"* /usr/bin/vim 50\n"
		assert.Equal(t, expected, render(t, result))
	})

	t.Run("gen config emits bare content", func(t *testing.T) {
		result := &types.GenConfigResult{Content: "[storage]\n# dir = \"/etc/alternatives\"\n"}
		assert.Equal(t, result.Content, render(t, result))
	})

	t.Run("gen config reports the written path", func(t *testing.T) {
		result := &types.GenConfigResult{
			Path:    "/etc/update-alternatives/config.toml",
			Content: "[storage]\n",
			Written: true,
		}
		expected := "update-alternatives: wrote config to /etc/update-alternatives/config.toml\n"
		assert.Equal(t, expected, render(t, result))
	})
}

func TestTextRendererError(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("error codes are stripped", func(t *testing.T) {
		buf.Reset()
		renderErr := errors.Newf(errors.ErrGroupNotFound, "no alternatives found for %s", "editor")
		require.NoError(t, renderer.RenderError(renderErr))
		assert.Equal(t, "update-alternatives: no alternatives found for editor\n", buf.String())
	})

	t.Run("wrapped causes stay visible", func(t *testing.T) {
		buf.Reset()
		renderErr := errors.Wrap(assert.AnError, errors.ErrStoreWrite, "could not commit changes to /etc/alternatives")
		require.NoError(t, renderer.RenderError(renderErr))
		assert.Equal(t,
			"update-alternatives: could not commit changes to /etc/alternatives: "+assert.AnError.Error()+"\n",
			buf.String())
	})

	t.Run("message passes through unprefixed", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello"))
		assert.Equal(t, "hello\n", buf.String())
	})
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("render error carries the code", func(t *testing.T) {
		buf.Reset()
		renderErr := errors.Newf(errors.ErrGroupNotFound, "no alternatives found for %s", "editor")
		require.NoError(t, renderer.RenderError(renderErr))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "no alternatives found for editor", result["error"])
		assert.Equal(t, "GROUP_NOT_FOUND", result["code"])
	})

	t.Run("render list result round trips", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(listFixture()))

		var result types.ListResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, 3, result.Parsed)
		require.Len(t, result.Groups, 2)
		assert.Equal(t, "editor", result.Groups[0].Name)
		assert.Equal(t, "/usr/bin/nvim", result.Groups[0].Current)
		assert.True(t, result.Groups[0].Records[0].Selected)
	})
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("render list", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(listFixture()))

		output := buf.String()
		assert.Contains(t, output, "editor")
		assert.Contains(t, output, "/usr/bin/nvim")
		assert.Contains(t, output, "60")
		assert.Contains(t, output, "*")
	})

	t.Run("render sync shows link outcomes", func(t *testing.T) {
		buf.Reset()
		result := &types.SyncResult{
			Parsed: 2,
			Links: &types.LinkResult{Changes: []types.LinkChange{
				{Name: "editor", Path: "/usr/local/bin/editor", Target: "/usr/bin/nvim", State: types.LinkCreated},
				{Name: "pager", Path: "/usr/local/bin/pager", State: types.LinkFailed, Error: "permission denied"},
			}},
		}
		require.NoError(t, renderer.RenderResult(result))

		output := buf.String()
		assert.Contains(t, output, "created")
		assert.Contains(t, output, "failed")
		assert.Contains(t, output, "permission denied")
		assert.Contains(t, output, "1 links changed")
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		renderErr := errors.Newf(errors.ErrGroupNotFound, "no alternatives found for %s", "editor")
		require.NoError(t, renderer.RenderError(renderErr))

		output := buf.String()
		assert.Contains(t, output, "error:")
		assert.Contains(t, output, "no alternatives found for editor")
		assert.NotContains(t, output, "GROUP_NOT_FOUND")
	})
}
