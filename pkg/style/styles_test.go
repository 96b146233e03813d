package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	// init() already ran; the registry must be populated from styles.yaml
	require.NotEmpty(t, StyleRegistry)

	for _, name := range []string{
		"Header", "Name", "Target", "Priority", "Selected",
		"Success", "Error", "Warning", "Muted",
	} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %s should be defined", name)
	}
}

func TestGetStyle(t *testing.T) {
	t.Run("known_style", func(t *testing.T) {
		s := GetStyle("Success")
		assert.True(t, s.GetBold())
	})

	t.Run("unknown_style_falls_back", func(t *testing.T) {
		s := GetStyle("DoesNotExist")
		assert.False(t, s.GetBold())
	})
}

func TestLoadStylesFromData(t *testing.T) {
	// Save and restore the package registry
	savedRegistry := StyleRegistry
	savedColors := colors
	defer func() {
		StyleRegistry = savedRegistry
		colors = savedColors
	}()

	t.Run("custom_definitions", func(t *testing.T) {
		err := LoadStylesFromData([]byte(`
colors:
  accent:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Fancy:
    bold: true
    underline: true
    foreground: accent
`))
		require.NoError(t, err)

		s := GetStyle("Fancy")
		assert.True(t, s.GetBold())
		assert.True(t, s.GetUnderline())
	})

	t.Run("malformed_yaml_fails", func(t *testing.T) {
		err := LoadStylesFromData([]byte("colors: ["))
		assert.Error(t, err)
	})
}

func TestIndent(t *testing.T) {
	assert.Contains(t, Indent("x", 1), "x")
}
