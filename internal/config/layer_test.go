package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonPurdie/geoff/internal/config"
)

// writeFile is a test helper that creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLayerMissingFileIsEmpty(t *testing.T) {
	l, err := config.LoadLayer(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, l)
}

func TestLoadLayerEmptyFileIsEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	l, err := config.LoadLayer(path)
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.Empty(t, l)
}

func TestLoadLayerParsesMapping(t *testing.T) {
	path := writeFile(t, t.TempDir(), "g.yaml", "max_iterations: 10\nstudy_docs:\n  - a.md\n  - b.md\nunknown: x\n")

	l, err := config.LoadLayer(path)
	require.NoError(t, err)

	assert.Equal(t, 10, l["max_iterations"])
	assert.Equal(t, []any{"a.md", "b.md"}, l["study_docs"])
	assert.Equal(t, "x", l["unknown"])
}

func TestLoadLayerMalformedIsEmptyWithError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"broken syntax", "max_iterations: [1, 2\n"},
		{"top-level list", "- a\n- b\n"},
		{"top-level scalar", "just a string\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.yaml", tt.content)
			l, err := config.LoadLayer(path)
			assert.ErrorIs(t, err, config.ErrMalformedLayer)
			assert.NotNil(t, l)
			assert.Empty(t, l)
		})
	}
}

func TestLayerHasTreatsNullAsAbsent(t *testing.T) {
	l := config.Layer{"a": nil, "b": ""}
	assert.False(t, l.Has("a"))
	assert.True(t, l.Has("b"))
	assert.False(t, l.Has("c"))
}

func TestLayerCloneIsIndependent(t *testing.T) {
	l := config.Layer{"a": 1}
	c := l.Clone()
	c["b"] = 2
	assert.NotContains(t, l, "b")

	var nilLayer config.Layer
	assert.NotNil(t, nilLayer.Clone())
}

func TestSaveLayerRoundTripAndCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "geoff.yaml")

	require.NoError(t, config.SaveLayer(path, config.Layer{"max_stuck": 3, "task_mode": "oneoff"}))

	l, err := config.LoadLayer(path)
	require.NoError(t, err)
	assert.Equal(t, 3, l["max_stuck"])
	assert.Equal(t, "oneoff", l["task_mode"])

	// No temp files are left behind next to the layer.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestSaveLayerOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoff.yaml")
	require.NoError(t, config.SaveLayer(path, config.Layer{"a": 1, "b": 2}))
	require.NoError(t, config.SaveLayer(path, config.Layer{"a": 5}))

	l, err := config.LoadLayer(path)
	require.NoError(t, err)
	assert.Equal(t, config.Layer{"a": 5}, l)
}
