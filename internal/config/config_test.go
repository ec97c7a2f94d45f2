package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BatchRenamer/internal/listing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, float32(DefaultWidth), cfg.Window.Width)

	st, err := cfg.InitialState()
	require.NoError(t, err)
	assert.Equal(t, listing.Files, st.Mode)
	assert.Equal(t, listing.ByName, st.SortBy)
	assert.Empty(t, st.Directory)
}

func TestLoad_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "batchren.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
logging:
  level: debug
session:
  directory: /srv/photos
  mode: Folders
  sort_by: Date Modified
window:
  width: 1024
`), 0o644))

	cfg, err := Load(New(), file)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, float32(1024), cfg.Window.Width)
	assert.Equal(t, float32(DefaultHeight), cfg.Window.Height)

	st, err := cfg.InitialState()
	require.NoError(t, err)
	assert.Equal(t, "/srv/photos", st.Directory)
	assert.Equal(t, listing.Folders, st.Mode)
	assert.Equal(t, listing.ByDateModified, st.SortBy)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("BATCHREN_SESSION_MODE", "sideways")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	_, err = cfg.InitialState()
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
