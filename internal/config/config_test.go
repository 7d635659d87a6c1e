package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "index.bin", cfg.Storage.IndexFile)
	assert.Equal(t, "data.bin", cfg.Storage.DataFile)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "isam.yaml")
	yaml := "storage:\n  index_file: custom_index.bin\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom_index.bin", cfg.Storage.IndexFile)
	assert.Equal(t, "data.bin", cfg.Storage.DataFile, "unset field falls back to the default")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
