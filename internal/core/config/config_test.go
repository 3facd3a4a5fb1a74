package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NotFoundReturnsDefaults(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := Load(tempDir)
	require.NoError(t, err, "Load should not return error if config not found")
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, filepath.Join("data", "housing"), cfg.Destination.Path)
}

func TestLoad_Valid(t *testing.T) {
	tempDir := t.TempDir()
	content := `
[source]
url = "https://example.com/datasets/census.tgz"

[destination]
path = "datasets/census"
`
	err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/datasets/census.tgz", cfg.Source.URL)
	assert.Equal(t, "datasets/census", cfg.Destination.Path)
}

func TestLoad_PartialFillsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	content := `
[destination]
path = "elsewhere"
`
	err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL, "Missing source URL should default")
	assert.Equal(t, "elsewhere", cfg.Destination.Path)
}

func TestLoad_EmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(""), 0644)
	require.NoError(t, err)

	cfg, err := Load(tempDir)
	require.NoError(t, err, "Load should not error on an empty file")
	assert.Equal(t, Default(), cfg)
}

func TestLoad_InvalidFormat(t *testing.T) {
	tempDir := t.TempDir()
	invalidTomlContent := `
[source
url = "https://example.com/a.tgz"
`
	err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(invalidTomlContent), 0644)
	require.NoError(t, err)

	_, err = Load(tempDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config")
}

func TestWrite_NewFile(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &Config{
		Source:      Source{URL: "github:owner/repo/data/sample.tgz@main"},
		Destination: Destination{Path: "out"},
	}

	require.NoError(t, Write(tempDir, cfg))

	loaded, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWrite_OverwriteFile(t *testing.T) {
	tempDir := t.TempDir()
	initial := `
[source]
url = "https://old.example.com/old.tgz"
`
	err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(initial), 0644)
	require.NoError(t, err)

	cfg := Default()
	cfg.Destination.Path = "new/place"
	require.NoError(t, Write(tempDir, cfg))

	loaded, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSourceURL, loaded.Source.URL)
	assert.Equal(t, "new/place", loaded.Destination.Path)
}
