package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.html")

	cfg := Default()
	cfg.Output.HTMLPath = abs

	paths := ResolvePaths(cfg, base)

	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "data", "cleaned_students.csv"), paths.InputFile)
	assert.Equal(t, abs, paths.OutputHTML, "absolute paths are kept")
	assert.Equal(t, filepath.Join(base, "logs", "financial-stability.log"), paths.LogFile)
	assert.Empty(t, paths.TraceFile, "empty paths stay empty")
	assert.Empty(t, paths.Metrics)
}

func TestGetPaths_UsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	paths, err := GetPaths(Default())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, DefaultOutputHTML), paths.OutputHTML)
}

func TestPaths_EnsureOutputDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Output.HTMLPath = "out/charts/viz.html"
	cfg.Export.CSVEnabled = true
	cfg.Export.CSVPath = "exports/rows.csv"

	paths := ResolvePaths(cfg, base)
	require.NoError(t, paths.EnsureOutputDirectories(cfg))

	assert.DirExists(t, filepath.Join(base, "out", "charts"))
	assert.DirExists(t, filepath.Join(base, "exports"))
	assert.NoDirExists(t, filepath.Join(base, "data", "reports"), "disabled exports get no directory")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
}
