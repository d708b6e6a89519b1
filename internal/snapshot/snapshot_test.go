package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finviz/internal/aggregator"
	"finviz/internal/chart"
	"finviz/internal/config"
	apperrors "finviz/internal/errors"
	"finviz/internal/shared/testutil"
)

func TestOptionsFrom(t *testing.T) {
	cfg := config.Default()
	paths := config.ResolvePaths(cfg, "/base")

	opts := OptionsFrom(cfg.Snapshot, paths)
	assert.False(t, opts.Enabled())
	assert.Equal(t, config.DefaultSnapshotTimeout, opts.Timeout)
	assert.True(t, opts.Headless)

	cfg.Snapshot.Enabled = true
	opts = OptionsFrom(cfg.Snapshot, paths)
	assert.True(t, opts.Enabled())
	assert.Equal(t, filepath.Join("/base", config.DefaultSnapshot), opts.Path)
}

func TestNew_Defaults(t *testing.T) {
	s := New(nil, Options{Quality: 500})
	assert.Equal(t, config.DefaultSnapshotTimeout, s.opts.Timeout)
	assert.Equal(t, 100, s.opts.Quality)
}

func TestCapture_Disabled(t *testing.T) {
	path, err := New(nil, Options{}).Capture(context.Background(), "does-not-matter.html")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestCapture_MissingPage(t *testing.T) {
	dir := t.TempDir()
	s := New(nil, Options{Path: filepath.Join(dir, "chart.png")})

	_, err := s.Capture(context.Background(), filepath.Join(dir, "missing.html"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))
	assert.NoFileExists(t, filepath.Join(dir, "chart.png"))
}

// TestCapture_Chrome needs a local Chrome and network access for the CDN
func TestCapture_Chrome(t *testing.T) {
	if os.Getenv("FINVIZ_CHROME_TESTS") == "" {
		t.Skip("set FINVIZ_CHROME_TESTS=1 to run against a local Chrome")
	}

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "viz2_altair.html")
	spec, err := chart.BuildSpec(aggregator.Aggregate(testutil.ScenarioA()), chart.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, chart.NewRenderer(nil).WriteHTML(htmlPath, spec))

	s := New(nil, Options{Path: filepath.Join(dir, "viz2_altair.png"), Timeout: time.Minute, Headless: true})
	path, err := s.Capture(context.Background(), htmlPath)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}
