package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"finviz/internal/config"
	apperrors "finviz/internal/errors"
	"finviz/internal/files"
	"finviz/internal/infrastructure"
)

// renderedSelector matches the element vega-embed draws the chart into
const renderedSelector = `#vis canvas, #vis svg`

// Options controls the PNG snapshot of the chart page
type Options struct {
	// Path receives the PNG; empty disables the snapshot
	Path     string
	Timeout  time.Duration
	Headless bool
	// Quality of the full-page screenshot, 0-100
	Quality int
}

// OptionsFrom builds snapshot options from configuration and resolved paths
func OptionsFrom(cfg config.SnapshotConfig, paths *config.Paths) Options {
	opts := Options{
		Timeout:  cfg.Timeout,
		Headless: cfg.Headless,
		Quality:  100,
	}
	if cfg.Enabled {
		opts.Path = paths.Snapshot
	}
	return opts
}

// Enabled reports whether a snapshot should be taken
func (o Options) Enabled() bool {
	return o.Path != ""
}

// Snapshotter renders chart pages in headless Chrome and saves them as PNG
type Snapshotter struct {
	logger *slog.Logger
	files  *files.Manager
	opts   Options
}

// New creates a snapshotter for opts
func New(logger *slog.Logger, opts Options) *Snapshotter {
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultSnapshotTimeout
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 100
	}
	return &Snapshotter{
		logger: infrastructure.WithComponent(logger, "snapshot"),
		files:  files.NewManager(logger),
		opts:   opts,
	}
}

// Capture loads htmlPath in Chrome, waits for the chart to render and writes
// a full-page screenshot to the configured path. It returns the PNG path, or
// "" when snapshots are disabled.
func (s *Snapshotter) Capture(ctx context.Context, htmlPath string) (string, error) {
	if !s.opts.Enabled() {
		return "", nil
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to resolve %s", htmlPath), err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("chart page %s", abs), err)
	}
	pageURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	allocOpts = append(allocOpts, chromedp.Flag("headless", s.opts.Headless))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, s.opts.Timeout)
	defer cancelTimeout()

	start := time.Now()
	var png []byte
	err = chromedp.Run(timeoutCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(renderedSelector, chromedp.ByQuery),
		chromedp.FullScreenshot(&png, s.opts.Quality),
	)
	if err != nil {
		return "", apperrors.NewRenderError("failed to capture chart snapshot", err).
			WithContext("url", pageURL).
			WithContext("timeout", s.opts.Timeout.String())
	}

	if err := s.files.WriteFile(s.opts.Path, png); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to write snapshot %s", s.opts.Path), err)
	}

	s.logger.InfoContext(ctx, "Snapshot written",
		slog.String("path", s.opts.Path),
		slog.Int("bytes", len(png)),
		slog.Duration("duration", time.Since(start)))
	return s.opts.Path, nil
}
