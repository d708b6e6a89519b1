package files

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"finviz/internal/infrastructure"
)

// Manager writes report artifacts. Every write goes to a temporary file in
// the destination directory which is renamed over the target once complete,
// so a failed run never leaves a truncated artifact behind.
type Manager struct {
	logger *slog.Logger
	perm   os.FileMode
}

// NewManager creates a new file manager. A nil logger uses the global logger.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger: infrastructure.WithComponent(logger, "files"),
		perm:   0644,
	}
}

// WriteFile atomically replaces path with data
func (m *Manager) WriteFile(path string, data []byte) error {
	return m.Write(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Write atomically replaces path with whatever fn writes
func (m *Manager) Write(path string, fn func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	// Removing after a successful rename is a no-op
	defer os.Remove(tmpPath)

	buf := bufio.NewWriter(tmp)
	if err := fn(buf); err != nil {
		tmp.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, m.perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	m.logger.Debug("Wrote file",
		slog.String("path", path),
		slog.Int64("size", FileSize(path)))
	return nil
}

// FileSize returns the size of path in bytes, or -1 when it cannot be read
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return info.Size()
}
