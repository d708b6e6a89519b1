package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file location used by a report run.
// Relative configuration values are resolved against BaseDir.
type Paths struct {
	BaseDir        string
	InputFile      string
	OutputHTML     string
	LogFile        string
	ExportCSV      string
	ExportOutcomes string
	ExportXLSX     string
	Snapshot       string
	TraceFile      string
	Metrics        string
}

// GetPaths resolves the configured paths against the current working directory
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %v", err)
	}
	return ResolvePaths(cfg, wd), nil
}

// ResolvePaths resolves the configured paths against baseDir
func ResolvePaths(cfg *Config, baseDir string) *Paths {
	return &Paths{
		BaseDir:        baseDir,
		InputFile:      resolve(baseDir, cfg.Input.Path),
		OutputHTML:     resolve(baseDir, cfg.Output.HTMLPath),
		LogFile:        resolve(baseDir, cfg.Logging.FilePath),
		ExportCSV:      resolve(baseDir, cfg.Export.CSVPath),
		ExportOutcomes: resolve(baseDir, cfg.Export.OutcomesCSVPath),
		ExportXLSX:     resolve(baseDir, cfg.Export.XLSXPath),
		Snapshot:       resolve(baseDir, cfg.Snapshot.Path),
		TraceFile:      resolve(baseDir, cfg.Telemetry.TraceFile),
		Metrics:        resolve(baseDir, cfg.Telemetry.MetricsFile),
	}
}

// EnsureOutputDirectories creates the parent directories of every enabled output
func (p *Paths) EnsureOutputDirectories(cfg *Config) error {
	files := []string{p.OutputHTML}
	if cfg.Export.CSVEnabled {
		files = append(files, p.ExportCSV, p.ExportOutcomes)
	}
	if cfg.Export.XLSXEnabled {
		files = append(files, p.ExportXLSX)
	}
	if cfg.Snapshot.Enabled {
		files = append(files, p.Snapshot)
	}

	logger := slog.Default()
	for _, f := range files {
		dir := filepath.Dir(f)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved report paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("input", p.InputFile),
		slog.String("output_html", p.OutputHTML),
		slog.String("log_file", p.LogFile))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
