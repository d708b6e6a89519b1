package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Chart     ChartConfig     `yaml:"chart"`
	Export    ExportConfig    `yaml:"export"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// InputConfig describes the student dataset
type InputConfig struct {
	Path string `yaml:"path" validate:"required"`
	// Delimiter is "auto", "comma", "semicolon" or "tab"
	Delimiter string `yaml:"delimiter" validate:"oneof=auto comma semicolon tab"`
	// Sheet selects the worksheet of an .xlsx input; empty means the first sheet
	Sheet string `yaml:"sheet"`
	// NormalizeBinary maps 1/0 factor cells to Yes/No
	NormalizeBinary bool `yaml:"normalize_binary" split_words:"true"`
}

// OutputConfig contains the chart artifact location
type OutputConfig struct {
	HTMLPath string `yaml:"html_path" split_words:"true" validate:"required"`
}

// ChartConfig contains chart styling
type ChartConfig struct {
	Width  int      `yaml:"width" validate:"min=1"`
	Height int      `yaml:"height" validate:"min=1"`
	Font   string   `yaml:"font" validate:"required"`
	Colors []string `yaml:"colors" validate:"len=3,dive,hexcolor"`
}

// ExportConfig controls the optional side exports. OutcomesCSVPath receives the
// outcome frequency table whenever CSV export is enabled.
type ExportConfig struct {
	CSVEnabled      bool   `yaml:"csv_enabled" split_words:"true"`
	CSVPath         string `yaml:"csv_path" split_words:"true" validate:"required_if=CSVEnabled true"`
	OutcomesCSVPath string `yaml:"outcomes_csv_path" split_words:"true" validate:"required_if=CSVEnabled true"`
	BOMPrefix       bool   `yaml:"bom_prefix" split_words:"true"`
	XLSXEnabled     bool   `yaml:"xlsx_enabled" split_words:"true"`
	XLSXPath        string `yaml:"xlsx_path" split_words:"true" validate:"required_if=XLSXEnabled true"`
}

// SnapshotConfig controls the optional PNG rendering of the chart
type SnapshotConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Path     string        `yaml:"path" validate:"required_if=Enabled true"`
	Timeout  time.Duration `yaml:"timeout" validate:"min=0"`
	Headless bool          `yaml:"headless"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" split_words:"true"`
	Development bool   `yaml:"development"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	// TraceExporter is "none" or "stdout"
	TraceExporter string `yaml:"trace_exporter" split_words:"true" validate:"oneof=none stdout"`
	// TraceFile receives stdout-exporter spans; empty means stderr
	TraceFile string `yaml:"trace_file" split_words:"true"`
	// MetricsFile receives run metrics in Prometheus text format; empty disables metrics
	MetricsFile string `yaml:"metrics_file" split_words:"true"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override file values; unset variables leave fields untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	// Only JSON logs are produced
	if c.Logging.Format != DefaultLogFormat {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// getConfigFilePath returns the first config file found in the usual locations
func getConfigFilePath() string {
	locations := []string{
		"finviz.yaml",
		"configs/finviz.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}

// Default returns the default configuration. It reproduces the fixed
// behaviour of the report: read data/cleaned_students.csv, write viz2_altair.html.
func Default() *Config {
	colors := make([]string, len(DefaultOutcomeColors))
	copy(colors, DefaultOutcomeColors)

	return &Config{
		Input: InputConfig{
			Path:      DefaultInputPath,
			Delimiter: "auto",
		},
		Output: OutputConfig{
			HTMLPath: DefaultOutputHTML,
		},
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
			Font:   DefaultChartFont,
			Colors: colors,
		},
		Export: ExportConfig{
			CSVPath:         DefaultExportCSV,
			OutcomesCSVPath: DefaultExportOutcomesCSV,
			BOMPrefix:       true,
			XLSXPath:        DefaultExportXLSX,
		},
		Snapshot: SnapshotConfig{
			Path:     DefaultSnapshot,
			Timeout:  DefaultSnapshotTimeout,
			Headless: true,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "file",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
