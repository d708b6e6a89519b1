// Package config provides configuration management for the financial stability report.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources in order of precedence:
//
//  1. Environment variables (highest priority, a .env file is honoured)
//  2. YAML configuration file (finviz.yaml or configs/finviz.yaml, or -config)
//  3. Default values (lowest priority)
//
// With no file and no environment the defaults reproduce the fixed report:
// data/cleaned_students.csv in, viz2_altair.html out.
//
// # Environment Variables
//
// All environment variables follow the pattern FINVIZ_<SECTION>_<FIELD>:
//
//	FINVIZ_INPUT_PATH=data/student.csv
//	FINVIZ_INPUT_DELIMITER=semicolon
//	FINVIZ_OUTPUT_HTML_PATH=out/chart.html
//	FINVIZ_EXPORT_CSV_ENABLED=true
//	FINVIZ_LOGGING_LEVEL=debug
//	FINVIZ_TELEMETRY_METRICS_FILE=metrics/finviz.prom
//
// # Validation
//
// Load validates the merged configuration with go-playground/validator struct tags.
//
// # Path Management
//
// Paths resolves every relative path against the working directory:
//
//	paths, err := config.GetPaths(cfg)
//	fmt.Println(paths.InputFile, paths.OutputHTML)
package config
