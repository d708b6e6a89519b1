package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"

	"finviz/internal/config"
	apperrors "finviz/internal/errors"
	"finviz/internal/infrastructure"
	"finviz/internal/report"
	"finviz/internal/summary"
	"finviz/pkg/contracts"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one report. Console output goes to stdout; usage and
// version text go to stderr. Failures are logged before the log file closes.
func run(args []string, stdout, stderr io.Writer) (err error) {
	logger := infrastructure.GetLogger()
	defer func() {
		if err != nil && !errors.Is(err, flag.ErrHelp) {
			logger.Error("Report failed",
				slog.String("error", err.Error()),
				slog.String("error_type", string(apperrors.TypeOf(err))))
		}
		infrastructure.CloseLogFile()
	}()

	fs := flag.NewFlagSet("financial-stability", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("in", "", "student dataset (.csv or .xlsx), defaults to "+config.DefaultInputPath)
	outputPath := fs.String("out", "", "chart HTML file, defaults to "+config.DefaultOutputHTML)
	configFile := fs.String("config", "", "YAML configuration file")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stderr, "%s %s\n", config.AppName, contracts.GetVersionInfo())
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if *outputPath != "" {
		cfg.Output.HTMLPath = *outputPath
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return apperrors.NewConfigError("failed to resolve paths", err)
	}

	logCfg := cfg.Logging
	logCfg.FilePath = paths.LogFile
	appLogger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	logger = appLogger
	paths.LogPathResolution(logger)

	tel, err := infrastructure.InitializeTelemetry(infrastructure.TelemetryOptionsFrom(cfg.Telemetry, paths), logger)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.InfoContext(ctx, "Starting report",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion))

	res, err := report.NewRunner(cfg, paths, logger, tel).Run(ctx)
	if err != nil {
		return err
	}

	return summary.NewPrinter(stdout).Print(res.Summary(cfg.Output.HTMLPath))
}
