// Package report runs the financial stability report end to end.
//
// A run validates the input, loads the student dataset, aggregates outcome
// percentages per financial factor, writes the chart page and then the
// optional exports and PNG snapshot. Each step gets its own OpenTelemetry
// span and step_* log records carrying the run's trace ID; the run stops at
// the first failing step.
//
//	runner := report.NewRunner(cfg, paths, logger, telemetry)
//	res, err := runner.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	summary.NewPrinter(os.Stdout).Print(res.Summary(cfg.Output.HTMLPath))
package report
