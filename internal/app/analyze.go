package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/cli"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/logging"
	"github.com/agbru/specdec/internal/metrics"
	"github.com/agbru/specdec/internal/orchestration"
)

// runAnalyze runs the selected sweeps, prints their reports, then writes
// charts, the text report and the metrics file.
func (a *Application) runAnalyze(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	analyzers := orchestration.GetAnalyzersToRun(a.Config.Analysis, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(analyzers, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	a.Logger.Debug("starting sweeps", logging.Int("analyzers", len(analyzers)), logging.Duration("timeout", a.Config.Timeout))
	results := orchestration.ExecuteAnalyses(ctx, analyzers, reporter, progressOut)
	a.markTimeouts(results)
	a.observe(results)

	presOpts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	exitCode := orchestration.AnalyzeResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if code := a.writeOutputs(ctx, results, out); exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	if a.Config.Verbose {
		cli.DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), out)
	}
	return exitCode
}

// markTimeouts turns deadline failures into TimeoutErrors carrying the
// configured limit.
func (a *Application) markTimeouts(results []orchestration.AnalysisResult) {
	for i, res := range results {
		if res.Err != nil && errors.Is(res.Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.AnalysisError{
				Analysis: res.Name,
				Cause:    apperrors.TimeoutError{Operation: res.Name + " sweep", Limit: a.Config.Timeout},
			}
		}
	}
}

// observe feeds the metrics recorder and logs one line per analysis.
func (a *Application) observe(results []orchestration.AnalysisResult) {
	for _, res := range results {
		points := 0
		if res.Report != nil {
			points = res.Report.GridPoints()
		}
		a.Recorder.ObserveAnalysis(res.Name, points, res.Duration, res.Err)
		if res.Err != nil {
			a.Logger.Error("analysis failed", res.Err, logging.String("analysis", res.Name), logging.Duration("duration", res.Duration))
			continue
		}
		a.Logger.Info("analysis finished",
			logging.String("analysis", res.Name),
			logging.Int("grid_points", points),
			logging.Duration("duration", res.Duration))

		switch rep := res.Report.(type) {
		case *analysis.SurfaceReport:
			a.Recorder.SetBreakEvenPoints(len(rep.BreakEven))
			var ns []int
			for _, row := range rep.OptimalNMesh {
				ns = append(ns, row...)
			}
			a.Recorder.ObserveOptimalN(res.Name, ns)
		case *analysis.SpeedReport:
			ns := make([]int, len(rep.Optimal))
			for i, pt := range rep.Optimal {
				ns[i] = pt.N
			}
			a.Recorder.ObserveOptimalN(res.Name, ns)
		}
	}
}

// writeOutputs renders the successful reports and writes the optional text
// report and metrics file. It returns the exit code of the first failure.
func (a *Application) writeOutputs(ctx context.Context, results []orchestration.AnalysisResult, out io.Writer) int {
	var reports []analysis.Report
	for _, res := range results {
		if res.Err == nil && res.Report != nil {
			reports = append(reports, res.Report)
		}
	}

	var errs []error
	if len(reports) > 0 && ctx.Err() == nil {
		start := time.Now()
		paths, err := a.Renderer.Render(ctx, reports)
		for _, p := range paths {
			a.Recorder.ChartRendered(strings.TrimPrefix(filepath.Ext(p), "."))
		}
		a.Logger.Debug("charts rendered", logging.Int("files", len(paths)), logging.Duration("duration", time.Since(start)))
		if !a.Config.Quiet {
			cli.DisplayChartsWritten(paths, out)
		}
		errs = append(errs, err)
	}

	if a.Config.OutputFile != "" {
		err := cli.WriteReportToFile(a.Config.OutputFile, results)
		if err == nil && !a.Config.Quiet {
			cli.DisplayReportSaved(a.Config.OutputFile, out)
		}
		errs = append(errs, apperrors.WrapError(err, "saving report"))
	}

	if a.Config.MetricsFile != "" {
		errs = append(errs, a.Recorder.WriteTextfile(a.Config.MetricsFile))
	}

	if err := errors.Join(errs...); err != nil {
		a.Logger.Error("writing outputs failed", err)
		return apperrors.HandleAnalysisError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}
