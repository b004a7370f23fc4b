package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per analyzer so that
// sweep goroutines rarely block on a slow display.
const ProgressBufferMultiplier = 64

// ExecuteAnalyses runs every analyzer concurrently and collects one result
// per analyzer, in input order. A failing analyzer does not cancel the
// others; its error is stored in its result.
func ExecuteAnalyses(ctx context.Context, analyzers []analysis.Analyzer, reporter ProgressReporter, out io.Writer) []AnalysisResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]AnalysisResult, len(analyzers))
	progressChan := make(chan progress.ProgressUpdate, len(analyzers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(analyzers), out)

	for i, a := range analyzers {
		g.Go(func() error {
			start := time.Now()
			rep, err := a.Analyze(ctx, progressChan, i)
			if err != nil {
				err = apperrors.AnalysisError{Analysis: a.Name(), Cause: err}
			}
			results[i] = AnalysisResult{Name: a.Name(), Report: rep, Duration: time.Since(start), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults presents the outcome of a run and returns the process exit
// code. Successful reports are presented in the order they were requested;
// the summary table lists failures last. The run succeeds only if every
// analysis succeeded.
func AnalyzeResults(results []AnalysisResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	var firstErr error
	var firstErrDuration time.Duration
	for _, res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr, firstErrDuration = res.Err, res.Duration
			}
			continue
		}
		presenter.PresentReport(res, opts, out)
	}

	summary := make([]AnalysisResult, len(results))
	copy(summary, results)
	sort.SliceStable(summary, func(i, j int) bool {
		return (summary[i].Err == nil) && (summary[j].Err != nil)
	})
	if len(summary) > 1 || opts.Verbose {
		presenter.PresentSummaryTable(summary, out)
	}

	if firstErr != nil {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. At least one analysis did not complete.\n")
		}
		return errHandler.HandleError(firstErr, firstErrDuration, out)
	}
	return apperrors.ExitSuccess
}
