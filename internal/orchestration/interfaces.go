package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/progress"
)

// AnalysisResult encapsulates the outcome of a single analysis run.
// It serves as the shared domain type between orchestration and presentation layers.
type AnalysisResult struct {
	// Name is the registry key of the analysis (e.g., "surface").
	Name string
	// Report is the computed report. It is nil if an error occurred.
	Report analysis.Report
	// Duration is the wall time of the sweep.
	Duration time.Duration
	// Err contains any error that occurred during the sweep.
	Err error
}

// PresentationOptions configures how reports are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying sweep progress.
// Implementations handle the visual representation (spinner, progress bar)
// while the orchestration layer coordinates the analyses.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numAnalyzers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numAnalyzers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numAnalyzers int, out io.Writer) {
	f(wg, progressChan, numAnalyzers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting analysis reports.
type ResultPresenter interface {
	// PresentSummaryTable displays one line per analysis run.
	PresentSummaryTable(results []AnalysisResult, out io.Writer)

	// PresentReport displays the body of one successful report.
	PresentReport(result AnalysisResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles analysis errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
