package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/format"
	"github.com/agbru/specdec/internal/metrics"
	"github.com/agbru/specdec/internal/orchestration"
	"github.com/agbru/specdec/internal/progress"
	"github.com/agbru/specdec/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numAnalyzers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numAnalyzers, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentSummaryTable lists every analysis with its grid size, duration
// and status. Padding is manual because cells carry ANSI codes.
func (CLIResultPresenter) PresentSummaryTable(results []orchestration.AnalysisResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary ---\n")

	nameW, pointsW, durW := len("Analysis"), len("Points"), len("Duration")
	rows := make([][3]string, len(results))
	for i, res := range results {
		points := "-"
		if res.Report != nil {
			points = format.FormatNumberString(fmt.Sprint(res.Report.GridPoints()))
		}
		rows[i] = [3]string{res.Name, points, format.FormatExecutionDuration(res.Duration)}
		nameW = max(nameW, len(rows[i][0]))
		pointsW = max(pointsW, len(rows[i][1]))
		durW = max(durW, len(rows[i][2]))
	}

	fmt.Fprintf(out, "%sAnalysis%s%s   %sPoints%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameW-len("Analysis")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", pointsW-len("Points")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())
	for i, res := range results {
		status := fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		r := rows[i]
		fmt.Fprintf(out, "%s%s%s%s   %s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), r[0], ui.ColorReset(), padRight("", nameW-len(r[0])),
			r[1], padRight("", pointsW-len(r[1])),
			ui.ColorYellow(), r[2], ui.ColorReset(), padRight("", durW-len(r[2])),
			status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentReport displays one successful report.
func (CLIResultPresenter) PresentReport(result orchestration.AnalysisResult, opts orchestration.PresentationOptions, out io.Writer) {
	switch rep := result.Report.(type) {
	case *analysis.SurfaceReport:
		DisplaySurfaceReport(rep, result.Duration, opts.Verbose, opts.Quiet, out)
	case *analysis.SpeedReport:
		DisplaySpeedReport(rep, result.Duration, opts.Quiet, out)
	default:
		if !opts.Quiet {
			fmt.Fprintf(out, "\n--- %s ---\n", result.Report.Title())
		}
	}
}

// HandleError prints err and maps it to an exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleAnalysisError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints a runtime memory snapshot.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory: %s%s%s\n", ui.ColorGrey(), snap, ui.ColorReset())
}

// DisplayChartsWritten lists the chart files produced by the run.
func DisplayChartsWritten(paths []string, out io.Writer) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(out, "\nCharts written:\n")
	for _, p := range paths {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorCyan(), p, ui.ColorReset())
	}
}
