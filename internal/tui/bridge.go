package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/orchestration"
	"github.com/agbru/specdec/internal/progress"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
	// send replaces program.Send in tests.
	send func(tea.Msg)
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p, send := r.program, r.send
	r.mu.RUnlock()
	switch {
	case send != nil:
		send(msg)
	case p != nil:
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by
// forwarding aggregated updates as ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel into the program.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numAnalyzers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numAnalyzers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			AnalyzerIndex:   ap.AnalyzerIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.generation,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// TUIResultPresenter sends reports and errors to the program instead of
// writing them out.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentSummaryTable is a no-op; the explorer lists each report as it
// arrives.
func (t *TUIResultPresenter) PresentSummaryTable([]orchestration.AnalysisResult, io.Writer) {}

// PresentReport sends one finished analysis.
func (t *TUIResultPresenter) PresentReport(result orchestration.AnalysisResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ReportMsg{Result: result, Generation: t.generation})
}

// HandleError sends the failure and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(SweepErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	return apperrors.ExitCodeFor(err)
}
