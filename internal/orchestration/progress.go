package orchestration

import (
	"time"

	"github.com/agbru/specdec/internal/format"
	"github.com/agbru/specdec/internal/progress"
)

// ProgressAggregator folds per-analyzer progress updates into one average
// with an ETA. The CLI spinner and the TUI both consume it.
type ProgressAggregator struct {
	state *format.ProgressWithETA
	count int
}

// NewProgressAggregator returns nil when there is nothing to track.
func NewProgressAggregator(numAnalyzers int) *ProgressAggregator {
	if numAnalyzers <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(numAnalyzers), count: numAnalyzers}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	AnalyzerIndex   int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records u and returns the new aggregate.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(u.AnalyzerIndex, u.Value)
	return AggregatedProgress{AnalyzerIndex: u.AnalyzerIndex, Value: u.Value, AverageProgress: avg, ETA: eta}
}

// CalculateAverage returns the current average without recording anything.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current estimate without recording anything.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

// Elapsed is the time since the aggregator was created.
func (a *ProgressAggregator) Elapsed() time.Duration { return a.state.Elapsed() }

// NumAnalyzers returns the number of tracked analyzers.
func (a *ProgressAggregator) NumAnalyzers() int { return a.count }

// IsMultiAnalyzer reports whether more than one analyzer is tracked.
func (a *ProgressAggregator) IsMultiAnalyzer() bool { return a.count > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
