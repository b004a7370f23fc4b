package tui

import (
	"time"

	"github.com/agbru/specdec/internal/orchestration"
)

// TickMsg drives the periodic host sampling.
type TickMsg time.Time

// SysStatsMsg carries one host load sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	MemUsed    uint64
}

// ProgressMsg is an aggregated sweep progress update.
type ProgressMsg struct {
	AnalyzerIndex   int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// ReportMsg carries one successful analysis.
type ReportMsg struct {
	Result     orchestration.AnalysisResult
	Generation uint64
}

// SweepErrorMsg carries the first failure of a sweep run.
type SweepErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// SweepDoneMsg ends a sweep run. Every run-scoped message carries the
// generation of the sweep that sent it; stale generations are ignored.
type SweepDoneMsg struct {
	ExitCode   int
	Generation uint64
}
