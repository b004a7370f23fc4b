package orchestration

import (
	"testing"

	"github.com/agbru/specdec/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n         int
		wantNil   bool
		wantMulti bool
	}{
		{n: -1, wantNil: true},
		{n: 0, wantNil: true},
		{n: 1},
		{n: 2, wantMulti: true},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.n)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.n, agg == nil, tt.wantNil)
			continue
		}
		if agg == nil {
			continue
		}
		if agg.NumAnalyzers() != tt.n || agg.IsMultiAnalyzer() != tt.wantMulti {
			t.Errorf("NewProgressAggregator(%d) = {%d, multi %v}", tt.n, agg.NumAnalyzers(), agg.IsMultiAnalyzer())
		}
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	if got := agg.CalculateAverage(); got != 0 {
		t.Errorf("initial average = %v, want 0", got)
	}
	if got := agg.GetETA(); got != 0 {
		t.Errorf("initial ETA = %v, want 0", got)
	}

	ap := agg.Update(progress.ProgressUpdate{AnalyzerIndex: 1, Value: 0.5})
	if ap.AnalyzerIndex != 1 || ap.Value != 0.5 || ap.AverageProgress != 0.25 {
		t.Errorf("Update() = %+v, want index 1, value 0.5, average 0.25", ap)
	}
	ap = agg.Update(progress.ProgressUpdate{AnalyzerIndex: 0, Value: 1})
	if ap.AverageProgress != 0.75 {
		t.Errorf("average = %v, want 0.75", ap.AverageProgress)
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.ProgressUpdate, 3)
	for i := range 3 {
		ch <- progress.ProgressUpdate{Value: float64(i) / 3}
	}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("%d updates left in channel", len(ch))
	}
}
