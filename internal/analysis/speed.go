package analysis

import (
	"context"
	"fmt"

	"github.com/agbru/specdec/internal/model"
	"github.com/agbru/specdec/internal/progress"
)

// SpeedName is the registry key of the speed analysis.
const SpeedName = "speed"

// SpeedConfig parameterizes the speed-surface sweep at a fixed acceptance
// probability.
type SpeedConfig struct {
	Tv float64
	// P is the fixed acceptance probability.
	P float64
	// Ratios is the Ts/Tv grid (surface X axis).
	Ratios []float64
	// Candidates are the speculated token counts (surface Y axis).
	Candidates []int
}

// DefaultSpeedConfig returns the reference sweep: P = 0.6, Ts/Tv in
// [0.01, 0.99] over 50 points, N from 1 to 19.
func DefaultSpeedConfig() SpeedConfig {
	return SpeedConfig{
		Tv:         model.DefaultTv,
		P:          0.6,
		Ratios:     model.Linspace(0.01, 0.99, 50),
		Candidates: model.IntRange(1, 19),
	}
}

// Validate checks grid sizes and the parameter domain.
func (c SpeedConfig) Validate() error {
	if len(c.Ratios) == 0 {
		return fmt.Errorf("speed grid is empty")
	}
	if len(c.Candidates) == 0 {
		return fmt.Errorf("speed analysis needs at least one N value")
	}
	return validateGrid(c.Tv, c.Ratios, []float64{c.P})
}

// OptimalPoint is the best N for one Ts/Tv ratio.
type OptimalPoint struct {
	Ratio float64
	N     int
	// Speed is in tokens per time unit.
	Speed float64
}

// SpeedReport holds the speed surface and the per-ratio optimum.
type SpeedReport struct {
	Config SpeedConfig
	// SpeedMesh[k][j] is the speed at Candidates[k], Ratios[j].
	SpeedMesh [][]float64
	// Optimal has one entry per ratio, in grid order.
	Optimal []OptimalPoint
}

// Title implements Report.
func (r *SpeedReport) Title() string {
	return fmt.Sprintf("Speculative Decoding Speed with P=%.1f", r.Config.P)
}

// GridPoints implements Report.
func (r *SpeedReport) GridPoints() int {
	return len(r.Config.Ratios) * len(r.Config.Candidates)
}

// SpeedAnalyzer sweeps speed over (Ts/Tv, N).
type SpeedAnalyzer struct {
	config SpeedConfig
}

// NewSpeedAnalyzer creates a speed analyzer for cfg.
func NewSpeedAnalyzer(cfg SpeedConfig) *SpeedAnalyzer {
	return &SpeedAnalyzer{config: cfg}
}

// Name implements Analyzer.
func (a *SpeedAnalyzer) Name() string { return SpeedName }

// Config returns the sweep configuration.
func (a *SpeedAnalyzer) Config() SpeedConfig { return a.config }

// Analyze implements Analyzer. Rows of the mesh (one per N) are evaluated
// concurrently; the per-ratio optimum is taken over the finished mesh.
func (a *SpeedAnalyzer) Analyze(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int) (rep Report, err error) {
	cfg := a.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &SpeedReport{
		Config:    cfg,
		SpeedMesh: make([][]float64, len(cfg.Candidates)),
	}
	ctx, span := startSpan(ctx, SpeedName, report.GridPoints())
	defer func() { endSpan(span, err) }()

	err = sweepRows(ctx, len(cfg.Candidates), progress.ChannelReporter(progressChan, index), func(k int) {
		row := make([]float64, len(cfg.Ratios))
		for j, ratio := range cfg.Ratios {
			row[j] = model.Speed(model.Params{Ratio: ratio, P: cfg.P, Tv: cfg.Tv}, cfg.Candidates[k])
		}
		report.SpeedMesh[k] = row
	})
	if err != nil {
		return nil, err
	}

	report.Optimal = make([]OptimalPoint, len(cfg.Ratios))
	for j, ratio := range cfg.Ratios {
		best := 0
		for k := range cfg.Candidates {
			if report.SpeedMesh[k][j] > report.SpeedMesh[best][j] {
				best = k
			}
		}
		report.Optimal[j] = OptimalPoint{Ratio: ratio, N: cfg.Candidates[best], Speed: report.SpeedMesh[best][j]}
	}
	return report, nil
}
