package analysis

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/agbru/specdec/internal/model"
	"github.com/agbru/specdec/internal/progress"
)

// SurfaceName is the registry key of the surface analysis.
const SurfaceName = "surface"

// SurfaceConfig parameterizes the speedup-surface sweep.
type SurfaceConfig struct {
	Tv float64
	// Ratios is the Ts/Tv grid (surface X axis).
	Ratios []float64
	// Acceptance is the P grid (surface Y axis).
	Acceptance []float64
	// Candidates are the speculation batch sizes searched at every point.
	Candidates []int
	// ExampleRatios and ExampleAcceptance select the tabulated examples;
	// each value is snapped to the nearest grid sample.
	ExampleRatios     []float64
	ExampleAcceptance []float64
}

// DefaultSurfaceConfig returns the reference sweep: 50x50 grid over
// Ts/Tv in [0.01, 0.99] and P in [0.1, 0.9], N from 1 to 10.
func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		Tv:                model.DefaultTv,
		Ratios:            model.Linspace(0.01, 0.99, 50),
		Acceptance:        model.Linspace(0.1, 0.9, 50),
		Candidates:        model.IntRange(1, 10),
		ExampleRatios:     []float64{0.1, 0.3, 0.5, 0.7},
		ExampleAcceptance: []float64{0.3, 0.5, 0.7},
	}
}

// Validate checks grid sizes and that every grid value lies in the model's
// domain.
func (c SurfaceConfig) Validate() error {
	if len(c.Ratios) == 0 || len(c.Acceptance) == 0 {
		return fmt.Errorf("surface grid is empty (%d ratios, %d P values)", len(c.Ratios), len(c.Acceptance))
	}
	if len(c.Candidates) == 0 {
		return fmt.Errorf("surface analysis needs at least one N candidate")
	}
	return validateGrid(c.Tv, c.Ratios, c.Acceptance)
}

// Point3 is a point of a 3D chart.
type Point3 struct {
	X, Y, Z float64
}

// Example is one tabulated configuration of the surface analysis.
type Example struct {
	// Ratio and P are the requested values.
	Ratio, P float64
	// GridRatio and GridP are the nearest grid samples actually reported.
	GridRatio, GridP float64
	OptimalN         int
	Speedup          float64
}

// SurfaceReport holds the speedup surface with the optimal N at every point.
type SurfaceReport struct {
	Config SurfaceConfig
	// SpeedupMesh[i][j] is the best speedup at Acceptance[i], Ratios[j].
	SpeedupMesh [][]float64
	// OptimalNMesh[i][j] is the N reaching SpeedupMesh[i][j].
	OptimalNMesh [][]int
	// BreakEven holds the interpolated points where the best speedup crosses 1.
	BreakEven []Point3
	Examples  []Example
}

// Title implements Report.
func (r *SurfaceReport) Title() string {
	lo, hi := model.Bounds(r.Config.Candidates)
	return fmt.Sprintf("Speculative Decoding Speedup with Optimal N (%d-%d)", lo, hi)
}

// GridPoints implements Report.
func (r *SurfaceReport) GridPoints() int {
	return len(r.Config.Ratios) * len(r.Config.Acceptance) * len(r.Config.Candidates)
}

// At returns the optimal N and speedup at grid indices (pIdx, rIdx).
func (r *SurfaceReport) At(pIdx, rIdx int) (int, float64) {
	return r.OptimalNMesh[pIdx][rIdx], r.SpeedupMesh[pIdx][rIdx]
}

// SurfaceAnalyzer sweeps the speedup surface.
type SurfaceAnalyzer struct {
	config SurfaceConfig
}

// NewSurfaceAnalyzer creates a surface analyzer for cfg.
func NewSurfaceAnalyzer(cfg SurfaceConfig) *SurfaceAnalyzer {
	return &SurfaceAnalyzer{config: cfg}
}

// Name implements Analyzer.
func (a *SurfaceAnalyzer) Name() string { return SurfaceName }

// Config returns the sweep configuration.
func (a *SurfaceAnalyzer) Config() SurfaceConfig { return a.config }

// Analyze implements Analyzer. Rows of the mesh (one per P value) are
// evaluated concurrently.
func (a *SurfaceAnalyzer) Analyze(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int) (rep Report, err error) {
	cfg := a.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &SurfaceReport{
		Config:       cfg,
		SpeedupMesh:  make([][]float64, len(cfg.Acceptance)),
		OptimalNMesh: make([][]int, len(cfg.Acceptance)),
	}
	ctx, span := startSpan(ctx, SurfaceName, report.GridPoints())
	defer func() { endSpan(span, err) }()

	err = sweepRows(ctx, len(cfg.Acceptance), progress.ChannelReporter(progressChan, index), func(i int) {
		speedups := make([]float64, len(cfg.Ratios))
		optimal := make([]int, len(cfg.Ratios))
		buf := make([]float64, len(cfg.Candidates))
		for j, ratio := range cfg.Ratios {
			params := model.Params{Ratio: ratio, P: cfg.Acceptance[i], Tv: cfg.Tv}
			buf = model.Evaluate(model.Speedup, params, cfg.Candidates, buf)
			best := floats.MaxIdx(buf)
			speedups[j] = buf[best]
			optimal[j] = cfg.Candidates[best]
		}
		report.SpeedupMesh[i] = speedups
		report.OptimalNMesh[i] = optimal
	})
	if err != nil {
		return nil, err
	}

	report.BreakEven = BreakEvenCurve(cfg.Ratios, cfg.Acceptance, report.SpeedupMesh)
	report.Examples = lookupExamples(report)
	return report, nil
}

// BreakEvenCurve scans every row of mesh (indexed [P][ratio]) for adjacent
// samples that straddle a speedup of 1 and linearly interpolates the ratio at
// which the crossing happens. A sample sitting exactly on 1 matches both of
// its neighbouring intervals.
func BreakEvenCurve(ratios, acceptance []float64, mesh [][]float64) []Point3 {
	var points []Point3
	for i, row := range mesh {
		for j := 0; j+1 < len(row); j++ {
			s0, s1 := row[j], row[j+1]
			if (s0-1)*(s1-1) > 0 {
				continue
			}
			x := ratios[j]
			if s1 != s0 {
				x += (ratios[j+1] - ratios[j]) * (1 - s0) / (s1 - s0)
			}
			points = append(points, Point3{X: x, Y: acceptance[i], Z: 1})
		}
	}
	return points
}

func lookupExamples(r *SurfaceReport) []Example {
	cfg := r.Config
	examples := make([]Example, 0, len(cfg.ExampleRatios)*len(cfg.ExampleAcceptance))
	for _, ratio := range cfg.ExampleRatios {
		for _, p := range cfg.ExampleAcceptance {
			rIdx := model.NearestIndex(cfg.Ratios, ratio)
			pIdx := model.NearestIndex(cfg.Acceptance, p)
			n, s := r.At(pIdx, rIdx)
			examples = append(examples, Example{
				Ratio:     ratio,
				P:         p,
				GridRatio: cfg.Ratios[rIdx],
				GridP:     cfg.Acceptance[pIdx],
				OptimalN:  n,
				Speedup:   s,
			})
		}
	}
	return examples
}

// validateGrid checks each ratio and each acceptance value once; the model's
// constraints are per-parameter.
func validateGrid(tv float64, ratios, acceptance []float64) error {
	for _, r := range ratios {
		if err := (model.Params{Ratio: r, P: acceptance[0], Tv: tv}).Validate(); err != nil {
			return err
		}
	}
	for _, p := range acceptance {
		if err := (model.Params{Ratio: ratios[0], P: p, Tv: tv}).Validate(); err != nil {
			return err
		}
	}
	return nil
}
