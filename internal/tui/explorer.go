package tui

import (
	"math"

	"github.com/agbru/specdec/internal/model"
)

// Explorer bounds and steps.
const (
	RatioStep = 0.01
	PStep     = 0.05
	MaxRatio  = 1.5
	MaxP      = 0.99
	MaxN      = 64
)

// ExplorerState is the point of the parameter space under the cursor.
type ExplorerState struct {
	Ratio float64
	P     float64
	NMax  int
	Tv    float64
}

// Candidates returns the searched batch sizes, 1..NMax.
func (s ExplorerState) Candidates() []int {
	return model.IntRange(1, s.NMax)
}

// Params returns the model parameters of the state.
func (s ExplorerState) Params() model.Params {
	return model.Params{Ratio: s.Ratio, P: s.P, Tv: s.Tv}
}

// MoveRatio shifts Ts/Tv by steps increments, clamped to [0, MaxRatio].
func (s *ExplorerState) MoveRatio(steps int) {
	s.Ratio = clampRound(s.Ratio+float64(steps)*RatioStep, 0, MaxRatio)
}

// MoveP shifts P by steps increments, clamped to [0, MaxP].
func (s *ExplorerState) MoveP(steps int) {
	s.P = clampRound(s.P+float64(steps)*PStep, 0, MaxP)
}

// MoveN changes NMax by delta, clamped to [1, MaxN].
func (s *ExplorerState) MoveN(delta int) {
	s.NMax = min(max(s.NMax+delta, 1), MaxN)
}

// clampRound keeps v in [lo, hi] and drops float drift beyond 1e-2.
func clampRound(v, lo, hi float64) float64 {
	v = math.Round(v*100) / 100
	return min(max(v, lo), hi)
}

// Evaluation is everything the explorer shows for one state.
type Evaluation struct {
	// Speedups[i] is the speedup at N = i+1.
	Speedups []float64
	Best     model.Optimum
	// TimePerToken is the expected time per token at the best N.
	TimePerToken float64
	// Speed is the throughput at the best N in tokens per time unit.
	Speed float64
	// BreakEven is the largest Ts/Tv that still gains with some N <= NMax.
	BreakEven float64
}

// Evaluate computes the explorer view of s.
func Evaluate(s ExplorerState) Evaluation {
	p := s.Params()
	candidates := s.Candidates()
	speedups := model.Evaluate(model.Speedup, p, candidates, nil)
	best := model.Optimize(p, candidates)
	return Evaluation{
		Speedups:     speedups,
		Best:         best,
		TimePerToken: model.ExpectedTimePerToken(p, best.N),
		Speed:        model.Speed(p, best.N),
		BreakEven:    model.BestBreakEvenRatio(s.P, candidates),
	}
}
