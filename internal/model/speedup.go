package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	apperrors "github.com/agbru/specdec/internal/errors"
)

// DefaultTv is the normalized verification step cost.
const DefaultTv = 1.0

// Params describes one point of the model's parameter space.
type Params struct {
	// Ratio is Ts/Tv, the cost of one draft step relative to one verification step.
	Ratio float64
	// P is the probability that a speculated token is accepted by the verifier.
	P float64
	// Tv is the cost of one verification step.
	Tv float64
}

// Validate checks that the parameters lie inside the model's domain.
// P must be strictly below 1: at P = 1 the expected time per token is 0/0.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"ratio", p.Ratio}, {"p", p.P}, {"tv", p.Tv}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return apperrors.ValidationError{Field: f.name, Message: "must be a finite number"}
		}
	}
	if p.Tv <= 0 {
		return apperrors.ValidationError{Field: "tv", Message: fmt.Sprintf("must be > 0, got %g", p.Tv)}
	}
	if p.P < 0 || p.P >= 1 {
		return apperrors.ValidationError{Field: "p", Message: fmt.Sprintf("must be in [0, 1), got %g", p.P)}
	}
	if p.Ratio < 0 {
		return apperrors.ValidationError{Field: "ratio", Message: fmt.Sprintf("must be >= 0, got %g", p.Ratio)}
	}
	return nil
}

// ExpectedTimePerToken returns the expected wall time spent per emitted token
// when n tokens are speculated per round:
//
//	((r*Tv*n) + Tv) * (1 - P) / (1 - P^(n+1))
//
// The denominator term (1 - P^(n+1)) / (1 - P) is the expected number of
// tokens a round emits, counting the verifier's own token.
func ExpectedTimePerToken(p Params, n int) float64 {
	roundCost := p.Ratio*p.Tv*float64(n) + p.Tv
	return roundCost * (1 - p.P) / (1 - math.Pow(p.P, float64(n+1)))
}

// Speed returns the speculative throughput in tokens per time unit.
func Speed(p Params, n int) float64 {
	return 1.0 / ExpectedTimePerToken(p, n)
}

// Speedup returns the speculative throughput relative to plain sequential
// decoding, whose throughput is 1/Tv.
func Speedup(p Params, n int) float64 {
	return Speed(p, n) / (1.0 / p.Tv)
}

// Optimum is the result of a discrete search over speculation batch sizes.
type Optimum struct {
	// N is the best batch size among the candidates.
	N int
	// Index is the position of N in the candidate slice.
	Index int
	// Value is the objective (speedup or speed) reached at N.
	Value float64
}

// Objective evaluates a model quantity for a batch size.
type Objective func(p Params, n int) float64

// Optimize returns the candidate N maximizing speedup. Ties resolve to the
// earliest candidate. It panics if candidates is empty.
func Optimize(p Params, candidates []int) Optimum {
	return OptimizeFor(Speedup, p, candidates)
}

// OptimizeFor returns the candidate N maximizing the given objective.
func OptimizeFor(obj Objective, p Params, candidates []int) Optimum {
	values := Evaluate(obj, p, candidates, nil)
	idx := floats.MaxIdx(values)
	return Optimum{N: candidates[idx], Index: idx, Value: values[idx]}
}

// Evaluate fills dst with obj evaluated at every candidate. dst is grown as
// needed and returned.
func Evaluate(obj Objective, p Params, candidates []int, dst []float64) []float64 {
	if cap(dst) < len(candidates) {
		dst = make([]float64, len(candidates))
	}
	dst = dst[:len(candidates)]
	for i, n := range candidates {
		dst[i] = obj(p, n)
	}
	return dst
}

// BreakEvenRatio returns the cost ratio at which speculating n tokens per
// round gives exactly the baseline throughput: (P + P^2 + ... + P^n) / n.
// Below this ratio speculation pays off. It returns 0 for n <= 0.
func BreakEvenRatio(acceptance float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	sum, term := 0.0, 1.0
	for k := 1; k <= n; k++ {
		term *= acceptance
		sum += term
	}
	return sum / float64(n)
}

// BestBreakEvenRatio returns the largest break-even ratio over the candidate
// batch sizes: the point past which no candidate beats the baseline.
func BestBreakEvenRatio(acceptance float64, candidates []int) float64 {
	best := 0.0
	for _, n := range candidates {
		if r := BreakEvenRatio(acceptance, n); r > best {
			best = r
		}
	}
	return best
}
