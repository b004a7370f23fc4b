package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns count evenly spaced values over [lo, hi], both ends
// included. It returns nil for count <= 0 and [lo] for count == 1.
func Linspace(lo, hi float64, count int) []float64 {
	switch {
	case count <= 0:
		return nil
	case count == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, count), lo, hi)
}

// IntRange returns the integers lo, lo+1, ..., hi. It returns nil when hi < lo.
func IntRange(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	return out
}

// NearestIndex returns the index of the grid value closest to v. Ties resolve
// to the lower index. It returns -1 for an empty grid.
func NearestIndex(grid []float64, v float64) int {
	if len(grid) == 0 {
		return -1
	}
	dist := make([]float64, len(grid))
	for i, g := range grid {
		dist[i] = math.Abs(g - v)
	}
	return floats.MinIdx(dist)
}

// Bounds returns the smallest and largest of candidates, or (0, 0) when
// there are none.
func Bounds(candidates []int) (lo, hi int) {
	if len(candidates) == 0 {
		return 0, 0
	}
	lo, hi = candidates[0], candidates[0]
	for _, n := range candidates[1:] {
		lo, hi = min(lo, n), max(hi, n)
	}
	return lo, hi
}
