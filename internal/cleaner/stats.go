package cleaner

import (
	"math"
	"sort"
)

// percentile computes the q-th percentile (0..1) with linear interpolation
// between closest ranks, matching the convention analytics tooling expects.
// Returns ok=false for an empty input; callers fall back to best effort.
func percentile(values []float64, q float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], true
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
