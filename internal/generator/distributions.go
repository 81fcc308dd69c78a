package generator

import (
	"math"
	"math/rand"

	"github.com/bitesuae/bitesdata/internal/models"
)

// randint returns a uniform integer in [min, max], both ends inclusive.
func randint(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// weightedValue samples from a weighted categorical distribution. Weights are
// re-normalised, so enumerations that do not sum to exactly 1 are fine.
func weightedValue(rng *rand.Rand, choices []models.Weighted) string {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for _, c := range choices {
		cumulative += c.Weight
		if r <= cumulative {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// sampleOrderHour draws an hour of day from the order histogram, which has
// lunch and dinner peaks. The histogram is re-normalised before sampling.
func sampleOrderHour(rng *rand.Rand) int {
	total := 0.0
	for _, w := range models.OrderHourWeights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for hour, w := range models.OrderHourWeights {
		cumulative += w
		if r <= cumulative {
			return hour
		}
	}
	return 23
}

// sampleItemCount draws the number of line items for one order.
func sampleItemCount(rng *rand.Rand) int {
	total := 0.0
	for _, c := range models.ItemCounts {
		total += c.Weight
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for _, c := range models.ItemCounts {
		cumulative += c.Weight
		if r <= cumulative {
			return c.Count
		}
	}
	return models.ItemCounts[len(models.ItemCounts)-1].Count
}

// dirichletShares returns n shares summing to 1, drawn from a symmetric
// Dirichlet(1,...,1). With unit concentration this is just normalised
// unit-rate exponentials.
func dirichletShares(rng *rand.Rand, n int) []float64 {
	shares := make([]float64, n)
	total := 0.0
	for i := range shares {
		shares[i] = -math.Log(1 - rng.Float64())
		total += shares[i]
	}
	for i := range shares {
		shares[i] /= total
	}
	return shares
}
