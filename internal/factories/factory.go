package factories

import (
	"math/rand"
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
)

// pickWeighted samples one value from a weighted categorical distribution,
// re-normalising so the enumerated weights need not sum to 1.
func pickWeighted(rng *rand.Rand, choices []models.Weighted) string {
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

// randomDateBetween returns a timestamp on a uniformly chosen day in
// [start, end], at a uniformly chosen second of that day.
func randomDateBetween(rng *rand.Rand, start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	day := start.AddDate(0, 0, rng.Intn(days+1))
	return day.Add(time.Duration(rng.Intn(86400)) * time.Second)
}

func randomZone(rng *rand.Rand, city string) string {
	zones := models.CityZones[city]
	return zones[rng.Intn(len(zones))]
}
