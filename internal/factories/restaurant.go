package factories

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bitesuae/bitesdata/internal/models"
)

type RestaurantFactory struct {
	rng *rand.Rand
}

func NewRestaurantFactory(rng *rand.Rand) *RestaurantFactory {
	return &RestaurantFactory{rng: rng}
}

// CreateRestaurant builds restaurant row n (1-based). The sampled tier fixes
// the prep-time range here and the AOV range of every order placed against
// this restaurant later.
func (rf *RestaurantFactory) CreateRestaurant(n int) models.Restaurant {
	city := pickWeighted(rf.rng, models.Cities)

	tierWeights := make([]models.Weighted, len(models.RestaurantTiers))
	for i, t := range models.RestaurantTiers {
		tierWeights[i] = models.Weighted{Value: t.Name, Weight: t.Weight}
	}
	tier := models.TierProfileByName(pickWeighted(rf.rng, tierWeights))

	return models.Restaurant{
		RestaurantID:    fmt.Sprintf("REST_%03d", n),
		RestaurantName:  rf.generateName(),
		City:            city,
		Zone:            randomZone(rf.rng, city),
		CuisineType:     pickWeighted(rf.rng, models.Cuisines),
		RestaurantTier:  tier.Name,
		AvgPrepTimeMins: tier.PrepMin + rf.rng.Intn(tier.PrepMax-tier.PrepMin+1),
		Rating:          float64(int((3.0+rf.rng.Float64()*2.0)*10+0.5)) / 10,
	}
}

func (rf *RestaurantFactory) generateName() string {
	prefix := models.RestaurantNamePrefixes[rf.rng.Intn(len(models.RestaurantNamePrefixes))]
	part := models.RestaurantNameParts[rf.rng.Intn(len(models.RestaurantNameParts))]
	suffix := models.RestaurantNameSuffixes[rf.rng.Intn(len(models.RestaurantNameSuffixes))]
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", prefix, part, suffix))
}
