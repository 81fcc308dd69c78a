package factories

import (
	"fmt"
	"math/rand"

	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/jaswdr/faker"
)

type RiderFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewRiderFactory(rng *rand.Rand) *RiderFactory {
	return &RiderFactory{fake: faker.NewWithSeed(rng), rng: rng}
}

// CreateRider builds rider row n (1-based).
func (rf *RiderFactory) CreateRider(n int, config *models.Config) models.Rider {
	today := config.Today()
	joinStart := today.AddDate(0, 0, -config.RiderJoinWindowDays)
	city := pickWeighted(rf.rng, models.Cities)
	zone := randomZone(rf.rng, city)

	return models.Rider{
		RiderID:     fmt.Sprintf("RDR_%03d", n),
		RiderName:   rf.fake.Person().Name(),
		City:        city,
		Zone:        &zone,
		VehicleType: pickWeighted(rf.rng, models.VehicleTypes),
		RiderStatus: pickWeighted(rf.rng, models.RiderStatuses),
		JoinDate:    randomDateBetween(rf.rng, joinStart, today),
	}
}
