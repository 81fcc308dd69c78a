package factories

import (
	"fmt"
	"math/rand"

	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/jaswdr/faker"
)

type CustomerFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewCustomerFactory(rng *rand.Rand) *CustomerFactory {
	return &CustomerFactory{fake: faker.NewWithSeed(rng), rng: rng}
}

// CreateCustomer builds customer row n (1-based) with a zone consistent with
// its city and a signup date inside the configured window.
func (cf *CustomerFactory) CreateCustomer(n int, config *models.Config) models.Customer {
	today := config.Today()
	signupStart := today.AddDate(0, 0, -config.SignupWindowDays)
	city := pickWeighted(cf.rng, models.Cities)

	return models.Customer{
		CustomerID:   fmt.Sprintf("CUST_%05d", n),
		CustomerName: cf.fake.Person().Name(),
		City:         city,
		Area:         randomZone(cf.rng, city),
		SignupDate:   randomDateBetween(cf.rng, signupStart, today),
		SignupSource: pickWeighted(cf.rng, models.SignupSources),
		CustomerTier: pickWeighted(cf.rng, models.CustomerTiers),
	}
}
