package factories

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitesuae/bitesdata/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		ReferenceDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SignupWindowDays:    540,
		RiderJoinWindowDays: 730,
	}
}

func canonicalCities() map[string]bool {
	cities := make(map[string]bool)
	for _, c := range models.Cities {
		cities[c.Value] = true
	}
	return cities
}

func zoneOf(city, zone string) bool {
	for _, z := range models.CityZones[city] {
		if z == zone {
			return true
		}
	}
	return false
}

func TestCreateCustomer(t *testing.T) {
	cfg := testConfig()
	f := NewCustomerFactory(rand.New(rand.NewSource(7)))
	cities := canonicalCities()

	for i := 1; i <= 200; i++ {
		c := f.CreateCustomer(i, cfg)

		assert.Regexp(t, `^CUST_\d{5}$`, c.CustomerID)
		assert.NotEmpty(t, c.CustomerName)
		require.True(t, cities[c.City], "unknown city %q", c.City)
		assert.True(t, zoneOf(c.City, c.Area), "area %q not in %s", c.Area, c.City)
		assert.False(t, c.SignupDate.After(cfg.Today().Add(24*time.Hour)))
		assert.False(t, c.SignupDate.Before(cfg.Today().AddDate(0, 0, -cfg.SignupWindowDays)))
	}
}

func TestCreateRestaurant(t *testing.T) {
	f := NewRestaurantFactory(rand.New(rand.NewSource(7)))
	cities := canonicalCities()

	for i := 1; i <= 200; i++ {
		r := f.CreateRestaurant(i)

		assert.Regexp(t, `^REST_\d{3}$`, r.RestaurantID)
		assert.NotEmpty(t, r.RestaurantName)
		require.True(t, cities[r.City])
		assert.True(t, zoneOf(r.City, r.Zone))

		tier := models.TierProfileByName(r.RestaurantTier)
		require.Equal(t, tier.Name, r.RestaurantTier, "unknown tier %q", r.RestaurantTier)
		assert.GreaterOrEqual(t, r.AvgPrepTimeMins, tier.PrepMin)
		assert.LessOrEqual(t, r.AvgPrepTimeMins, tier.PrepMax)

		assert.GreaterOrEqual(t, r.Rating, 3.0)
		assert.LessOrEqual(t, r.Rating, 5.0)
		// One decimal place.
		assert.InDelta(t, r.Rating*10, math.Round(r.Rating*10), 1e-9)
	}
}

func TestCreateRider(t *testing.T) {
	cfg := testConfig()
	f := NewRiderFactory(rand.New(rand.NewSource(7)))
	cities := canonicalCities()

	for i := 1; i <= 100; i++ {
		r := f.CreateRider(i, cfg)

		assert.Regexp(t, `^RDR_\d{3}$`, r.RiderID)
		require.True(t, cities[r.City])
		require.NotNil(t, r.Zone)
		assert.True(t, zoneOf(r.City, *r.Zone))
		assert.False(t, r.JoinDate.After(cfg.Today().Add(24*time.Hour)))
		assert.False(t, r.JoinDate.Before(cfg.Today().AddDate(0, 0, -cfg.RiderJoinWindowDays)))
	}
}

func TestPickWeightedRenormalises(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	// Weights sum to 4, not 1.
	choices := []models.Weighted{
		{Value: "a", Weight: 3},
		{Value: "b", Weight: 1},
	}
	counts := make(map[string]int)
	for i := 0; i < 8000; i++ {
		counts[pickWeighted(rng, choices)]++
	}
	assert.InDelta(t, 6000, counts["a"], 300)
	assert.InDelta(t, 2000, counts["b"], 300)
}

func TestRandomDateBetweenStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		d := randomDateBetween(rng, start, end)
		assert.False(t, d.Before(start))
		assert.True(t, d.Before(end.Add(24*time.Hour)))
	}
}
