package injector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitesuae/bitesdata/internal/generator"
	"github.com/bitesuae/bitesdata/internal/models"
)

func generateTestDataset(t *testing.T, seed int64) *models.Dataset {
	t.Helper()
	cfg := &models.Config{
		Seed:                int(seed),
		NumCustomers:        100,
		NumRestaurants:      30,
		NumRiders:           15,
		NumOrders:           400,
		ReferenceDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		OrderWindowDays:     90,
		SignupWindowDays:    540,
		RiderJoinWindowDays: 730,
	}
	rng := rand.New(rand.NewSource(seed))
	return generator.New(cfg, rng).Generate()
}

func testDefects() models.DefectConfig {
	return models.DefectConfig{
		MissingOrderDiscounts: 20,
		MissingDelayReasons:   5,
		MissingRiderZones:     4,
		DuplicateOrders:       10,
		DuplicateEvents:       8,
		DuplicateCustomers:    6,
		CityVariantRate:       0.10,
		CuisineVariantRate:    0.12,
		StatusVariantRate:     0.08,
		GrossOutliers:         12,
		DurationOutliers:      10,
		PrepOutliers:          5,
		ImpossibleTimestamps:  6,
		NegativeDurations:     4,
		ExcessiveDiscounts:    3,
	}
}

func TestInjectIsDeterministic(t *testing.T) {
	first := generateTestDataset(t, 42)
	second := generateTestDataset(t, 42)

	repA := Inject(first, testDefects(), rand.New(rand.NewSource(99)))
	repB := Inject(second, testDefects(), rand.New(rand.NewSource(99)))

	require.Equal(t, repA, repB)
	require.Equal(t, first, second)
}

func TestInjectAppliesConfiguredQuantities(t *testing.T) {
	ds := generateTestDataset(t, 42)
	defects := testDefects()

	delayReasonsAvailable := 0
	for _, e := range ds.DeliveryEvents {
		if e.DelayReason != nil {
			delayReasonsAvailable++
		}
	}
	require.GreaterOrEqual(t, delayReasonsAvailable, defects.MissingDelayReasons,
		"test dataset too small for the requested delay-reason defects")

	rep := Inject(ds, defects, rand.New(rand.NewSource(99)))

	assert.Equal(t, defects.MissingOrderDiscounts, rep.MissingDiscounts)
	assert.Equal(t, defects.MissingDelayReasons, rep.MissingDelayReasons)
	assert.Equal(t, defects.MissingRiderZones, rep.MissingZones)
	assert.Equal(t, defects.DuplicateOrders, rep.DuplicateOrders)
	assert.Equal(t, defects.DuplicateEvents, rep.DuplicateEvents)
	assert.Equal(t, defects.DuplicateCustomers, rep.DuplicateCustomers)
	assert.Equal(t, defects.GrossOutliers, rep.GrossOutliers)
	assert.Equal(t, defects.DurationOutliers, rep.DurationOutliers)
	assert.Equal(t, defects.PrepOutliers, rep.PrepOutliers)
	assert.Equal(t, defects.ImpossibleTimestamps, rep.ImpossibleTimestamps)
	assert.Equal(t, defects.NegativeDurations, rep.NegativeDurations)
	assert.Equal(t, defects.ExcessiveDiscounts, rep.ExcessiveDiscounts)

	// Every canonical label has variants, so rate-based counts are exact.
	assert.Equal(t, 10+3+1, rep.CityVariants)
	assert.Equal(t, 3, rep.CuisineVariants)
	assert.Equal(t, 32, rep.StatusVariants)
}

func TestInjectGrowsTablesByDuplicateCount(t *testing.T) {
	ds := generateTestDataset(t, 42)
	defects := testDefects()

	ordersBefore := len(ds.Orders)
	eventsBefore := len(ds.DeliveryEvents)
	customersBefore := len(ds.Customers)

	Inject(ds, defects, rand.New(rand.NewSource(99)))

	assert.Len(t, ds.Orders, ordersBefore+defects.DuplicateOrders)
	assert.Len(t, ds.DeliveryEvents, eventsBefore+defects.DuplicateEvents)
	assert.Len(t, ds.Customers, customersBefore+defects.DuplicateCustomers)
}

func TestInjectProducesObservableDefects(t *testing.T) {
	ds := generateTestDataset(t, 42)
	Inject(ds, testDefects(), rand.New(rand.NewSource(99)))

	missingDiscounts := 0
	excessiveDiscounts := 0
	grossOutliers := 0
	for _, o := range ds.Orders {
		if o.DiscountAmount == nil {
			missingDiscounts++
		} else if *o.DiscountAmount > o.GrossAmount {
			excessiveDiscounts++
		}
		if o.GrossAmount > 1500 {
			grossOutliers++
		}
	}
	assert.GreaterOrEqual(t, missingDiscounts, 20)
	assert.GreaterOrEqual(t, excessiveDiscounts, 3)
	assert.GreaterOrEqual(t, grossOutliers, 12)

	negativeDurations := 0
	impossible := 0
	for _, e := range ds.DeliveryEvents {
		if e.ActualDeliveryTimeMins != nil && *e.ActualDeliveryTimeMins < 0 {
			negativeDurations++
		}
		if e.DeliveredTime != nil && e.DeliveredTime.Before(e.OrderPlacedTime) {
			impossible++
		}
	}
	assert.GreaterOrEqual(t, negativeDurations, 4)
	assert.GreaterOrEqual(t, impossible, 6)

	missingZones := 0
	for _, r := range ds.Riders {
		if r.Zone == nil {
			missingZones++
		}
	}
	assert.Equal(t, 4, missingZones)
}

func TestInjectClampsCountsToTableSize(t *testing.T) {
	ds := &models.Dataset{
		Customers: []models.Customer{
			{CustomerID: "CUST_00001"},
			{CustomerID: "CUST_00002"},
			{CustomerID: "CUST_00003"},
		},
	}
	defects := models.DefectConfig{DuplicateCustomers: 50}

	rep := Inject(ds, defects, rand.New(rand.NewSource(1)))

	assert.Equal(t, 3, rep.DuplicateCustomers)
	assert.Len(t, ds.Customers, 6)
}

func TestSampleIndicesDrawsWithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	idx := sampleIndices(rng, 10, 7)

	require.Len(t, idx, 7)
	seen := make(map[int]bool)
	for _, i := range idx {
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 10)
		assert.False(t, seen[i], "index %d drawn twice", i)
		seen[i] = true
	}
}
