// Package injector corrupts a generated dataset with five quantified defect
// classes: missing values, duplicate rows, inconsistent categorical labels,
// numeric outliers and logically impossible values. Defect quantities are a
// fixed contract (clamped to table size); row selection is random but
// reproducible under a fixed seed.
package injector

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
)

// Report counts every defect actually applied, for auditability.
type Report struct {
	MissingDiscounts    int
	MissingDelayReasons int
	MissingZones        int

	DuplicateOrders    int
	DuplicateEvents    int
	DuplicateCustomers int

	CityVariants    int
	CuisineVariants int
	StatusVariants  int

	GrossOutliers    int
	DurationOutliers int
	PrepOutliers     int

	ImpossibleTimestamps int
	NegativeDurations    int
	ExcessiveDiscounts   int
}

// Inject applies all five defect classes to the dataset in place, then
// shuffles every table so row order carries no meaning downstream. Samples
// for different defect classes are drawn independently; overlap is allowed
// since each class targets different columns.
func Inject(ds *models.Dataset, defects models.DefectConfig, rng *rand.Rand) *Report {
	rep := &Report{}

	injectMissingValues(ds, defects, rng, rep)
	injectDuplicates(ds, defects, rng, rep)
	injectLabelVariants(ds, defects, rng, rep)
	injectOutliers(ds, defects, rng, rep)
	injectImpossibleValues(ds, defects, rng, rep)
	shuffleTables(ds, rng)

	log.Printf("injected defects: %d missing cells, %d duplicate rows, %d label variants, %d outliers, %d impossible values",
		rep.MissingDiscounts+rep.MissingDelayReasons+rep.MissingZones,
		rep.DuplicateOrders+rep.DuplicateEvents+rep.DuplicateCustomers,
		rep.CityVariants+rep.CuisineVariants+rep.StatusVariants,
		rep.GrossOutliers+rep.DurationOutliers+rep.PrepOutliers,
		rep.ImpossibleTimestamps+rep.NegativeDurations+rep.ExcessiveDiscounts)

	return rep
}

// sampleIndices draws k distinct indices from [0, n) without replacement,
// clamping k to n.
func sampleIndices(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	return rng.Perm(n)[:k]
}

func injectMissingValues(ds *models.Dataset, defects models.DefectConfig, rng *rand.Rand, rep *Report) {
	for _, i := range sampleIndices(rng, len(ds.Orders), defects.MissingOrderDiscounts) {
		ds.Orders[i].DiscountAmount = nil
		rep.MissingDiscounts++
	}

	// Delay reasons can only go missing where one exists.
	var withReason []int
	for i, e := range ds.DeliveryEvents {
		if e.DelayReason != nil {
			withReason = append(withReason, i)
		}
	}
	for _, j := range sampleIndices(rng, len(withReason), defects.MissingDelayReasons) {
		ds.DeliveryEvents[withReason[j]].DelayReason = nil
		rep.MissingDelayReasons++
	}

	for _, i := range sampleIndices(rng, len(ds.Riders), defects.MissingRiderZones) {
		ds.Riders[i].Zone = nil
		rep.MissingZones++
	}
}

func injectDuplicates(ds *models.Dataset, defects models.DefectConfig, rng *rand.Rand, rep *Report) {
	for _, i := range sampleIndices(rng, len(ds.Orders), defects.DuplicateOrders) {
		ds.Orders = append(ds.Orders, ds.Orders[i])
		rep.DuplicateOrders++
	}
	for _, i := range sampleIndices(rng, len(ds.DeliveryEvents), defects.DuplicateEvents) {
		ds.DeliveryEvents = append(ds.DeliveryEvents, ds.DeliveryEvents[i])
		rep.DuplicateEvents++
	}
	for _, i := range sampleIndices(rng, len(ds.Customers), defects.DuplicateCustomers) {
		ds.Customers = append(ds.Customers, ds.Customers[i])
		rep.DuplicateCustomers++
	}
}

func pickVariant(rng *rand.Rand, variants map[string][]string, canonical string) (string, bool) {
	forms, ok := variants[canonical]
	if !ok {
		return "", false
	}
	return forms[rng.Intn(len(forms))], true
}

func injectLabelVariants(ds *models.Dataset, defects models.DefectConfig, rng *rand.Rand, rep *Report) {
	for _, i := range sampleIndices(rng, len(ds.Customers), int(float64(len(ds.Customers))*defects.CityVariantRate)) {
		if v, ok := pickVariant(rng, models.CityVariants, ds.Customers[i].City); ok {
			ds.Customers[i].City = v
			rep.CityVariants++
		}
	}
	for _, i := range sampleIndices(rng, len(ds.Restaurants), int(float64(len(ds.Restaurants))*defects.CityVariantRate)) {
		if v, ok := pickVariant(rng, models.CityVariants, ds.Restaurants[i].City); ok {
			ds.Restaurants[i].City = v
			rep.CityVariants++
		}
	}
	for _, i := range sampleIndices(rng, len(ds.Riders), int(float64(len(ds.Riders))*defects.CityVariantRate)) {
		if v, ok := pickVariant(rng, models.CityVariants, ds.Riders[i].City); ok {
			ds.Riders[i].City = v
			rep.CityVariants++
		}
	}

	for _, i := range sampleIndices(rng, len(ds.Restaurants), int(float64(len(ds.Restaurants))*defects.CuisineVariantRate)) {
		if v, ok := pickVariant(rng, models.CuisineVariants, ds.Restaurants[i].CuisineType); ok {
			ds.Restaurants[i].CuisineType = v
			rep.CuisineVariants++
		}
	}

	for _, i := range sampleIndices(rng, len(ds.Orders), int(float64(len(ds.Orders))*defects.StatusVariantRate)) {
		if v, ok := pickVariant(rng, models.StatusVariants, ds.Orders[i].OrderStatus); ok {
			ds.Orders[i].OrderStatus = v
			rep.StatusVariants++
		}
	}
}

func injectOutliers(ds *models.Dataset, defects models.DefectConfig, rng *rand.Rand, rep *Report) {
	for _, i := range sampleIndices(rng, len(ds.Orders), defects.GrossOutliers) {
		ds.Orders[i].GrossAmount = round2(uniform(rng, 1500, 3000))
		rep.GrossOutliers++
	}

	var withDuration []int
	for i, e := range ds.DeliveryEvents {
		if e.ActualDeliveryTimeMins != nil {
			withDuration = append(withDuration, i)
		}
	}
	for _, j := range sampleIndices(rng, len(withDuration), defects.DurationOutliers) {
		ds.DeliveryEvents[withDuration[j]].ActualDeliveryTimeMins = models.Float64Ptr(round2(uniform(rng, 121, 180)))
		rep.DurationOutliers++
	}

	for _, i := range sampleIndices(rng, len(ds.Restaurants), defects.PrepOutliers) {
		ds.Restaurants[i].AvgPrepTimeMins = 61 + rng.Intn(30)
		rep.PrepOutliers++
	}
}

func injectImpossibleValues(ds *models.Dataset, defects models.DefectConfig, rng *rand.Rand, rep *Report) {
	var delivered []int
	for i, e := range ds.DeliveryEvents {
		if e.DeliveredTime != nil {
			delivered = append(delivered, i)
		}
	}

	// Delivered 30-60 minutes before the order was even placed.
	for _, j := range sampleIndices(rng, len(delivered), defects.ImpossibleTimestamps) {
		e := &ds.DeliveryEvents[delivered[j]]
		back := time.Duration(30+rng.Intn(31)) * time.Minute
		e.DeliveredTime = models.TimePtr(e.OrderPlacedTime.Add(-back))
		rep.ImpossibleTimestamps++
	}

	var withDuration []int
	for i, e := range ds.DeliveryEvents {
		if e.ActualDeliveryTimeMins != nil {
			withDuration = append(withDuration, i)
		}
	}
	for _, j := range sampleIndices(rng, len(withDuration), defects.NegativeDurations) {
		ds.DeliveryEvents[withDuration[j]].ActualDeliveryTimeMins = models.Float64Ptr(float64(-60 + rng.Intn(60)))
		rep.NegativeDurations++
	}

	var withDiscount []int
	for i, o := range ds.Orders {
		if o.DiscountAmount != nil {
			withDiscount = append(withDiscount, i)
		}
	}
	for _, j := range sampleIndices(rng, len(withDiscount), defects.ExcessiveDiscounts) {
		o := &ds.Orders[withDiscount[j]]
		o.DiscountAmount = models.Float64Ptr(round2(o.GrossAmount * uniform(rng, 1.1, 1.5)))
		rep.ExcessiveDiscounts++
	}
}

// shuffleTables randomises row order in every table; downstream code must
// not rely on ordering.
func shuffleTables(ds *models.Dataset, rng *rand.Rand) {
	rng.Shuffle(len(ds.Customers), func(i, j int) { ds.Customers[i], ds.Customers[j] = ds.Customers[j], ds.Customers[i] })
	rng.Shuffle(len(ds.Restaurants), func(i, j int) { ds.Restaurants[i], ds.Restaurants[j] = ds.Restaurants[j], ds.Restaurants[i] })
	rng.Shuffle(len(ds.Riders), func(i, j int) { ds.Riders[i], ds.Riders[j] = ds.Riders[j], ds.Riders[i] })
	rng.Shuffle(len(ds.Orders), func(i, j int) { ds.Orders[i], ds.Orders[j] = ds.Orders[j], ds.Orders[i] })
	rng.Shuffle(len(ds.OrderItems), func(i, j int) { ds.OrderItems[i], ds.OrderItems[j] = ds.OrderItems[j], ds.OrderItems[i] })
	rng.Shuffle(len(ds.DeliveryEvents), func(i, j int) { ds.DeliveryEvents[i], ds.DeliveryEvents[j] = ds.DeliveryEvents[j], ds.DeliveryEvents[i] })
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
