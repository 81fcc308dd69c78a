package cleaner

import (
	"log"

	"github.com/bitesuae/bitesdata/internal/models"
)

// Assessment summarises the defects visible in a raw dataset before any
// repair runs. It exists for audit output; cleaning does not depend on it.
type Assessment struct {
	DuplicateCustomers   int
	DuplicateRestaurants int
	DuplicateRiders      int
	DuplicateOrders      int
	DuplicateItems       int
	DuplicateEvents      int

	MissingDiscounts    int
	MissingDelayReasons int
	MissingZones        int

	GrossOutliers    int
	DurationOutliers int
	PrepOutliers     int

	NegativeDurations    int
	ExcessiveDiscounts   int
	ImpossibleTimestamps int
}

// Assess scans the raw tables and counts duplicates, missing cells, outliers
// and impossible values without modifying anything.
func Assess(ds *models.Dataset) *Assessment {
	a := &Assessment{}

	a.DuplicateCustomers = countDuplicates(len(ds.Customers), func(i int) string { return ds.Customers[i].CustomerID })
	a.DuplicateRestaurants = countDuplicates(len(ds.Restaurants), func(i int) string { return ds.Restaurants[i].RestaurantID })
	a.DuplicateRiders = countDuplicates(len(ds.Riders), func(i int) string { return ds.Riders[i].RiderID })
	a.DuplicateOrders = countDuplicates(len(ds.Orders), func(i int) string { return ds.Orders[i].OrderID })
	a.DuplicateItems = countDuplicates(len(ds.OrderItems), func(i int) string { return ds.OrderItems[i].ItemID })
	a.DuplicateEvents = countDuplicates(len(ds.DeliveryEvents), func(i int) string { return ds.DeliveryEvents[i].EventID })

	for _, o := range ds.Orders {
		if o.DiscountAmount == nil {
			a.MissingDiscounts++
		} else if *o.DiscountAmount > o.GrossAmount {
			a.ExcessiveDiscounts++
		}
		if o.GrossAmount > grossCeiling {
			a.GrossOutliers++
		}
	}

	for _, r := range ds.Riders {
		if r.Zone == nil {
			a.MissingZones++
		}
	}

	for _, r := range ds.Restaurants {
		if r.AvgPrepTimeMins > prepCeiling {
			a.PrepOutliers++
		}
	}

	for _, e := range ds.DeliveryEvents {
		if e.ActualDeliveryTimeMins != nil {
			if *e.ActualDeliveryTimeMins < 0 {
				a.NegativeDurations++
			} else if *e.ActualDeliveryTimeMins > durationCeiling {
				a.DurationOutliers++
			}
		}
		if e.DeliveredTime != nil {
			if e.DeliveredTime.Before(e.OrderPlacedTime) {
				a.ImpossibleTimestamps++
			}
			if e.DeliveredTime.After(e.EstimatedDeliveryTime) && e.DelayReason == nil {
				a.MissingDelayReasons++
			}
		}
	}

	return a
}

func countDuplicates(n int, key func(int) string) int {
	seen := make(map[string]bool, n)
	dups := 0
	for i := 0; i < n; i++ {
		k := key(i)
		if seen[k] {
			dups++
		}
		seen[k] = true
	}
	return dups
}

func (a *Assessment) Log() {
	log.Printf("raw data quality: %d duplicate rows, %d missing cells, %d outliers, %d impossible values",
		a.DuplicateCustomers+a.DuplicateRestaurants+a.DuplicateRiders+a.DuplicateOrders+a.DuplicateItems+a.DuplicateEvents,
		a.MissingDiscounts+a.MissingDelayReasons+a.MissingZones,
		a.GrossOutliers+a.DurationOutliers+a.PrepOutliers,
		a.NegativeDurations+a.ExcessiveDiscounts+a.ImpossibleTimestamps)
}
