// Package cleaner detects and repairs the defect classes the raw dataset
// carries: duplicate rows, variant labels, orphan child rows, out-of-policy
// numerics and contradictory timestamps. Every repair is a deterministic
// rule; the only randomised step is back-filling missing delay reasons,
// which never re-triggers once a reason is present, so the pipeline is
// idempotent on its own output.
package cleaner

import (
	"math/rand"
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/lucsky/cuid"
)

const (
	grossCeiling    = 1500.0
	durationCeiling = 120.0
	prepCeiling     = 60
)

type Cleaner struct {
	rng    *rand.Rand
	today  time.Time
	report *Report
}

// New builds a cleaner. The rng only feeds the delay-reason back-fill and
// the impossible-timestamp replacement window; everything else is rule-based.
func New(rng *rand.Rand, today time.Time) *Cleaner {
	return &Cleaner{
		rng:    rng,
		today:  today,
		report: &Report{RunID: cuid.New()},
	}
}

// Clean produces a repaired copy of the dataset and the audit report. It
// never fails on malformed rows; anything outside repair policy is left as
// the best-effort value and surfaced only as a count.
func (c *Cleaner) Clean(ds *models.Dataset) (*models.Dataset, *Report) {
	out := &models.Dataset{}

	out.Customers = c.cleanCustomers(ds.Customers)
	out.Restaurants = c.cleanRestaurants(ds.Restaurants)
	out.Riders = c.cleanRiders(ds.Riders)
	out.Orders = c.cleanOrders(ds.Orders)

	// Orphan checks run against the de-duplicated orders table.
	validOrders := out.OrderIDSet()
	out.OrderItems = c.cleanOrderItems(ds.OrderItems, validOrders)
	out.DeliveryEvents = c.cleanDeliveryEvents(ds.DeliveryEvents, validOrders)

	c.deriveColumns(out)
	return out, c.report
}

func (c *Cleaner) cleanCustomers(in []models.Customer) []models.Customer {
	out := make([]models.Customer, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, cust := range in {
		if seen[cust.CustomerID] {
			c.report.DuplicateCustomers++
			continue
		}
		seen[cust.CustomerID] = true

		cust.City = c.standardize(cust.City, cityMapping)
		cust.CustomerTier = c.standardize(cust.CustomerTier, tierMapping)
		if cust.SignupDate.After(c.today) {
			cust.SignupDate = c.today
			c.report.FutureSignupDates++
		}
		out = append(out, cust)
	}
	return out
}

func (c *Cleaner) cleanRestaurants(in []models.Restaurant) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, r := range in {
		if seen[r.RestaurantID] {
			c.report.DuplicateRestaurants++
			continue
		}
		seen[r.RestaurantID] = true

		r.City = c.standardize(r.City, cityMapping)
		r.CuisineType = c.standardize(r.CuisineType, cuisineMapping)
		if r.AvgPrepTimeMins > prepCeiling {
			r.AvgPrepTimeMins = prepCeiling
			c.report.PrepTimesCapped++
		}
		if clipped := clampFloat(r.Rating, 1.0, 5.0); clipped != r.Rating {
			r.Rating = clipped
			c.report.RatingsClipped++
		}
		out = append(out, r)
	}
	return out
}

func (c *Cleaner) cleanRiders(in []models.Rider) []models.Rider {
	out := make([]models.Rider, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, r := range in {
		if seen[r.RiderID] {
			c.report.DuplicateRiders++
			continue
		}
		seen[r.RiderID] = true

		r.City = c.standardize(r.City, cityMapping)
		if r.Zone == nil {
			r.Zone = models.StringPtr(models.UnknownZone)
			c.report.ZonesFilled++
		}
		out = append(out, r)
	}
	return out
}

func (c *Cleaner) cleanOrders(in []models.Order) []models.Order {
	out := make([]models.Order, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, o := range in {
		if seen[o.OrderID] {
			c.report.DuplicateOrders++
			continue
		}
		seen[o.OrderID] = true

		o.OrderStatus = c.standardize(o.OrderStatus, statusMapping)

		if o.DiscountAmount != nil && *o.DiscountAmount > o.GrossAmount {
			o.DiscountAmount = models.Float64Ptr(round2(o.GrossAmount * 0.20))
			c.report.InvalidDiscounts++
		}
		if o.DiscountAmount == nil {
			o.DiscountAmount = models.Float64Ptr(0)
			c.report.MissingDiscountsFilled++
		}
		// Recomputed for every row, not only the repaired ones.
		o.NetAmount = round2(o.GrossAmount - *o.DiscountAmount)

		if o.OrderStatus != models.OrderStatusCancelled && o.CancellationReason != nil {
			o.CancellationReason = nil
			c.report.CancellationReasonsCleared++
		}
		if o.DeliveryFee < 0 {
			o.DeliveryFee = 0
			c.report.DeliveryFeesClipped++
		}
		out = append(out, o)
	}

	c.capGrossOutliers(out)
	return out
}

// capGrossOutliers replaces out-of-range gross amounts with the 99th
// percentile of the in-range distribution. With no in-range reference the
// rows are left at their best-effort values; the count still reports them.
func (c *Cleaner) capGrossOutliers(orders []models.Order) {
	var inRange []float64
	for _, o := range orders {
		if o.GrossAmount <= grossCeiling {
			inRange = append(inRange, o.GrossAmount)
		}
	}
	p99, ok := percentile(inRange, 0.99)

	for i := range orders {
		if orders[i].GrossAmount <= grossCeiling {
			continue
		}
		c.report.GrossOutliersCapped++
		if !ok {
			continue
		}
		orders[i].GrossAmount = round2(p99)
		// The discount rule has to hold against the capped amount too.
		if *orders[i].DiscountAmount > orders[i].GrossAmount {
			orders[i].DiscountAmount = models.Float64Ptr(round2(orders[i].GrossAmount * 0.20))
			c.report.InvalidDiscounts++
		}
		orders[i].NetAmount = round2(orders[i].GrossAmount - *orders[i].DiscountAmount)
	}
}

func (c *Cleaner) cleanOrderItems(in []models.OrderItem, validOrders map[string]bool) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, item := range in {
		if seen[item.ItemID] {
			c.report.DuplicateItems++
			continue
		}
		seen[item.ItemID] = true

		if !validOrders[item.OrderID] {
			c.report.OrphanItems++
			continue
		}

		if item.Quantity < 1 {
			item.Quantity = 1
			c.report.QuantitiesClipped++
		}
		if item.UnitPrice < 0.01 {
			item.UnitPrice = 0.01
			c.report.UnitPricesClipped++
		}
		item.ItemTotal = round2(item.UnitPrice * float64(item.Quantity))
		out = append(out, item)
	}
	return out
}

func (c *Cleaner) cleanDeliveryEvents(in []models.DeliveryEvent, validOrders map[string]bool) []models.DeliveryEvent {
	out := make([]models.DeliveryEvent, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, e := range in {
		if seen[e.EventID] {
			c.report.DuplicateEvents++
			continue
		}
		seen[e.EventID] = true

		if !validOrders[e.OrderID] {
			c.report.OrphanEvents++
			continue
		}

		// Contradictory chain: delivered before placed. Replace with a
		// plausible delivery 35-50 minutes after placement.
		if e.DeliveredTime != nil && e.DeliveredTime.Before(e.OrderPlacedTime) {
			mins := 35 + c.rng.Intn(15)
			e.DeliveredTime = models.TimePtr(e.OrderPlacedTime.Add(time.Duration(mins) * time.Minute))
			c.report.ImpossibleTimestamps++
		}

		if e.ActualDeliveryTimeMins != nil && *e.ActualDeliveryTimeMins < 0 {
			e.ActualDeliveryTimeMins = nil
			c.report.NegativeDurations++
		}

		// Recompute from the endpoints wherever both exist, then cap.
		if e.DeliveredTime != nil {
			mins := round2(e.DeliveredTime.Sub(e.OrderPlacedTime).Minutes())
			if mins > durationCeiling {
				mins = durationCeiling
				c.report.DurationsCapped++
			}
			e.ActualDeliveryTimeMins = models.Float64Ptr(mins)
		}

		if e.DeliveredTime != nil {
			late := e.DeliveredTime.After(e.EstimatedDeliveryTime)
			if late && e.DelayReason == nil {
				e.DelayReason = models.StringPtr(c.weightedDelayReason())
				c.report.DelayReasonsFilled++
			}
			if !late && e.DelayReason != nil {
				e.DelayReason = nil
				c.report.DelayReasonsCleared++
			}
		}
		out = append(out, e)
	}
	return out
}

func (c *Cleaner) weightedDelayReason() string {
	total := 0.0
	for _, r := range models.DelayReasons {
		total += r.Weight
	}
	v := c.rng.Float64() * total
	cumulative := 0.0
	for _, r := range models.DelayReasons {
		cumulative += r.Weight
		if v <= cumulative {
			return r.Value
		}
	}
	return models.DelayReasons[len(models.DelayReasons)-1].Value
}
