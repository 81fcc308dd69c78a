package generator

import (
	"fmt"
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
)

// Delivery outcome classes. Class probabilities depend on whether the order
// was placed during a peak hour.
const (
	outcomeOnTime    = "on_time"
	outcomeLateMinor = "late_minor"
	outcomeLateMajor = "late_major"
)

var (
	peakOutcomes = []models.Weighted{
		{Value: outcomeOnTime, Weight: 0.58},
		{Value: outcomeLateMinor, Weight: 0.25},
		{Value: outcomeLateMajor, Weight: 0.17},
	}
	offPeakOutcomes = []models.Weighted{
		{Value: outcomeOnTime, Weight: 0.78},
		{Value: outcomeLateMinor, Weight: 0.15},
		{Value: outcomeLateMajor, Weight: 0.07},
	}
)

// deriveDeliveryEvent produces the lifecycle timestamp chain for one order:
// placed -> confirmed -> food ready -> picked up -> delivered. Cancelled and
// in-progress orders keep delivered time, duration and delay reason unset.
// When the delivered time is set it is always at or after the placed time.
func (g *Generator) deriveDeliveryEvent(n int, order models.Order, avgPrepMins int, riderID string) models.DeliveryEvent {
	placed := order.OrderDatetime
	confirmed := placed.Add(time.Duration(randint(g.rng, 1, 3)) * time.Minute)

	actualPrepMins := avgPrepMins + randint(g.rng, -5, 10)
	if actualPrepMins < 5 {
		actualPrepMins = 5
	}
	foodReady := confirmed.Add(time.Duration(actualPrepMins) * time.Minute)
	pickedUp := foodReady.Add(time.Duration(randint(g.rng, 2, 8)) * time.Minute)
	estimated := placed.Add(time.Duration(randint(g.rng, 30, 45)) * time.Minute)

	event := models.DeliveryEvent{
		EventID:                 fmt.Sprintf("EVT_%05d", n),
		OrderID:                 order.OrderID,
		RiderID:                 riderID,
		OrderPlacedTime:         placed,
		RestaurantConfirmedTime: confirmed,
		FoodReadyTime:           foodReady,
		RiderPickedUpTime:       pickedUp,
		EstimatedDeliveryTime:   estimated,
	}

	if order.OrderStatus != models.OrderStatusDelivered {
		return event
	}

	outcomes := offPeakOutcomes
	if models.IsPeakHour(placed.Hour()) {
		outcomes = peakOutcomes
	}

	var delivered time.Time
	switch weightedValue(g.rng, outcomes) {
	case outcomeOnTime:
		delivered = pickedUp.Add(time.Duration(randint(g.rng, 10, 25)) * time.Minute)
		if delivered.After(estimated) {
			delivered = estimated.Add(-time.Duration(randint(g.rng, 1, 5)) * time.Minute)
		}
	case outcomeLateMinor:
		delivered = estimated.Add(time.Duration(randint(g.rng, 1, 14)) * time.Minute)
		event.DelayReason = models.StringPtr(weightedValue(g.rng, models.DelayReasons))
	default: // late_major
		delivered = estimated.Add(time.Duration(randint(g.rng, 15, 45)) * time.Minute)
		event.DelayReason = models.StringPtr(weightedValue(g.rng, models.DelayReasons))
	}

	event.DeliveredTime = models.TimePtr(delivered)
	event.ActualDeliveryTimeMins = models.Float64Ptr(round2(delivered.Sub(placed).Minutes()))
	return event
}
