package generator

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitesuae/bitesdata/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		Seed:                42,
		NumCustomers:        60,
		NumRestaurants:      25,
		NumRiders:           12,
		NumOrders:           300,
		ReferenceDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		OrderWindowDays:     90,
		SignupWindowDays:    540,
		RiderJoinWindowDays: 730,
	}
}

func generateTestDataset(t *testing.T, seed int64) *models.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	return New(testConfig(), rng).Generate()
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := generateTestDataset(t, 42)
	second := generateTestDataset(t, 42)
	require.Equal(t, first, second)
}

func TestGenerateTableSizes(t *testing.T) {
	ds := generateTestDataset(t, 42)

	assert.Len(t, ds.Customers, 60)
	assert.Len(t, ds.Restaurants, 25)
	assert.Len(t, ds.Riders, 12)
	assert.Len(t, ds.Orders, 300)
	assert.Len(t, ds.DeliveryEvents, 300)
	assert.GreaterOrEqual(t, len(ds.OrderItems), 300)
}

func TestGenerateIDFormats(t *testing.T) {
	ds := generateTestDataset(t, 42)

	assert.Regexp(t, regexp.MustCompile(`^CUST_\d{5}$`), ds.Customers[0].CustomerID)
	assert.Regexp(t, regexp.MustCompile(`^REST_\d{3}$`), ds.Restaurants[0].RestaurantID)
	assert.Regexp(t, regexp.MustCompile(`^RDR_\d{3}$`), ds.Riders[0].RiderID)
	assert.Regexp(t, regexp.MustCompile(`^ORD_\d{5}$`), ds.Orders[0].OrderID)
	assert.Regexp(t, regexp.MustCompile(`^ITM_\d{5}$`), ds.OrderItems[0].ItemID)
	assert.Regexp(t, regexp.MustCompile(`^EVT_\d{5}$`), ds.DeliveryEvents[0].EventID)
}

func TestOrdersReferenceExistingRows(t *testing.T) {
	ds := generateTestDataset(t, 42)

	customers := make(map[string]bool)
	for _, c := range ds.Customers {
		customers[c.CustomerID] = true
	}
	restaurants := ds.RestaurantByID()

	for _, o := range ds.Orders {
		assert.True(t, customers[o.CustomerID], "order %s references unknown customer", o.OrderID)
		_, ok := restaurants[o.RestaurantID]
		assert.True(t, ok, "order %s references unknown restaurant", o.OrderID)
	}
}

func TestGrossAmountFollowsRestaurantTier(t *testing.T) {
	ds := generateTestDataset(t, 42)
	restaurants := ds.RestaurantByID()

	for _, o := range ds.Orders {
		tier := models.TierProfileByName(restaurants[o.RestaurantID].RestaurantTier)
		assert.GreaterOrEqual(t, o.GrossAmount, tier.AOVMin,
			"order %s below tier %s floor", o.OrderID, tier.Name)
		assert.LessOrEqual(t, o.GrossAmount, tier.AOVMax,
			"order %s above tier %s ceiling", o.OrderID, tier.Name)
	}
}

func TestOrderDatetimeWithinWindow(t *testing.T) {
	cfg := testConfig()
	ds := generateTestDataset(t, 42)

	today := cfg.Today()
	windowStart := today.AddDate(0, 0, -cfg.OrderWindowDays)
	windowEnd := today.Add(24 * time.Hour)

	for _, o := range ds.Orders {
		assert.False(t, o.OrderDatetime.Before(windowStart))
		assert.True(t, o.OrderDatetime.Before(windowEnd))
	}
}

func TestOrderItemsPartitionGrossAmount(t *testing.T) {
	ds := generateTestDataset(t, 42)

	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, item := range ds.OrderItems {
		require.GreaterOrEqual(t, item.Quantity, 1)
		require.LessOrEqual(t, item.Quantity, 3)
		require.InDelta(t, item.UnitPrice*float64(item.Quantity), item.ItemTotal, 0.005)
		totals[item.OrderID] += item.ItemTotal
		counts[item.OrderID]++
	}

	for _, o := range ds.Orders {
		n := counts[o.OrderID]
		require.GreaterOrEqual(t, n, 1, "order %s has no items", o.OrderID)
		require.LessOrEqual(t, n, 4)
		// Per-item cent rounding can drift the reconstructed total slightly.
		assert.InDelta(t, o.GrossAmount, totals[o.OrderID], 0.10,
			"items of %s do not sum to its gross amount", o.OrderID)
	}
}

func TestCancellationReasonOnlyOnCancelledOrders(t *testing.T) {
	ds := generateTestDataset(t, 42)

	for _, o := range ds.Orders {
		if o.OrderStatus == models.OrderStatusCancelled {
			assert.NotNil(t, o.CancellationReason, "cancelled order %s has no reason", o.OrderID)
		} else {
			assert.Nil(t, o.CancellationReason, "order %s (%s) carries a cancellation reason", o.OrderID, o.OrderStatus)
		}
	}
}

func TestPromoDiscountRules(t *testing.T) {
	ds := generateTestDataset(t, 42)

	for _, o := range ds.Orders {
		require.NotNil(t, o.DiscountAmount)
		discount := *o.DiscountAmount

		if o.PromoCode == nil {
			assert.Zero(t, discount, "order %s discounted without a promo", o.OrderID)
			continue
		}
		switch *o.PromoCode {
		case "FREESHIP":
			assert.Zero(t, discount)
			assert.Zero(t, o.DeliveryFee)
		case "VIP25":
			assert.InDelta(t, o.GrossAmount*0.25, discount, 0.005)
		case "WELCOME20":
			assert.InDelta(t, o.GrossAmount*0.20, discount, 0.005)
		case "BITES15":
			assert.InDelta(t, o.GrossAmount*0.15, discount, 0.005)
		case "SAVE10", "WEEKEND10":
			assert.InDelta(t, o.GrossAmount*0.10, discount, 0.005)
		}
		assert.InDelta(t, o.GrossAmount-discount, o.NetAmount, 0.005)
	}
}

func TestDeliveryLifecycleOrdering(t *testing.T) {
	ds := generateTestDataset(t, 42)
	orders := make(map[string]models.Order, len(ds.Orders))
	for _, o := range ds.Orders {
		orders[o.OrderID] = o
	}

	for _, e := range ds.DeliveryEvents {
		order, ok := orders[e.OrderID]
		require.True(t, ok, "event %s has no order", e.EventID)

		assert.Equal(t, order.OrderDatetime, e.OrderPlacedTime)
		assert.True(t, e.RestaurantConfirmedTime.After(e.OrderPlacedTime))
		assert.True(t, e.FoodReadyTime.After(e.RestaurantConfirmedTime))
		assert.True(t, e.RiderPickedUpTime.After(e.FoodReadyTime))
		assert.True(t, e.EstimatedDeliveryTime.After(e.OrderPlacedTime))

		if order.OrderStatus != models.OrderStatusDelivered {
			assert.Nil(t, e.DeliveredTime, "undelivered order %s has a delivered time", e.OrderID)
			assert.Nil(t, e.ActualDeliveryTimeMins)
			assert.Nil(t, e.DelayReason)
			continue
		}

		require.NotNil(t, e.DeliveredTime)
		require.NotNil(t, e.ActualDeliveryTimeMins)
		assert.True(t, e.DeliveredTime.After(e.OrderPlacedTime))
		assert.GreaterOrEqual(t, *e.ActualDeliveryTimeMins, 0.0)

		if e.DeliveredTime.After(e.EstimatedDeliveryTime) {
			assert.NotNil(t, e.DelayReason, "late delivery %s has no delay reason", e.EventID)
		} else {
			assert.Nil(t, e.DelayReason, "on-time delivery %s has a delay reason", e.EventID)
		}
	}
}

func TestDeliveryEventsOnePerOrder(t *testing.T) {
	ds := generateTestDataset(t, 42)

	seen := make(map[string]bool)
	for _, e := range ds.DeliveryEvents {
		assert.False(t, seen[e.OrderID], "order %s has more than one event", e.OrderID)
		seen[e.OrderID] = true
	}
	assert.Len(t, seen, len(ds.Orders))
}
