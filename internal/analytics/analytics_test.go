package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitesuae/bitesdata/internal/models"
)

func testDataset() *models.Dataset {
	day := func(d, hour, min int) time.Time {
		return time.Date(2026, 2, d, hour, min, 0, 0, time.UTC)
	}

	order := func(id, cust, rest string, at time.Time, status string, gross, discount float64) models.Order {
		return models.Order{
			OrderID:        id,
			CustomerID:     cust,
			RestaurantID:   rest,
			OrderDatetime:  at,
			OrderStatus:    status,
			GrossAmount:    gross,
			DiscountAmount: models.Float64Ptr(discount),
			NetAmount:      gross - discount,
			PaymentMethod:  "Card",
		}
	}

	event := func(id, orderID string, at time.Time, performance string, durationMins float64) models.DeliveryEvent {
		e := models.DeliveryEvent{
			EventID:                 id,
			OrderID:                 orderID,
			RiderID:                 "RDR_001",
			OrderPlacedTime:         at,
			RestaurantConfirmedTime: at.Add(2 * time.Minute),
			FoodReadyTime:           at.Add(17 * time.Minute),
			RiderPickedUpTime:       at.Add(22 * time.Minute),
			EstimatedDeliveryTime:   at.Add(40 * time.Minute),
			DeliveryPerformance:     performance,
		}
		if performance != models.PerformanceNotDelivered {
			e.DeliveredTime = models.TimePtr(at.Add(time.Duration(durationMins) * time.Minute))
			e.ActualDeliveryTimeMins = models.Float64Ptr(durationMins)
		}
		return e
	}

	return &models.Dataset{
		Restaurants: []models.Restaurant{
			{RestaurantID: "REST_001", RestaurantName: "Al Spice Express", City: "Dubai", Zone: "Marina", CuisineType: "Indian", RestaurantTier: "QSR"},
			{RestaurantID: "REST_002", RestaurantName: "Royal Garden", City: "Abu Dhabi", Zone: "Corniche", CuisineType: "Western", RestaurantTier: "Premium"},
		},
		Orders: []models.Order{
			order("ORD_00001", "CUST_00001", "REST_001", day(10, 13, 0), models.OrderStatusDelivered, 100, 10),
			order("ORD_00002", "CUST_00001", "REST_001", day(10, 20, 0), models.OrderStatusDelivered, 200, 0),
			order("ORD_00003", "CUST_00002", "REST_002", day(11, 20, 30), models.OrderStatusCancelled, 300, 0),
			order("ORD_00004", "CUST_00003", "REST_002", day(12, 9, 0), models.OrderStatusDelivered, 100, 40),
			order("ORD_00005", "CUST_00003", "REST_001", day(12, 15, 0), models.OrderStatusInProgress, 50, 0),
		},
		DeliveryEvents: []models.DeliveryEvent{
			event("EVT_00001", "ORD_00001", day(10, 13, 0), models.PerformanceOnTime, 30),
			event("EVT_00002", "ORD_00002", day(10, 20, 0), models.PerformanceLateMinor, 50),
			event("EVT_00003", "ORD_00003", day(11, 20, 30), models.PerformanceNotDelivered, 0),
			event("EVT_00004", "ORD_00004", day(12, 9, 0), models.PerformanceOnTime, 25),
			event("EVT_00005", "ORD_00005", day(12, 15, 0), models.PerformanceNotDelivered, 0),
		},
	}
}

func TestTimeOfDayBuckets(t *testing.T) {
	assert.Equal(t, models.TimeOfDayLunch, TimeOfDay(12))
	assert.Equal(t, models.TimeOfDayLunch, TimeOfDay(14))
	assert.Equal(t, models.TimeOfDayPeak, TimeOfDay(19))
	assert.Equal(t, models.TimeOfDayPeak, TimeOfDay(22))
	assert.Equal(t, models.TimeOfDayOffPeak, TimeOfDay(9))
	assert.Equal(t, models.TimeOfDayOffPeak, TimeOfDay(23))
}

func TestBuildOrderViewsJoinsTables(t *testing.T) {
	views := BuildOrderViews(testDataset())
	require.Len(t, views, 5)

	v := views[0]
	assert.Equal(t, "Al Spice Express", v.RestaurantName)
	assert.Equal(t, "Dubai", v.City)
	assert.Equal(t, "Marina", v.Zone)
	assert.Equal(t, "Indian", v.CuisineType)
	assert.Equal(t, "QSR", v.RestaurantTier)
	assert.Equal(t, "RDR_001", v.RiderID)
	assert.Equal(t, models.PerformanceOnTime, v.DeliveryPerformance)
	assert.Equal(t, models.TimeOfDayLunch, v.TimeOfDay)

	require.NotNil(t, v.PrepTimeMins)
	assert.InDelta(t, 15.0, *v.PrepTimeMins, 0.005)
	require.NotNil(t, v.RiderTimeMins)
	assert.InDelta(t, 8.0, *v.RiderTimeMins, 0.005) // delivered 30, picked up 22
}

func TestBuildOrderViewsToleratesMissingParents(t *testing.T) {
	ds := testDataset()
	ds.Restaurants = nil
	ds.DeliveryEvents = nil

	views := BuildOrderViews(ds)
	require.Len(t, views, 5)
	assert.Empty(t, views[0].City)
	assert.Empty(t, views[0].DeliveryPerformance)
	assert.Nil(t, views[0].PrepTimeMins)
}

func TestFilterByCity(t *testing.T) {
	views := BuildOrderViews(testDataset())
	got := Filter{Cities: []string{"Dubai"}}.Apply(views)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.Equal(t, "Dubai", v.City)
	}
}

func TestFilterByDateRange(t *testing.T) {
	views := BuildOrderViews(testDataset())
	f := Filter{
		StartDate: time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 11, 23, 59, 59, 0, time.UTC),
	}
	got := f.Apply(views)
	require.Len(t, got, 1)
	assert.Equal(t, "ORD_00003", got[0].OrderID)
}

func TestFilterByTimeOfDay(t *testing.T) {
	views := BuildOrderViews(testDataset())

	got := Filter{TimeOfDay: models.TimeOfDayPeak}.Apply(views)
	require.Len(t, got, 2)

	all := Filter{TimeOfDay: models.TimeOfDayAll}.Apply(views)
	assert.Len(t, all, 5)
}

func TestFilterCombinesConstraints(t *testing.T) {
	views := BuildOrderViews(testDataset())
	f := Filter{
		Cities:    []string{"Dubai"},
		Cuisines:  []string{"Indian"},
		Tiers:     []string{"QSR"},
		TimeOfDay: models.TimeOfDayPeak,
	}
	got := f.Apply(views)
	require.Len(t, got, 1)
	assert.Equal(t, "ORD_00002", got[0].OrderID)
}

func TestFilterZeroValueMatchesEverything(t *testing.T) {
	views := BuildOrderViews(testDataset())
	assert.Len(t, Filter{}.Apply(views), 5)
}

func TestComputeSummary(t *testing.T) {
	views := BuildOrderViews(testDataset())
	s := Compute(views)

	assert.Equal(t, 5, s.TotalOrders)
	assert.Equal(t, 3, s.DeliveredOrders)
	assert.Equal(t, 1, s.CancelledOrders)

	assert.InDelta(t, 400.0, s.GMV, 0.005)
	assert.InDelta(t, 350.0, s.NetRevenue, 0.005)
	assert.InDelta(t, 400.0/3, s.AvgOrderValue, 0.005)
	// 50 AED of discount against 400 AED of delivered GMV.
	assert.InDelta(t, 12.5, s.DiscountBurnRate, 0.005)

	// C1 and C3 ordered twice, C2 once.
	assert.InDelta(t, 100.0*2/3, s.RepeatCustomerRate, 0.005)
	assert.InDelta(t, 5.0/3, s.OrderFrequency, 0.005)

	assert.InDelta(t, 100.0*2/3, s.OnTimeRate, 0.005)
	assert.InDelta(t, (30.0+50+25)/3, s.AvgDeliveryTimeMins, 0.005)
	assert.InDelta(t, 15.0, s.AvgPrepTimeMins, 0.005)
	assert.InDelta(t, 20.0, s.CancellationRate, 0.005)

	// The only delivered peak-hour order was late.
	assert.InDelta(t, 100.0, s.PeakHourDelayRate, 0.005)
}

func TestComputeEmptySlice(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.TotalOrders)
	assert.Zero(t, s.GMV)
	assert.Zero(t, s.AvgOrderValue)
	assert.Zero(t, s.OnTimeRate)
	assert.Zero(t, s.RepeatCustomerRate)
}
