// Package analytics joins the cleaned tables and computes the dashboard
// KPIs over whatever slice a filter selects. Filter state is passed in per
// invocation; there is no ambient session state.
package analytics

import (
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
)

// OrderView is one order joined with its restaurant and delivery event,
// the row shape the KPI layer aggregates over.
type OrderView struct {
	models.Order

	RestaurantName string
	City           string
	Zone           string
	CuisineType    string
	RestaurantTier string

	RiderID                string
	DeliveryPerformance    string
	ActualDeliveryTimeMins *float64
	PrepTimeMins           *float64
	RiderTimeMins          *float64
	TimeOfDay              string
}

// Filter selects the orders KPIs are computed over. Zero values mean
// "no constraint": empty slices match everything, zero times unbound the
// date range, and an empty or "All" time-of-day keeps every bucket.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	Cities    []string
	Zones     []string
	Cuisines  []string
	Tiers     []string
	TimeOfDay string
}

// TimeOfDay buckets an order hour for filtering: lunch, evening peak, or
// everything else.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 12 && hour <= 14:
		return models.TimeOfDayLunch
	case hour >= 19 && hour <= 22:
		return models.TimeOfDayPeak
	default:
		return models.TimeOfDayOffPeak
	}
}

// BuildOrderViews joins orders with restaurants and delivery events along
// the documented foreign keys. Orders with no matching parent still produce
// a view with the join columns left empty.
func BuildOrderViews(ds *models.Dataset) []OrderView {
	restaurants := ds.RestaurantByID()
	events := ds.EventByOrderID()

	views := make([]OrderView, 0, len(ds.Orders))
	for _, o := range ds.Orders {
		v := OrderView{
			Order:     o,
			TimeOfDay: TimeOfDay(o.OrderDatetime.Hour()),
		}

		if r, ok := restaurants[o.RestaurantID]; ok {
			v.RestaurantName = r.RestaurantName
			v.City = r.City
			v.Zone = r.Zone
			v.CuisineType = r.CuisineType
			v.RestaurantTier = r.RestaurantTier
		}

		if e, ok := events[o.OrderID]; ok {
			v.RiderID = e.RiderID
			v.DeliveryPerformance = e.DeliveryPerformance
			v.ActualDeliveryTimeMins = e.ActualDeliveryTimeMins

			prep := e.FoodReadyTime.Sub(e.RestaurantConfirmedTime).Minutes()
			v.PrepTimeMins = models.Float64Ptr(prep)
			if e.DeliveredTime != nil {
				rider := e.DeliveredTime.Sub(e.RiderPickedUpTime).Minutes()
				v.RiderTimeMins = models.Float64Ptr(rider)
			}
		}

		views = append(views, v)
	}
	return views
}

// Apply returns the views passing every active constraint.
func (f Filter) Apply(views []OrderView) []OrderView {
	var out []OrderView
	for _, v := range views {
		if f.matches(v) {
			out = append(out, v)
		}
	}
	return out
}

func (f Filter) matches(v OrderView) bool {
	t := v.OrderDatetime
	if !f.StartDate.IsZero() && t.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && t.After(f.EndDate) {
		return false
	}
	if !matchesSet(f.Cities, v.City) {
		return false
	}
	if !matchesSet(f.Zones, v.Zone) {
		return false
	}
	if !matchesSet(f.Cuisines, v.CuisineType) {
		return false
	}
	if !matchesSet(f.Tiers, v.RestaurantTier) {
		return false
	}
	if f.TimeOfDay != "" && f.TimeOfDay != models.TimeOfDayAll && v.TimeOfDay != f.TimeOfDay {
		return false
	}
	return true
}

func matchesSet(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}
