package cleaner

import (
	"fmt"
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
)

// deriveColumns recomputes every analytical column from the repaired base
// columns. This runs last so the derived values always agree with the
// repaired data, and re-running it is a no-op.
func (c *Cleaner) deriveColumns(ds *models.Dataset) {
	for i := range ds.Orders {
		o := &ds.Orders[i]
		t := o.OrderDatetime
		o.OrderDate = t.Format("2006-01-02")
		o.OrderHour = t.Hour()
		o.OrderDayOfWeek = t.Weekday().String()
		year, week := t.ISOWeek()
		o.OrderWeek = fmt.Sprintf("%d-W%02d", year, week)
		o.OrderMonth = t.Format("2006-01")
		// UAE weekend: Friday and Saturday.
		o.IsWeekend = t.Weekday() == time.Friday || t.Weekday() == time.Saturday
		o.IsPeakHour = models.IsPeakHour(t.Hour())
	}

	for i := range ds.DeliveryEvents {
		e := &ds.DeliveryEvents[i]
		e.DeliveryPerformance = Performance(e)
		e.DelayMinutes = delayMinutes(e)
	}

	for i := range ds.Customers {
		ds.Customers[i].TenureDays = tenureDays(ds.Customers[i].SignupDate, c.today)
	}
	for i := range ds.Riders {
		ds.Riders[i].TenureDays = tenureDays(ds.Riders[i].JoinDate, c.today)
	}
}

// Performance classifies a delivery against its estimate.
func Performance(e *models.DeliveryEvent) string {
	if e.DeliveredTime == nil {
		return models.PerformanceNotDelivered
	}
	if !e.DeliveredTime.After(e.EstimatedDeliveryTime) {
		return models.PerformanceOnTime
	}
	if e.DeliveredTime.Sub(e.EstimatedDeliveryTime).Minutes() <= 15 {
		return models.PerformanceLateMinor
	}
	return models.PerformanceLateMajor
}

func delayMinutes(e *models.DeliveryEvent) float64 {
	if e.DeliveredTime == nil || !e.DeliveredTime.After(e.EstimatedDeliveryTime) {
		return 0
	}
	return round2(e.DeliveredTime.Sub(e.EstimatedDeliveryTime).Minutes())
}

func tenureDays(since, today time.Time) int {
	days := int(today.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
