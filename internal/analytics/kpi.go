package analytics

import "github.com/bitesuae/bitesdata/internal/models"

// Summary holds every KPI the presentation layer shows, computed only over
// the rows passing the active filter. Rates are percentages.
type Summary struct {
	TotalOrders     int
	DeliveredOrders int
	CancelledOrders int

	GMV              float64
	NetRevenue       float64
	AvgOrderValue    float64
	DiscountBurnRate float64

	RepeatCustomerRate float64
	OrderFrequency     float64

	OnTimeRate          float64
	AvgDeliveryTimeMins float64
	AvgPrepTimeMins     float64
	AvgRiderTimeMins    float64
	CancellationRate    float64
	PeakHourDelayRate   float64
}

// Compute aggregates the filtered views. Revenue KPIs run over delivered
// orders; the repeat-customer rate and cancellation rate run over the whole
// filtered slice.
func Compute(views []OrderView) Summary {
	s := Summary{TotalOrders: len(views)}

	var totalDiscount float64
	var onTime int
	var deliverySum, prepSum, riderSum float64
	var deliveryN, prepN, riderN int
	var peakDelivered, peakLate int
	ordersPerCustomer := make(map[string]int)

	for _, v := range views {
		ordersPerCustomer[v.CustomerID]++

		switch v.OrderStatus {
		case models.OrderStatusCancelled:
			s.CancelledOrders++
			continue
		case models.OrderStatusDelivered:
		default:
			continue
		}

		s.DeliveredOrders++
		s.GMV += v.GrossAmount
		s.NetRevenue += v.NetAmount
		if v.DiscountAmount != nil {
			totalDiscount += *v.DiscountAmount
		}

		if v.DeliveryPerformance == models.PerformanceOnTime {
			onTime++
		}
		if v.ActualDeliveryTimeMins != nil {
			deliverySum += *v.ActualDeliveryTimeMins
			deliveryN++
		}
		if v.PrepTimeMins != nil {
			prepSum += *v.PrepTimeMins
			prepN++
		}
		if v.RiderTimeMins != nil {
			riderSum += *v.RiderTimeMins
			riderN++
		}

		if v.TimeOfDay == models.TimeOfDayPeak {
			peakDelivered++
			if v.DeliveryPerformance != models.PerformanceOnTime {
				peakLate++
			}
		}
	}

	if s.DeliveredOrders > 0 {
		s.AvgOrderValue = s.GMV / float64(s.DeliveredOrders)
		s.OnTimeRate = 100 * float64(onTime) / float64(s.DeliveredOrders)
	}
	if s.GMV > 0 {
		s.DiscountBurnRate = 100 * totalDiscount / s.GMV
	}
	if deliveryN > 0 {
		s.AvgDeliveryTimeMins = deliverySum / float64(deliveryN)
	}
	if prepN > 0 {
		s.AvgPrepTimeMins = prepSum / float64(prepN)
	}
	if riderN > 0 {
		s.AvgRiderTimeMins = riderSum / float64(riderN)
	}
	if s.TotalOrders > 0 {
		s.CancellationRate = 100 * float64(s.CancelledOrders) / float64(s.TotalOrders)
	}
	if peakDelivered > 0 {
		s.PeakHourDelayRate = 100 * float64(peakLate) / float64(peakDelivered)
	}

	activeCustomers := len(ordersPerCustomer)
	if activeCustomers > 0 {
		repeat := 0
		for _, n := range ordersPerCustomer {
			if n >= 2 {
				repeat++
			}
		}
		s.RepeatCustomerRate = 100 * float64(repeat) / float64(activeCustomers)
		s.OrderFrequency = float64(s.TotalOrders) / float64(activeCustomers)
	}

	return s
}
