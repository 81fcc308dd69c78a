package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bitesuae/bitesdata/internal/models"
)

const (
	SheetCustomers      = "CUSTOMERS"
	SheetRestaurants    = "RESTAURANTS"
	SheetRiders         = "RIDERS"
	SheetOrders         = "ORDERS"
	SheetOrderItems     = "ORDER_ITEMS"
	SheetDeliveryEvents = "DELIVERY_EVENTS"

	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Sheet is one named table rendered to strings, the common shape the
// workbook and csv writers consume. Nullable cells render as "".
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Sheets renders the dataset into its six sheets. The derived analytical
// columns are only included for cleaned exports.
func Sheets(ds *models.Dataset, derived bool) []Sheet {
	return []Sheet{
		customersSheet(ds.Customers, derived),
		restaurantsSheet(ds.Restaurants),
		ridersSheet(ds.Riders, derived),
		ordersSheet(ds.Orders, derived),
		orderItemsSheet(ds.OrderItems),
		deliveryEventsSheet(ds.DeliveryEvents, derived),
	}
}

func customersSheet(customers []models.Customer, derived bool) Sheet {
	header := []string{"customer_id", "customer_name", "city", "area", "signup_date", "signup_source", "customer_tier"}
	if derived {
		header = append(header, "tenure_days")
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		row := []string{c.CustomerID, c.CustomerName, c.City, c.Area,
			c.SignupDate.Format(dateLayout), c.SignupSource, c.CustomerTier}
		if derived {
			row = append(row, strconv.Itoa(c.TenureDays))
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetCustomers, Header: header, Rows: rows}
}

func restaurantsSheet(restaurants []models.Restaurant) Sheet {
	header := []string{"restaurant_id", "restaurant_name", "city", "zone", "cuisine_type", "restaurant_tier", "avg_prep_time_mins", "rating"}
	rows := make([][]string, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, []string{r.RestaurantID, r.RestaurantName, r.City, r.Zone,
			r.CuisineType, r.RestaurantTier, strconv.Itoa(r.AvgPrepTimeMins), formatFloat(r.Rating)})
	}
	return Sheet{Name: SheetRestaurants, Header: header, Rows: rows}
}

func ridersSheet(riders []models.Rider, derived bool) Sheet {
	header := []string{"rider_id", "rider_name", "city", "zone", "vehicle_type", "rider_status", "join_date"}
	if derived {
		header = append(header, "tenure_days")
	}
	rows := make([][]string, 0, len(riders))
	for _, r := range riders {
		row := []string{r.RiderID, r.RiderName, r.City, stringOrEmpty(r.Zone),
			r.VehicleType, r.RiderStatus, r.JoinDate.Format(dateLayout)}
		if derived {
			row = append(row, strconv.Itoa(r.TenureDays))
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetRiders, Header: header, Rows: rows}
}

func ordersSheet(orders []models.Order, derived bool) Sheet {
	header := []string{"order_id", "customer_id", "restaurant_id", "order_datetime", "order_status",
		"gross_amount", "discount_amount", "net_amount", "delivery_fee", "promo_code", "payment_method", "cancellation_reason"}
	if derived {
		header = append(header, "order_date", "order_hour", "order_day_of_week", "order_week", "order_month", "is_weekend", "is_peak_hour")
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		row := []string{o.OrderID, o.CustomerID, o.RestaurantID,
			o.OrderDatetime.Format(datetimeLayout), o.OrderStatus,
			formatFloat(o.GrossAmount), floatOrEmpty(o.DiscountAmount), formatFloat(o.NetAmount),
			formatFloat(o.DeliveryFee), stringOrEmpty(o.PromoCode), o.PaymentMethod, stringOrEmpty(o.CancellationReason)}
		if derived {
			row = append(row, o.OrderDate, strconv.Itoa(o.OrderHour), o.OrderDayOfWeek,
				o.OrderWeek, o.OrderMonth, strconv.FormatBool(o.IsWeekend), strconv.FormatBool(o.IsPeakHour))
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetOrders, Header: header, Rows: rows}
}

func orderItemsSheet(items []models.OrderItem) Sheet {
	header := []string{"item_id", "order_id", "item_name", "quantity", "unit_price", "item_total"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.ItemID, it.OrderID, it.ItemName,
			strconv.Itoa(it.Quantity), formatFloat(it.UnitPrice), formatFloat(it.ItemTotal)})
	}
	return Sheet{Name: SheetOrderItems, Header: header, Rows: rows}
}

func deliveryEventsSheet(events []models.DeliveryEvent, derived bool) Sheet {
	header := []string{"event_id", "order_id", "rider_id", "order_placed_time", "restaurant_confirmed_time",
		"food_ready_time", "rider_picked_up_time", "delivered_time", "estimated_delivery_time",
		"actual_delivery_time_mins", "delay_reason"}
	if derived {
		header = append(header, "delivery_performance", "delay_minutes")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		row := []string{e.EventID, e.OrderID, e.RiderID,
			e.OrderPlacedTime.Format(datetimeLayout), e.RestaurantConfirmedTime.Format(datetimeLayout),
			e.FoodReadyTime.Format(datetimeLayout), e.RiderPickedUpTime.Format(datetimeLayout),
			timeOrEmpty(e.DeliveredTime), e.EstimatedDeliveryTime.Format(datetimeLayout),
			floatOrEmpty(e.ActualDeliveryTimeMins), stringOrEmpty(e.DelayReason)}
		if derived {
			row = append(row, e.DeliveryPerformance, formatFloat(e.DelayMinutes))
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetDeliveryEvents, Header: header, Rows: rows}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(datetimeLayout)
}

// parsers used when reading a workbook back

func parseFloatCell(cell, column string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", column, cell, err)
	}
	return v, nil
}

func parseIntCell(cell, column string) (int, error) {
	// Spreadsheet tools are fond of turning 25 into 25.00.
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", column, cell, err)
	}
	return int(v), nil
}

func parseTimeCell(cell, column string) (time.Time, error) {
	for _, layout := range []string{datetimeLayout, dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing %s %q: unrecognised time format", column, cell)
}
