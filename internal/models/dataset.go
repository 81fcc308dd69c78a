package models

import "time"

// Customer is one row of the CUSTOMERS sheet.
type Customer struct {
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	City         string    `json:"city"`
	Area         string    `json:"area"`
	SignupDate   time.Time `json:"signup_date"`
	SignupSource string    `json:"signup_source"`
	CustomerTier string    `json:"customer_tier"`

	// Derived during cleaning.
	TenureDays int `json:"tenure_days,omitempty"`
}

// Restaurant is one row of the RESTAURANTS sheet.
type Restaurant struct {
	RestaurantID    string  `json:"restaurant_id"`
	RestaurantName  string  `json:"restaurant_name"`
	City            string  `json:"city"`
	Zone            string  `json:"zone"`
	CuisineType     string  `json:"cuisine_type"`
	RestaurantTier  string  `json:"restaurant_tier"`
	AvgPrepTimeMins int     `json:"avg_prep_time_mins"`
	Rating          float64 `json:"rating"`
}

// Rider is one row of the RIDERS sheet. Zone is nullable until cleaning
// defaults it.
type Rider struct {
	RiderID     string    `json:"rider_id"`
	RiderName   string    `json:"rider_name"`
	City        string    `json:"city"`
	Zone        *string   `json:"zone"`
	VehicleType string    `json:"vehicle_type"`
	RiderStatus string    `json:"rider_status"`
	JoinDate    time.Time `json:"join_date"`

	TenureDays int `json:"tenure_days,omitempty"`
}

// Order is one row of the ORDERS sheet.
type Order struct {
	OrderID            string    `json:"order_id"`
	CustomerID         string    `json:"customer_id"`
	RestaurantID       string    `json:"restaurant_id"`
	OrderDatetime      time.Time `json:"order_datetime"`
	OrderStatus        string    `json:"order_status"`
	GrossAmount        float64   `json:"gross_amount"`
	DiscountAmount     *float64  `json:"discount_amount"`
	NetAmount          float64   `json:"net_amount"`
	DeliveryFee        float64   `json:"delivery_fee"`
	PromoCode          *string   `json:"promo_code"`
	PaymentMethod      string    `json:"payment_method"`
	CancellationReason *string   `json:"cancellation_reason"`

	// Derived during cleaning.
	OrderDate      string `json:"order_date,omitempty"`
	OrderHour      int    `json:"order_hour,omitempty"`
	OrderDayOfWeek string `json:"order_day_of_week,omitempty"`
	OrderWeek      string `json:"order_week,omitempty"`
	OrderMonth     string `json:"order_month,omitempty"`
	IsWeekend      bool   `json:"is_weekend,omitempty"`
	IsPeakHour     bool   `json:"is_peak_hour,omitempty"`
}

// OrderItem is one row of the ORDER_ITEMS sheet.
type OrderItem struct {
	ItemID    string  `json:"item_id"`
	OrderID   string  `json:"order_id"`
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ItemTotal float64 `json:"item_total"`
}

// DeliveryEvent is one row of the DELIVERY_EVENTS sheet, 1:1 with orders.
// DeliveredTime and the duration stay nil for orders that never completed.
type DeliveryEvent struct {
	EventID                 string     `json:"event_id"`
	OrderID                 string     `json:"order_id"`
	RiderID                 string     `json:"rider_id"`
	OrderPlacedTime         time.Time  `json:"order_placed_time"`
	RestaurantConfirmedTime time.Time  `json:"restaurant_confirmed_time"`
	FoodReadyTime           time.Time  `json:"food_ready_time"`
	RiderPickedUpTime       time.Time  `json:"rider_picked_up_time"`
	DeliveredTime           *time.Time `json:"delivered_time"`
	EstimatedDeliveryTime   time.Time  `json:"estimated_delivery_time"`
	ActualDeliveryTimeMins  *float64   `json:"actual_delivery_time_mins"`
	DelayReason             *string    `json:"delay_reason"`

	// Derived during cleaning.
	DeliveryPerformance string  `json:"delivery_performance,omitempty"`
	DelayMinutes        float64 `json:"delay_minutes,omitempty"`
}

// Dataset is the full six-table batch handed between pipeline stages. Each
// stage owns it exclusively while running.
type Dataset struct {
	Customers      []Customer
	Restaurants    []Restaurant
	Riders         []Rider
	Orders         []Order
	OrderItems     []OrderItem
	DeliveryEvents []DeliveryEvent
}

// OrderIDSet returns the set of order ids, used for orphan checks.
func (d *Dataset) OrderIDSet() map[string]bool {
	ids := make(map[string]bool, len(d.Orders))
	for _, o := range d.Orders {
		ids[o.OrderID] = true
	}
	return ids
}

// RestaurantByID builds a lookup table keyed by restaurant id.
func (d *Dataset) RestaurantByID() map[string]Restaurant {
	m := make(map[string]Restaurant, len(d.Restaurants))
	for _, r := range d.Restaurants {
		m[r.RestaurantID] = r
	}
	return m
}

// EventByOrderID builds a lookup of delivery events keyed by order id.
func (d *Dataset) EventByOrderID() map[string]DeliveryEvent {
	m := make(map[string]DeliveryEvent, len(d.DeliveryEvents))
	for _, e := range d.DeliveryEvents {
		m[e.OrderID] = e
	}
	return m
}

func StringPtr(s string) *string    { return &s }
func Float64Ptr(f float64) *float64 { return &f }
func TimePtr(t time.Time) *time.Time {
	return &t
}
