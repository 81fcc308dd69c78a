package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/bitesuae/bitesdata/internal/models"
)

// Parquet row types mirror the sheet schemas. Timestamps are written as
// formatted UTF8 strings so the files line up with the csv and xlsx exports.

type customerRow struct {
	CustomerID   string `parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CustomerName string `parquet:"name=customer_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	City         string `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Area         string `parquet:"name=area, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SignupDate   string `parquet:"name=signup_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	SignupSource string `parquet:"name=signup_source, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CustomerTier string `parquet:"name=customer_tier, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TenureDays   int32  `parquet:"name=tenure_days, type=INT32"`
}

type restaurantRow struct {
	RestaurantID    string  `parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantName  string  `parquet:"name=restaurant_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	City            string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Zone            string  `parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CuisineType     string  `parquet:"name=cuisine_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantTier  string  `parquet:"name=restaurant_tier, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	AvgPrepTimeMins int32   `parquet:"name=avg_prep_time_mins, type=INT32"`
	Rating          float64 `parquet:"name=rating, type=DOUBLE"`
}

type riderRow struct {
	RiderID     string `parquet:"name=rider_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RiderName   string `parquet:"name=rider_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	City        string `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Zone        string `parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	VehicleType string `parquet:"name=vehicle_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RiderStatus string `parquet:"name=rider_status, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	JoinDate    string `parquet:"name=join_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	TenureDays  int32  `parquet:"name=tenure_days, type=INT32"`
}

type orderRow struct {
	OrderID            string   `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CustomerID         string   `parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantID       string   `parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	OrderDatetime      string   `parquet:"name=order_datetime, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderStatus        string   `parquet:"name=order_status, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	GrossAmount        float64  `parquet:"name=gross_amount, type=DOUBLE"`
	DiscountAmount     *float64 `parquet:"name=discount_amount, type=DOUBLE, repetitiontype=OPTIONAL"`
	NetAmount          float64  `parquet:"name=net_amount, type=DOUBLE"`
	DeliveryFee        float64  `parquet:"name=delivery_fee, type=DOUBLE"`
	PromoCode          *string  `parquet:"name=promo_code, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	PaymentMethod      string   `parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CancellationReason *string  `parquet:"name=cancellation_reason, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type orderItemRow struct {
	ItemID    string  `parquet:"name=item_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	OrderID   string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ItemName  string  `parquet:"name=item_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Quantity  int32   `parquet:"name=quantity, type=INT32"`
	UnitPrice float64 `parquet:"name=unit_price, type=DOUBLE"`
	ItemTotal float64 `parquet:"name=item_total, type=DOUBLE"`
}

type deliveryEventRow struct {
	EventID                 string   `parquet:"name=event_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	OrderID                 string   `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RiderID                 string   `parquet:"name=rider_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	OrderPlacedTime         string   `parquet:"name=order_placed_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	RestaurantConfirmedTime string   `parquet:"name=restaurant_confirmed_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	FoodReadyTime           string   `parquet:"name=food_ready_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	RiderPickedUpTime       string   `parquet:"name=rider_picked_up_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	DeliveredTime           *string  `parquet:"name=delivered_time, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	EstimatedDeliveryTime   string   `parquet:"name=estimated_delivery_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	ActualDeliveryTimeMins  *float64 `parquet:"name=actual_delivery_time_mins, type=DOUBLE, repetitiontype=OPTIONAL"`
	DelayReason             *string  `parquet:"name=delay_reason, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// ExportParquet writes one parquet file per sheet into dir and returns the
// paths written.
func ExportParquet(dir string, ds *models.Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var paths []string

	customers := make([]interface{}, 0, len(ds.Customers))
	for _, c := range ds.Customers {
		customers = append(customers, customerRow{
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			City:         c.City,
			Area:         c.Area,
			SignupDate:   c.SignupDate.Format(dateLayout),
			SignupSource: c.SignupSource,
			CustomerTier: c.CustomerTier,
			TenureDays:   int32(c.TenureDays),
		})
	}
	path, err := writeParquetFile(dir, SheetCustomers, new(customerRow), customers)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	restaurants := make([]interface{}, 0, len(ds.Restaurants))
	for _, r := range ds.Restaurants {
		restaurants = append(restaurants, restaurantRow{
			RestaurantID:    r.RestaurantID,
			RestaurantName:  r.RestaurantName,
			City:            r.City,
			Zone:            r.Zone,
			CuisineType:     r.CuisineType,
			RestaurantTier:  r.RestaurantTier,
			AvgPrepTimeMins: int32(r.AvgPrepTimeMins),
			Rating:          r.Rating,
		})
	}
	path, err = writeParquetFile(dir, SheetRestaurants, new(restaurantRow), restaurants)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	riders := make([]interface{}, 0, len(ds.Riders))
	for _, r := range ds.Riders {
		riders = append(riders, riderRow{
			RiderID:     r.RiderID,
			RiderName:   r.RiderName,
			City:        r.City,
			Zone:        stringOrEmpty(r.Zone),
			VehicleType: r.VehicleType,
			RiderStatus: r.RiderStatus,
			JoinDate:    r.JoinDate.Format(dateLayout),
			TenureDays:  int32(r.TenureDays),
		})
	}
	path, err = writeParquetFile(dir, SheetRiders, new(riderRow), riders)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	orders := make([]interface{}, 0, len(ds.Orders))
	for _, o := range ds.Orders {
		orders = append(orders, orderRow{
			OrderID:            o.OrderID,
			CustomerID:         o.CustomerID,
			RestaurantID:       o.RestaurantID,
			OrderDatetime:      o.OrderDatetime.Format(datetimeLayout),
			OrderStatus:        o.OrderStatus,
			GrossAmount:        o.GrossAmount,
			DiscountAmount:     o.DiscountAmount,
			NetAmount:          o.NetAmount,
			DeliveryFee:        o.DeliveryFee,
			PromoCode:          o.PromoCode,
			PaymentMethod:      o.PaymentMethod,
			CancellationReason: o.CancellationReason,
		})
	}
	path, err = writeParquetFile(dir, SheetOrders, new(orderRow), orders)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	items := make([]interface{}, 0, len(ds.OrderItems))
	for _, it := range ds.OrderItems {
		items = append(items, orderItemRow{
			ItemID:    it.ItemID,
			OrderID:   it.OrderID,
			ItemName:  it.ItemName,
			Quantity:  int32(it.Quantity),
			UnitPrice: it.UnitPrice,
			ItemTotal: it.ItemTotal,
		})
	}
	path, err = writeParquetFile(dir, SheetOrderItems, new(orderItemRow), items)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	events := make([]interface{}, 0, len(ds.DeliveryEvents))
	for _, e := range ds.DeliveryEvents {
		row := deliveryEventRow{
			EventID:                 e.EventID,
			OrderID:                 e.OrderID,
			RiderID:                 e.RiderID,
			OrderPlacedTime:         e.OrderPlacedTime.Format(datetimeLayout),
			RestaurantConfirmedTime: e.RestaurantConfirmedTime.Format(datetimeLayout),
			FoodReadyTime:           e.FoodReadyTime.Format(datetimeLayout),
			RiderPickedUpTime:       e.RiderPickedUpTime.Format(datetimeLayout),
			EstimatedDeliveryTime:   e.EstimatedDeliveryTime.Format(datetimeLayout),
			ActualDeliveryTimeMins:  e.ActualDeliveryTimeMins,
			DelayReason:             e.DelayReason,
		}
		if e.DeliveredTime != nil {
			row.DeliveredTime = models.StringPtr(e.DeliveredTime.Format(datetimeLayout))
		}
		events = append(events, row)
	}
	path, err = writeParquetFile(dir, SheetDeliveryEvents, new(deliveryEventRow), events)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	return paths, nil
}

func writeParquetFile(dir, sheet string, schema interface{}, rows []interface{}) (string, error) {
	path := filepath.Join(dir, strings.ToLower(sheet)+".parquet")

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		fw.Close()
		return "", fmt.Errorf("creating parquet writer for %s: %w", sheet, err)
	}

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			pw.WriteStop()
			fw.Close()
			return "", fmt.Errorf("writing %s row: %w", sheet, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return "", fmt.Errorf("finalising %s: %w", path, err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
