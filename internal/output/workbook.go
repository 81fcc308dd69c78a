package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/bitesuae/bitesdata/internal/models"
)

// WriteWorkbook writes the dataset as a multi-sheet xlsx file, one sheet per
// table. Derived columns are included only when derived is true.
func WriteWorkbook(path string, ds *models.Dataset, derived bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range Sheets(ds, derived) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("naming sheet %s: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
			}
		}
		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet.Name, err)
	}

	for i, row := range sheet.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing %s row %d: %w", sheet.Name, i+2, err)
		}
		if err := f.SetSheetRow(sheet.Name, cellRef, &cells); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet.Name, i+2, err)
		}
	}
	return nil
}

// ReadWorkbook loads a dataset back from a workbook written by WriteWorkbook.
// Cells are located by header name so column order and extra derived columns
// do not matter; an unreadable file or a malformed required cell is fatal.
func ReadWorkbook(path string) (*models.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	ds := &models.Dataset{}
	if err := readCustomers(f, ds); err != nil {
		return nil, err
	}
	if err := readRestaurants(f, ds); err != nil {
		return nil, err
	}
	if err := readRiders(f, ds); err != nil {
		return nil, err
	}
	if err := readOrders(f, ds); err != nil {
		return nil, err
	}
	if err := readOrderItems(f, ds); err != nil {
		return nil, err
	}
	if err := readDeliveryEvents(f, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// record maps a row's cells by header name. Short rows, which excelize
// produces when trailing cells are empty, read as "".
type record map[string]string

func sheetRecords(f *excelize.File, sheet string) ([]record, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	header := rows[0]
	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func readCustomers(f *excelize.File, ds *models.Dataset) error {
	records, err := sheetRecords(f, SheetCustomers)
	if err != nil {
		return err
	}
	for _, rec := range records {
		signup, err := parseTimeCell(rec["signup_date"], "signup_date")
		if err != nil {
			return err
		}
		ds.Customers = append(ds.Customers, models.Customer{
			CustomerID:   rec["customer_id"],
			CustomerName: rec["customer_name"],
			City:         rec["city"],
			Area:         rec["area"],
			SignupDate:   signup,
			SignupSource: rec["signup_source"],
			CustomerTier: rec["customer_tier"],
		})
	}
	return nil
}

func readRestaurants(f *excelize.File, ds *models.Dataset) error {
	records, err := sheetRecords(f, SheetRestaurants)
	if err != nil {
		return err
	}
	for _, rec := range records {
		prep, err := parseIntCell(rec["avg_prep_time_mins"], "avg_prep_time_mins")
		if err != nil {
			return err
		}
		rating, err := parseFloatCell(rec["rating"], "rating")
		if err != nil {
			return err
		}
		ds.Restaurants = append(ds.Restaurants, models.Restaurant{
			RestaurantID:    rec["restaurant_id"],
			RestaurantName:  rec["restaurant_name"],
			City:            rec["city"],
			Zone:            rec["zone"],
			CuisineType:     rec["cuisine_type"],
			RestaurantTier:  rec["restaurant_tier"],
			AvgPrepTimeMins: prep,
			Rating:          rating,
		})
	}
	return nil
}

func readRiders(f *excelize.File, ds *models.Dataset) error {
	records, err := sheetRecords(f, SheetRiders)
	if err != nil {
		return err
	}
	for _, rec := range records {
		join, err := parseTimeCell(rec["join_date"], "join_date")
		if err != nil {
			return err
		}
		rider := models.Rider{
			RiderID:     rec["rider_id"],
			RiderName:   rec["rider_name"],
			City:        rec["city"],
			VehicleType: rec["vehicle_type"],
			RiderStatus: rec["rider_status"],
			JoinDate:    join,
		}
		if zone := rec["zone"]; zone != "" {
			rider.Zone = models.StringPtr(zone)
		}
		ds.Riders = append(ds.Riders, rider)
	}
	return nil
}

func readOrders(f *excelize.File, ds *models.Dataset) error {
	records, err := sheetRecords(f, SheetOrders)
	if err != nil {
		return err
	}
	for _, rec := range records {
		placed, err := parseTimeCell(rec["order_datetime"], "order_datetime")
		if err != nil {
			return err
		}
		gross, err := parseFloatCell(rec["gross_amount"], "gross_amount")
		if err != nil {
			return err
		}
		net, err := parseFloatCell(rec["net_amount"], "net_amount")
		if err != nil {
			return err
		}
		fee, err := parseFloatCell(rec["delivery_fee"], "delivery_fee")
		if err != nil {
			return err
		}
		order := models.Order{
			OrderID:       rec["order_id"],
			CustomerID:    rec["customer_id"],
			RestaurantID:  rec["restaurant_id"],
			OrderDatetime: placed,
			OrderStatus:   rec["order_status"],
			GrossAmount:   gross,
			NetAmount:     net,
			DeliveryFee:   fee,
			PaymentMethod: rec["payment_method"],
		}
		if cell := rec["discount_amount"]; cell != "" {
			discount, err := parseFloatCell(cell, "discount_amount")
			if err != nil {
				return err
			}
			order.DiscountAmount = models.Float64Ptr(discount)
		}
		if promo := rec["promo_code"]; promo != "" {
			order.PromoCode = models.StringPtr(promo)
		}
		if reason := rec["cancellation_reason"]; reason != "" {
			order.CancellationReason = models.StringPtr(reason)
		}
		ds.Orders = append(ds.Orders, order)
	}
	return nil
}

func readOrderItems(f *excelize.File, ds *models.Dataset) error {
	records, err := sheetRecords(f, SheetOrderItems)
	if err != nil {
		return err
	}
	for _, rec := range records {
		qty, err := parseIntCell(rec["quantity"], "quantity")
		if err != nil {
			return err
		}
		price, err := parseFloatCell(rec["unit_price"], "unit_price")
		if err != nil {
			return err
		}
		total, err := parseFloatCell(rec["item_total"], "item_total")
		if err != nil {
			return err
		}
		ds.OrderItems = append(ds.OrderItems, models.OrderItem{
			ItemID:    rec["item_id"],
			OrderID:   rec["order_id"],
			ItemName:  rec["item_name"],
			Quantity:  qty,
			UnitPrice: price,
			ItemTotal: total,
		})
	}
	return nil
}

func readDeliveryEvents(f *excelize.File, ds *models.Dataset) error {
	records, err := sheetRecords(f, SheetDeliveryEvents)
	if err != nil {
		return err
	}
	for _, rec := range records {
		placed, err := parseTimeCell(rec["order_placed_time"], "order_placed_time")
		if err != nil {
			return err
		}
		confirmed, err := parseTimeCell(rec["restaurant_confirmed_time"], "restaurant_confirmed_time")
		if err != nil {
			return err
		}
		ready, err := parseTimeCell(rec["food_ready_time"], "food_ready_time")
		if err != nil {
			return err
		}
		pickedUp, err := parseTimeCell(rec["rider_picked_up_time"], "rider_picked_up_time")
		if err != nil {
			return err
		}
		estimated, err := parseTimeCell(rec["estimated_delivery_time"], "estimated_delivery_time")
		if err != nil {
			return err
		}
		event := models.DeliveryEvent{
			EventID:                 rec["event_id"],
			OrderID:                 rec["order_id"],
			RiderID:                 rec["rider_id"],
			OrderPlacedTime:         placed,
			RestaurantConfirmedTime: confirmed,
			FoodReadyTime:           ready,
			RiderPickedUpTime:       pickedUp,
			EstimatedDeliveryTime:   estimated,
		}
		if cell := rec["delivered_time"]; cell != "" {
			delivered, err := parseTimeCell(cell, "delivered_time")
			if err != nil {
				return err
			}
			event.DeliveredTime = models.TimePtr(delivered)
		}
		if cell := rec["actual_delivery_time_mins"]; cell != "" {
			mins, err := parseFloatCell(cell, "actual_delivery_time_mins")
			if err != nil {
				return err
			}
			event.ActualDeliveryTimeMins = models.Float64Ptr(mins)
		}
		if reason := rec["delay_reason"]; reason != "" {
			event.DelayReason = models.StringPtr(reason)
		}
		ds.DeliveryEvents = append(ds.DeliveryEvents, event)
	}
	return nil
}
