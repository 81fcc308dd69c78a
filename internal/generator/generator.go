package generator

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/bitesuae/bitesdata/internal/factories"
	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Generator produces the six related tables in one batch. All randomness
// flows through the single rng passed in, so a fixed seed reproduces the
// whole dataset.
type Generator struct {
	config *models.Config
	rng    *rand.Rand

	customerFactory   *factories.CustomerFactory
	restaurantFactory *factories.RestaurantFactory
	riderFactory      *factories.RiderFactory
}

func New(config *models.Config, rng *rand.Rand) *Generator {
	return &Generator{
		config:            config,
		rng:               rng,
		customerFactory:   factories.NewCustomerFactory(rng),
		restaurantFactory: factories.NewRestaurantFactory(rng),
		riderFactory:      factories.NewRiderFactory(rng),
	}
}

// Generate builds all six tables with consistent foreign keys. Orders draw
// their gross amount from their restaurant's tier range, and every order gets
// exactly one delivery event.
func (g *Generator) Generate() *models.Dataset {
	ds := &models.Dataset{}

	ds.Customers = make([]models.Customer, 0, g.config.NumCustomers)
	for i := 0; i < g.config.NumCustomers; i++ {
		ds.Customers = append(ds.Customers, g.customerFactory.CreateCustomer(i+1, g.config))
	}
	log.Printf("generated %d customers", len(ds.Customers))

	ds.Restaurants = make([]models.Restaurant, 0, g.config.NumRestaurants)
	for i := 0; i < g.config.NumRestaurants; i++ {
		ds.Restaurants = append(ds.Restaurants, g.restaurantFactory.CreateRestaurant(i+1))
	}
	log.Printf("generated %d restaurants", len(ds.Restaurants))

	ds.Riders = make([]models.Rider, 0, g.config.NumRiders)
	for i := 0; i < g.config.NumRiders; i++ {
		ds.Riders = append(ds.Riders, g.riderFactory.CreateRider(i+1, g.config))
	}
	log.Printf("generated %d riders", len(ds.Riders))

	g.generateOrders(ds)
	g.generateOrderItems(ds)
	g.generateDeliveryEvents(ds)

	return ds
}

func (g *Generator) generateOrders(ds *models.Dataset) {
	today := g.config.Today()
	orderStart := today.AddDate(0, 0, -g.config.OrderWindowDays)

	bar := progressbar.Default(int64(g.config.NumOrders), "generating orders")

	ds.Orders = make([]models.Order, 0, g.config.NumOrders)
	for i := 0; i < g.config.NumOrders; i++ {
		restaurant := ds.Restaurants[g.rng.Intn(len(ds.Restaurants))]
		tier := models.TierProfileByName(restaurant.RestaurantTier)

		day := orderStart.AddDate(0, 0, g.rng.Intn(g.config.OrderWindowDays+1))
		orderDatetime := time.Date(day.Year(), day.Month(), day.Day(),
			sampleOrderHour(g.rng), g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC)

		status := weightedValue(g.rng, models.OrderStatuses)
		grossAmount := round2(uniform(g.rng, tier.AOVMin, tier.AOVMax))

		var promoCode *string
		if code := weightedValue(g.rng, models.PromoCodes); code != "" {
			promoCode = models.StringPtr(code)
		}
		discountAmount := g.discountFor(promoCode, grossAmount)

		deliveryFee := round2(uniform(g.rng, 5, 15))
		if promoCode != nil && *promoCode == "FREESHIP" {
			deliveryFee = 0
		}

		var cancellationReason *string
		if status == models.OrderStatusCancelled {
			cancellationReason = models.StringPtr(weightedValue(g.rng, models.CancellationReasons))
		}

		ds.Orders = append(ds.Orders, models.Order{
			OrderID:            fmt.Sprintf("ORD_%05d", i+1),
			CustomerID:         ds.Customers[g.rng.Intn(len(ds.Customers))].CustomerID,
			RestaurantID:       restaurant.RestaurantID,
			OrderDatetime:      orderDatetime,
			OrderStatus:        status,
			GrossAmount:        grossAmount,
			DiscountAmount:     models.Float64Ptr(discountAmount),
			NetAmount:          round2(grossAmount - discountAmount),
			DeliveryFee:        deliveryFee,
			PromoCode:          promoCode,
			PaymentMethod:      weightedValue(g.rng, models.PaymentMethods),
			CancellationReason: cancellationReason,
		})
		_ = bar.Add(1)
	}
	log.Printf("generated %d orders", len(ds.Orders))
}

// discountFor maps a promo code to its discount off the gross amount.
// NN-suffixed codes give NN percent; FREESHIP discounts nothing (it zeroes
// the delivery fee instead).
func (g *Generator) discountFor(promoCode *string, grossAmount float64) float64 {
	if promoCode == nil {
		return 0
	}
	code := *promoCode
	switch {
	case code == "FREESHIP":
		return 0
	case strings.Contains(code, "25"):
		return round2(grossAmount * 0.25)
	case strings.Contains(code, "20"):
		return round2(grossAmount * 0.20)
	case strings.Contains(code, "15"):
		return round2(grossAmount * 0.15)
	case strings.Contains(code, "10"):
		return round2(grossAmount * 0.10)
	default:
		return round2(grossAmount * uniform(g.rng, 0.05, 0.15))
	}
}

func (g *Generator) generateOrderItems(ds *models.Dataset) {
	ds.OrderItems = make([]models.OrderItem, 0, 2*len(ds.Orders))
	itemCounter := 0

	for _, order := range ds.Orders {
		numItems := sampleItemCount(g.rng)
		shares := dirichletShares(g.rng, numItems)

		for j := 0; j < numItems; j++ {
			itemCounter++
			quantity := randint(g.rng, 1, 3)
			// Unit price is derived from the order's share, then the total is
			// re-derived from the rounded price; a cent of drift is accepted.
			unitPrice := round2(shares[j] * order.GrossAmount / float64(quantity))
			itemTotal := round2(unitPrice * float64(quantity))

			cuisine := models.Cuisines[g.rng.Intn(len(models.Cuisines))].Value
			menu := models.MenuItemsByCuisine[cuisine]

			ds.OrderItems = append(ds.OrderItems, models.OrderItem{
				ItemID:    fmt.Sprintf("ITM_%05d", itemCounter),
				OrderID:   order.OrderID,
				ItemName:  menu[g.rng.Intn(len(menu))],
				Quantity:  quantity,
				UnitPrice: unitPrice,
				ItemTotal: itemTotal,
			})
		}
	}
	log.Printf("generated %d order items", len(ds.OrderItems))
}

func (g *Generator) generateDeliveryEvents(ds *models.Dataset) {
	prepLookup := make(map[string]int, len(ds.Restaurants))
	for _, r := range ds.Restaurants {
		prepLookup[r.RestaurantID] = r.AvgPrepTimeMins
	}

	ds.DeliveryEvents = make([]models.DeliveryEvent, 0, len(ds.Orders))
	for i, order := range ds.Orders {
		avgPrep, ok := prepLookup[order.RestaurantID]
		if !ok {
			avgPrep = 20
		}
		rider := ds.Riders[g.rng.Intn(len(ds.Riders))]
		event := g.deriveDeliveryEvent(i+1, order, avgPrep, rider.RiderID)
		ds.DeliveryEvents = append(ds.DeliveryEvents, event)
	}
	log.Printf("generated %d delivery events", len(ds.DeliveryEvents))
}
