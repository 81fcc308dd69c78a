package cleaner

import "log"

// Report counts every repair the pipeline applied. Repairs are audit
// information, not warnings; nothing here requires user action.
type Report struct {
	RunID string

	DuplicateCustomers   int
	DuplicateRestaurants int
	DuplicateRiders      int
	DuplicateOrders      int
	DuplicateItems       int
	DuplicateEvents      int

	LabelsStandardized int
	UnrecognizedLabels int

	FutureSignupDates int
	PrepTimesCapped   int
	RatingsClipped    int
	ZonesFilled       int

	InvalidDiscounts       int
	MissingDiscountsFilled int
	GrossOutliersCapped    int
	CancellationReasonsCleared int
	DeliveryFeesClipped    int

	OrphanItems        int
	OrphanEvents       int
	QuantitiesClipped  int
	UnitPricesClipped  int

	ImpossibleTimestamps int
	NegativeDurations    int
	DurationsCapped      int
	DelayReasonsFilled   int
	DelayReasonsCleared  int
}

func (r *Report) DuplicatesRemoved() int {
	return r.DuplicateCustomers + r.DuplicateRestaurants + r.DuplicateRiders +
		r.DuplicateOrders + r.DuplicateItems + r.DuplicateEvents
}

func (r *Report) Log() {
	log.Printf("cleaning run %s", r.RunID)
	log.Printf("  removed %d duplicate rows", r.DuplicatesRemoved())
	log.Printf("  standardized %d labels (%d unrecognized, left as-is)", r.LabelsStandardized, r.UnrecognizedLabels)
	log.Printf("  removed %d orphan items, %d orphan events", r.OrphanItems, r.OrphanEvents)
	log.Printf("  repaired %d invalid discounts, filled %d missing discounts", r.InvalidDiscounts, r.MissingDiscountsFilled)
	log.Printf("  capped %d gross outliers, %d prep times, %d durations", r.GrossOutliersCapped, r.PrepTimesCapped, r.DurationsCapped)
	log.Printf("  repaired %d impossible timestamps, nulled %d negative durations", r.ImpossibleTimestamps, r.NegativeDurations)
	log.Printf("  filled %d delay reasons, cleared %d on on-time rows", r.DelayReasonsFilled, r.DelayReasonsCleared)
	log.Printf("  filled %d missing rider zones", r.ZonesFilled)
}
