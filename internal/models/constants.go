package models

const (
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusInProgress = "In Progress"

	RiderStatusActive   = "Active"
	RiderStatusInactive = "Inactive"
	RiderStatusOnLeave  = "On Leave"

	PerformanceOnTime       = "On Time"
	PerformanceLateMinor    = "Late (<15 min)"
	PerformanceLateMajor    = "Late (>15 min)"
	PerformanceNotDelivered = "Not Delivered"

	TimeOfDayLunch   = "Lunch (12-2 PM)"
	TimeOfDayPeak    = "Peak (7-10 PM)"
	TimeOfDayOffPeak = "Off-Peak"
	TimeOfDayAll     = "All"

	UnknownZone = "Unknown"
)

// Weighted holds a categorical value and its sampling weight. Weights do not
// have to sum to 1; samplers re-normalise.
type Weighted struct {
	Value  string
	Weight float64
}

var Cities = []Weighted{
	{"Dubai", 0.50},
	{"Abu Dhabi", 0.25},
	{"Sharjah", 0.18},
	{"Ajman", 0.07},
}

var CityZones = map[string][]string{
	"Dubai": {
		"Marina", "JBR", "Downtown Dubai", "Business Bay", "DIFC",
		"JLT", "Deira", "Bur Dubai", "Al Barsha", "Jumeirah",
		"Dubai Silicon Oasis", "International City", "Palm Jumeirah",
	},
	"Abu Dhabi": {
		"Corniche", "Khalidiya", "Al Reem Island", "Yas Island",
		"Khalifa City", "Tourist Club Area",
	},
	"Sharjah": {
		"Al Nahda", "Al Qasimia", "Al Majaz", "Sharjah City Centre",
	},
	"Ajman": {
		"Al Nuaimia", "Ajman Downtown",
	},
}

var Cuisines = []Weighted{
	{"Indian", 0.30},
	{"Asian", 0.25},
	{"Western", 0.20},
	{"Emirati", 0.15},
	{"Healthy", 0.10},
}

// TierProfile couples a restaurant tier to the order-value and prep-time
// ranges its orders are sampled from.
type TierProfile struct {
	Name    string
	Weight  float64
	AOVMin  float64
	AOVMax  float64
	PrepMin int
	PrepMax int
}

var RestaurantTiers = []TierProfile{
	{"QSR", 0.40, 30, 60, 8, 15},
	{"Casual Dining", 0.35, 60, 120, 15, 25},
	{"Premium", 0.20, 120, 250, 20, 35},
	{"Fine Dining", 0.05, 250, 500, 30, 50},
}

// TierProfileByName returns the profile for a tier, falling back to
// Casual Dining for anything unrecognised.
func TierProfileByName(name string) TierProfile {
	for _, t := range RestaurantTiers {
		if t.Name == name {
			return t
		}
	}
	return RestaurantTiers[1]
}

var OrderStatuses = []Weighted{
	{OrderStatusDelivered, 0.82},
	{OrderStatusCancelled, 0.12},
	{OrderStatusInProgress, 0.06},
}

var CancellationReasons = []Weighted{
	{"Customer Cancelled", 0.35},
	{"Restaurant Busy", 0.25},
	{"Rider Unavailable", 0.20},
	{"Item Unavailable", 0.15},
	{"Payment Failed", 0.05},
}

var PaymentMethods = []Weighted{
	{"Card", 0.55},
	{"Wallet", 0.30},
	{"Cash", 0.15},
}

var DelayReasons = []Weighted{
	{"Restaurant Prep Delay", 0.35},
	{"High Traffic", 0.25},
	{"Rider Delayed at Pickup", 0.20},
	{"Wrong Address", 0.10},
	{"Weather", 0.10},
}

var CustomerTiers = []Weighted{
	{"New", 0.35},
	{"Regular", 0.35},
	{"Loyal", 0.20},
	{"VIP", 0.10},
}

var SignupSources = []Weighted{
	{"Organic", 0.30},
	{"Social Media", 0.25},
	{"Referral", 0.25},
	{"Paid Ads", 0.20},
}

var VehicleTypes = []Weighted{
	{"Bike", 0.50},
	{"Motorcycle", 0.40},
	{"Car", 0.10},
}

var RiderStatuses = []Weighted{
	{RiderStatusActive, 0.85},
	{RiderStatusInactive, 0.10},
	{RiderStatusOnLeave, 0.05},
}

// Empty string means no promo; 60% of orders carry none.
var PromoCodes = []Weighted{
	{"SAVE10", 0.08},
	{"WELCOME20", 0.05},
	{"BITES15", 0.07},
	{"FREESHIP", 0.10},
	{"VIP25", 0.03},
	{"WEEKEND10", 0.07},
	{"", 0.60},
}

// Hour-of-day order histogram with lunch (12-13) and dinner (19-21) peaks.
// The enumerated weights do not sum to exactly 1; samplers must re-normalise.
var OrderHourWeights = [24]float64{
	0.01, 0.01, 0.01, 0.01, 0.01, 0.01, // 0-5
	0.01, 0.02, 0.02, 0.02, 0.02, 0.03, // 6-11
	0.125, 0.125, 0.02, 0.02, 0.02, 0.03, // 12-17
	0.05, 0.15, 0.15, 0.15, 0.03, 0.02, // 18-23
}

// ItemCounts is the per-order line-item count distribution (mode at 2).
var ItemCounts = []struct {
	Count  int
	Weight float64
}{
	{1, 0.15},
	{2, 0.65},
	{3, 0.15},
	{4, 0.05},
}

var MenuItemsByCuisine = map[string][]string{
	"Indian":  {"Butter Chicken", "Biryani", "Naan", "Samosa", "Dal Makhani", "Paneer Tikka", "Mango Lassi", "Gulab Jamun"},
	"Asian":   {"Pad Thai", "Sushi Roll", "Dim Sum", "Ramen", "Fried Rice", "Spring Rolls", "Tom Yum Soup", "Teriyaki Chicken"},
	"Western": {"Burger", "Pizza", "Pasta", "Steak", "Fish & Chips", "Caesar Salad", "Fries", "Cheesecake"},
	"Emirati": {"Machboos", "Harees", "Luqaimat", "Balaleet", "Thareed", "Madrooba", "Karak Tea", "Umm Ali"},
	"Healthy": {"Quinoa Bowl", "Acai Bowl", "Grilled Salmon", "Green Smoothie", "Avocado Toast", "Greek Salad", "Protein Shake", "Veggie Wrap"},
}

var (
	RestaurantNamePrefixes = []string{"Al", "The", "Royal", "Golden", "Silver", "Grand", "Little", "Big", "New", "Old"}
	RestaurantNameParts    = []string{"Spice", "Flame", "Garden", "Kitchen", "House", "Palace", "Corner", "Cafe", "Bistro", "Grill"}
	RestaurantNameSuffixes = []string{"Express", "Hub", "Spot", "Place", "Junction", "Point", "Stop", "Zone", "", ""}
)

// PeakHours are the designated high-demand hours with elevated delay odds.
var PeakHours = map[int]bool{12: true, 13: true, 19: true, 20: true, 21: true}

func IsPeakHour(hour int) bool { return PeakHours[hour] }
