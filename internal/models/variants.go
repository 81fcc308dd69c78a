package models

// Surface-form variants injected into categorical columns, keyed by the
// canonical value. The cleaning stage inverts these into standardisation
// maps; anything outside them is left untouched rather than guessed at.

var CityVariants = map[string][]string{
	"Dubai":     {"DUBAI", "dubai", "DXB"},
	"Abu Dhabi": {"ABU DHABI", "abu dhabi", "AUH"},
	"Sharjah":   {"SHARJAH", "sharjah", "SHJ"},
	"Ajman":     {"AJMAN", "ajman", "AJM"},
}

var CuisineVariants = map[string][]string{
	"Indian":  {"indian", "INDIAN", "South Indian"},
	"Asian":   {"asian", "ASIAN", "Pan-Asian"},
	"Western": {"western", "WESTERN", "Continental"},
	"Emirati": {"emirati", "EMIRATI", "Khaleeji"},
	"Healthy": {"healthy", "HEALTHY", "Health Food"},
}

var StatusVariants = map[string][]string{
	OrderStatusDelivered:  {"delivered", "DELIVERED", "Complete"},
	OrderStatusCancelled:  {"cancelled", "CANCELLED", "Canceled"},
	OrderStatusInProgress: {"in progress", "IN PROGRESS", "Processing"},
}

var CustomerTierVariants = map[string][]string{
	"New":     {"new", "NEW"},
	"Regular": {"regular", "REGULAR"},
	"Loyal":   {"loyal", "LOYAL"},
	"VIP":     {"vip", "Vip"},
}

// InvertVariants flips canonical->variants into variant->canonical, the shape
// the cleaner consumes.
func InvertVariants(variants map[string][]string) map[string]string {
	inverse := make(map[string]string)
	for canonical, forms := range variants {
		for _, form := range forms {
			inverse[form] = canonical
		}
	}
	return inverse
}
