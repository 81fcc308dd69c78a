package cleaner

import "github.com/bitesuae/bitesdata/internal/models"

// Standardisation maps are built once from the canonical variant tables and
// never discover new categories at runtime.
var (
	cityMapping    = models.InvertVariants(models.CityVariants)
	cuisineMapping = models.InvertVariants(models.CuisineVariants)
	statusMapping  = models.InvertVariants(models.StatusVariants)
	tierMapping    = models.InvertVariants(models.CustomerTierVariants)

	canonicalValues = buildCanonicalSet()
)

func buildCanonicalSet() map[string]bool {
	set := make(map[string]bool)
	for canonical := range models.CityVariants {
		set[canonical] = true
	}
	for canonical := range models.CuisineVariants {
		set[canonical] = true
	}
	for canonical := range models.StatusVariants {
		set[canonical] = true
	}
	for canonical := range models.CustomerTierVariants {
		set[canonical] = true
	}
	return set
}

// standardize maps a known variant to its canonical value. Unrecognised
// values pass through unchanged and are only counted, never invented into
// new categories.
func (c *Cleaner) standardize(value string, mapping map[string]string) string {
	if canonical, ok := mapping[value]; ok {
		c.report.LabelsStandardized++
		return canonical
	}
	if !canonicalValues[value] {
		c.report.UnrecognizedLabels++
	}
	return value
}
