package gann

import "github.com/ericakcc/gann-btc-predictor/internal/domain/models"

// Fixed cycle tables, in calendar days. A day count appearing in more than
// one table belongs to the first table that lists it (standard, then square,
// then fibonacci), so 144 is standard and 225 is standard, never square.
var (
	standardCycles  = []int{30, 45, 60, 72, 90, 120, 144, 150, 180, 210, 225, 240, 270, 300, 315, 330, 360, 720}
	squareCycles    = []int{49, 64, 81, 100, 121, 144, 169, 196, 225, 256, 289, 324, 361, 400}
	fibonacciCycles = []int{21, 34, 55, 89, 144, 233, 377}
)

// seasonalAnchor is a fixed month/day calendar anchor generated once per year.
type seasonalAnchor struct {
	month int
	day   int
	event string
}

var seasonalAnchors = []seasonalAnchor{
	{3, 20, "spring equinox"},
	{6, 21, "summer solstice"},
	{9, 22, "autumn equinox"},
	{12, 21, "winter solstice"},
	{2, 4, "winter-spring midpoint"},
	{5, 6, "spring-summer midpoint"},
	{8, 6, "summer-autumn midpoint"},
	{11, 6, "autumn-winter midpoint"},
}

// Catalog returns the deduplicated cycle catalog in table-priority order.
func Catalog() []models.CycleSpec {
	seen := make(map[int]bool, len(standardCycles)+len(squareCycles)+len(fibonacciCycles))
	var specs []models.CycleSpec

	add := func(days []int, cat models.CycleCategory) {
		for _, d := range days {
			if seen[d] {
				continue
			}
			seen[d] = true
			specs = append(specs, models.CycleSpec{Days: d, Category: cat})
		}
	}

	add(standardCycles, models.CycleStandard)
	add(squareCycles, models.CycleSquare)
	add(fibonacciCycles, models.CycleFibonacci)
	return specs
}
