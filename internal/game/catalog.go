package game

// FruitKind describes a special fruit variant. The catalog is static and
// read-only at runtime.
type FruitKind struct {
	Name        string  `json:"name"`
	PointValue  int     `json:"pointValue"`
	SpawnWeight float64 `json:"spawnWeight"` // Relative rarity within the catalog
	RenderSize  float64 `json:"renderSize"`
	Color       string  `json:"color"`
}

// RegularPointValue is the score awarded for slicing a regular fruit.
const RegularPointValue = 10

// SpecialHitRadius is the slice detection radius for special fruits.
// Larger than the regular radius because specials render bigger.
const SpecialHitRadius = 40.0

// SpecialFruits is the ordered catalog of special fruit kinds. Order
// matters: weighted selection walks the catalog front to back, and the
// first entry doubles as the rounding-residue fallback.
var SpecialFruits = []FruitKind{
	{
		Name:        "star",
		PointValue:  25,
		SpawnWeight: 6,
		RenderSize:  65,
		Color:       "#4dd0e1",
	},
	{
		Name:        "golden",
		PointValue:  50,
		SpawnWeight: 3,
		RenderSize:  70,
		Color:       "#ffc107",
	},
	{
		Name:        "dragonfruit",
		PointValue:  100,
		SpawnWeight: 1,
		RenderSize:  75,
		Color:       "#e91e63",
	},
}

// GetFruitKind returns a catalog entry by name, defaulting to the first
// entry for unknown names.
func GetFruitKind(name string) FruitKind {
	for _, k := range SpecialFruits {
		if k.Name == name {
			return k
		}
	}
	return SpecialFruits[0]
}

// totalSpawnWeight sums the catalog weights once for weighted selection.
func totalSpawnWeight() float64 {
	total := 0.0
	for _, k := range SpecialFruits {
		total += k.SpawnWeight
	}
	return total
}

// pickSpecial selects a catalog entry by cumulative-subtraction weighted
// selection: u is uniform in [0, totalWeight); each entry's weight is
// subtracted until the remainder drops to zero or below. Floating-point
// rounding can leave a residual past the final subtraction, so the last
// entry absorbs ties and residue; selection never fails on a non-empty
// catalog.
func pickSpecial(u float64) FruitKind {
	for i, k := range SpecialFruits {
		u -= k.SpawnWeight
		if u <= 0 || i == len(SpecialFruits)-1 {
			return k
		}
	}
	// Not reachable with a non-empty catalog; satisfies the compiler.
	return SpecialFruits[0]
}

// scoreTier maps an awarded point value to a display color.
type scoreTier struct {
	Min   int
	Color string
}

// scoreTiers is sorted by descending point-value breakpoint; the first
// breakpoint at or below the awarded value wins.
var scoreTiers = []scoreTier{
	{Min: 100, Color: "#e91e63"},
	{Min: 50, Color: "#ffc107"},
	{Min: 25, Color: "#4dd0e1"},
}

// scoreColorDefault is used for values below the lowest breakpoint.
const scoreColorDefault = "#ffffff"

// ScoreColor returns the floating-text color tier for an awarded value.
func ScoreColor(value int) string {
	for _, tier := range scoreTiers {
		if value >= tier.Min {
			return tier.Color
		}
	}
	return scoreColorDefault
}
