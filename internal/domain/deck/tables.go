package deck

// TableEntry pairs a supported temperature (Kelvin) with the physics-library
// token that selects it.
type TableEntry struct {
	Kelvin float64
	Token  string
}

// TemperatureTable is an immutable ordered mapping from the finite set of
// supported temperatures of one nuclide/thermal-law family to library tokens.
// Declaration order matters: nearest-value ties resolve to the earlier entry.
type TemperatureTable struct {
	Family  string
	Entries []TableEntry
}

// Nearest returns the entry whose temperature is closest to kelvin,
// ties going to the lower-indexed declared entry. It never fails: queries
// outside the table's range clamp to the nearest edge entry.
func (t TemperatureTable) Nearest(kelvin float64) TableEntry {
	keys := make([]float64, len(t.Entries))
	for i, e := range t.Entries {
		keys[i] = e.Kelvin
	}
	return t.Entries[NearestIndex(keys, kelvin)]
}

// HasToken reports whether token belongs to this family's value set.
func (t TemperatureTable) HasToken(token string) bool {
	for _, e := range t.Entries {
		if e.Token == token {
			return true
		}
	}
	return false
}

// NearestIndex returns the index of the key minimizing |key - query| over a
// finite ordered key set. Ties resolve to the lowest index in declared order.
// O(n), which is all these tables (≤10 entries) ever need.
func NearestIndex(keys []float64, query float64) int {
	best := 0
	for i := 1; i < len(keys); i++ {
		if abs(keys[i]-query) < abs(keys[best]-query) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Temperature-library tables, from LA-UR-13-21822. Entry order is the
// tie-break order; do not sort.
var (
	// TableU235 covers continuous-energy U-235 libraries.
	TableU235 = TemperatureTable{Family: "u235", Entries: []TableEntry{
		{294, "92235.80c"}, {600, "92235.81c"}, {900, "92235.82c"}, {1200, "92235.83c"},
		{2500, "92235.84c"}, {0.1, "92235.85c"}, {250, "92235.86c"}, {77, "92235.67c"}, {3000, "92235.68c"},
	}}

	// TableU238 covers continuous-energy U-238 libraries.
	TableU238 = TemperatureTable{Family: "u238", Entries: []TableEntry{
		{294, "92238.80c"}, {600, "92238.81c"}, {900, "92238.82c"}, {1200, "92238.83c"},
		{2500, "92238.84c"}, {0.1, "92238.85c"}, {250, "92238.86c"}, {77, "92238.67c"}, {3000, "92238.68c"},
	}}

	// TablePu239 covers continuous-energy Pu-239 libraries.
	TablePu239 = TemperatureTable{Family: "pu239", Entries: []TableEntry{
		{294, "94239.80c"}, {600, "94239.81c"}, {900, "94239.82c"}, {1200, "94239.83c"},
		{2500, "94239.84c"}, {0.1, "94239.85c"}, {250, "94239.86c"}, {77, "94239.67c"}, {3000, "94239.68c"},
	}}

	// TableZr covers natural-zirconium libraries.
	TableZr = TemperatureTable{Family: "zr", Entries: []TableEntry{
		{294, "40000.66c"}, {300, "40000.56c"}, {587, "40000.58c"},
	}}

	// TableH1 covers H-1 libraries.
	TableH1 = TemperatureTable{Family: "h1", Entries: []TableEntry{
		{294, "1001.80c"}, {600, "1001.81c"}, {900, "1001.82c"}, {1200, "1001.83c"},
		{2500, "1001.84c"}, {0.1, "1001.85c"}, {250, "1001.86c"},
	}}

	// TableHZr covers hydrogen-in-zirconium-hydride thermal scattering laws.
	TableHZr = TemperatureTable{Family: "h/zr", Entries: []TableEntry{
		{294, "h/zr.20t"}, {400, "h/zr.21t"}, {500, "h/zr.22t"}, {600, "h/zr.23t"},
		{700, "h/zr.24t"}, {800, "h/zr.25t"}, {1000, "h/zr.26t"}, {1200, "h/zr.27t"},
	}}

	// TableZrH covers zirconium-in-zirconium-hydride thermal scattering laws.
	TableZrH = TemperatureTable{Family: "zr/h", Entries: []TableEntry{
		{294, "zr/h.30t"}, {400, "zr/h.31t"}, {500, "zr/h.32t"}, {600, "zr/h.33t"},
		{700, "zr/h.34t"}, {800, "zr/h.35t"}, {1000, "zr/h.36t"}, {1200, "zr/h.37t"},
	}}

	// TableWater covers light-water thermal scattering laws.
	TableWater = TemperatureTable{Family: "lwtr", Entries: []TableEntry{
		{294, "lwtr.20t"}, {350, "lwtr.21t"}, {400, "lwtr.22t"}, {450, "lwtr.23t"},
		{500, "lwtr.24t"}, {550, "lwtr.25t"}, {600, "lwtr.26t"}, {650, "lwtr.27t"}, {800, "lwtr.28t"},
	}}
)

// nuclideTables is the fixed priority order for value-set matching inside
// material cards. The first family a token belongs to wins the rewrite for
// the whole line.
var nuclideTables = []TemperatureTable{TableU235, TableU238, TablePu239, TableZr, TableH1}

// thermalTables maps the token prefix of a thermal scattering law on an
// "mt" card to its table.
var thermalTables = []TemperatureTable{TableHZr, TableZrH, TableWater}
