package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestIndex_Basic(t *testing.T) {
	keys := []float64{294, 600, 900}
	assert.Equal(t, 1, NearestIndex(keys, 650), "650 is closest to 600")
	assert.Equal(t, 0, NearestIndex(keys, 100))
	assert.Equal(t, 2, NearestIndex(keys, 899))
}

func TestNearestIndex_TieResolvesToLowerDeclaredIndex(t *testing.T) {
	// 750 is equidistant between 600 and 900: the earlier declared key wins.
	keys := []float64{294, 600, 900}
	assert.Equal(t, 1, NearestIndex(keys, 750))
}

func TestNearestIndex_OutOfRangeExtrapolates(t *testing.T) {
	keys := []float64{294, 600, 900}
	assert.Equal(t, 0, NearestIndex(keys, -40), "below range clamps to nearest key")
	assert.Equal(t, 2, NearestIndex(keys, 1e6), "above range clamps to nearest key")
}

func TestTable_NearestRoundTrip(t *testing.T) {
	// Resolving a supported temperature returns that entry unchanged.
	for _, tbl := range nuclideTables {
		for _, e := range tbl.Entries {
			got := tbl.Nearest(e.Kelvin)
			assert.Equal(t, e, got, "%s at %v K", tbl.Family, e.Kelvin)
		}
	}
}

func TestTable_Nearest(t *testing.T) {
	assert.Equal(t, "92235.81c", TableU235.Nearest(650).Token)
	assert.Equal(t, "1001.80c", TableH1.Nearest(350).Token)
	assert.Equal(t, "lwtr.21t", TableWater.Nearest(350).Token)
	// Ties go to the earlier declared entry: h/zr has 600 before 700.
	assert.Equal(t, "h/zr.23t", TableHZr.Nearest(650).Token)
}

func TestTable_HasToken(t *testing.T) {
	assert.True(t, TableU235.HasToken("92235.80c"))
	assert.False(t, TableU235.HasToken("92238.80c"))
	assert.False(t, TableZr.HasToken(""))
}
