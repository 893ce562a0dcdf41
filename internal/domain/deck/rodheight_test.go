package deck

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRodHeightEditor_OutputName(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Safe: 50, Shim: 0, Reg: 0}, DefaultCalibration())
	assert.Equal(t, "rc-a050-h000-r000.i", ed.OutputName("rc"))

	ed = NewRodHeightEditor(RodHeights{Safe: 100, Shim: 7, Reg: 55}, DefaultCalibration())
	assert.Equal(t, "rc-a100-h007-r055.i", ed.OutputName("rc"))
}

func TestRodHeights_Validate(t *testing.T) {
	assert.NoError(t, RodHeights{Safe: 0, Shim: 100, Reg: 50}.Validate())
	assert.Error(t, RodHeights{Safe: 101}.Validate())
	assert.Error(t, RodHeights{Reg: -1}.Validate())
}

func TestRodHeightEditor_PlaneSurface(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Safe: 50}, DefaultCalibration())
	out := editAll(t, ed, []string{
		"c -------- Safe Rod (0% Withdrawn) --------",
		"810 pz 5.12064 $ bottom of safe rod",
		"c -------- End of Safe Rod --------",
	})

	require.Len(t, out, 4)
	assert.Equal(t, "c Safe Rod (50% withdrawn)", out[0])
	assert.Equal(t, "c 810 pz 5.12064 $ bottom of safe rod", out[1])
	assert.Equal(t, "810   pz   24.12064   $ bottom of safe rod", out[2])
	assert.Equal(t, "c -------- End of Safe Rod --------", out[3])
}

func TestRodHeightEditor_ConeSurface(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Shim: 50}, DefaultCalibration())
	out := editAll(t, ed, []string{
		"c Shim Rod (0% Withdrawn)",
		"820 k/z 0 0 8.2454 0.5625 -1 $ cone tip",
		"c End of Shim Rod",
	})

	require.Len(t, out, 4)
	assert.Equal(t, "c 820 k/z 0 0 8.2454 0.5625 -1 $ cone tip", out[1])
	assert.Equal(t, "820   k/z   0   0   27.2454   0.5625   -1 $ cone tip", out[2])
}

// The rewritten coordinate equals base + percent × 0.38, rounded to
// 5 decimals, across the position range.
func TestRodHeightEditor_ShiftArithmetic(t *testing.T) {
	const base = 5.12064
	for _, pct := range []int{0, 1, 13, 50, 99, 100} {
		ed := NewRodHeightEditor(RodHeights{Reg: pct}, DefaultCalibration())
		out := editAll(t, ed, []string{
			"c Reg Rod (0% Withdrawn)",
			fmt.Sprintf("830 pz %v", base),
		})

		require.Len(t, out, 3, "pct=%d", pct)
		fields := strings.Fields(out[2])
		got, err := strconv.ParseFloat(fields[2], 64)
		require.NoError(t, err)
		assert.InDelta(t, base+float64(pct)*0.38, got, 1e-9, "pct=%d", pct)
	}
}

func TestRodHeightEditor_Passthrough(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Safe: 50}, DefaultCalibration())
	out := editAll(t, ed, []string{
		"810 pz 5.12064 $ outside any block: untouched",
		"c Safe Rod (0% Withdrawn)",
		"c 811 pz 9.9 comment line inside block: untouched",
		"310 pz 5.0 $ not a rod surface id",
		"812 cz 1.913 $ no pz or k/z mnemonic",
		"c End of Safe Rod",
	})

	assert.Equal(t, []string{
		"810 pz 5.12064 $ outside any block: untouched",
		"c Safe Rod (50% withdrawn)",
		"c 811 pz 9.9 comment line inside block: untouched",
		"310 pz 5.0 $ not a rod surface id",
		"812 cz 1.913 $ no pz or k/z mnemonic",
		"c End of Safe Rod",
	}, out)
}

func TestRodHeightEditor_EachRodUsesItsOwnHeight(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Safe: 10, Shim: 20, Reg: 30}, DefaultCalibration())
	out := editAll(t, ed, []string{
		"c Safe Rod (0% Withdrawn)",
		"810 pz 1.0",
		"c End of Safe Rod",
		"c Shim Rod (0% Withdrawn)",
		"820 pz 1.0",
		"c End of Shim Rod",
		"c Reg Rod (0% Withdrawn)",
		"830 pz 1.0",
		"c End of Reg Rod",
	})

	assert.Contains(t, out, "810   pz   4.8")
	assert.Contains(t, out, "820   pz   8.6")
	assert.Contains(t, out, "830   pz   12.4")
	assert.Contains(t, out, "c Safe Rod (10% withdrawn)")
	assert.Contains(t, out, "c Shim Rod (20% withdrawn)")
	assert.Contains(t, out, "c Reg Rod (30% withdrawn)")
}

func TestRodHeightEditor_MalformedCoordinate(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Safe: 50}, DefaultCalibration())
	sc := ed.NewScanner()

	_, err := ed.EditLine(sc, 1, "c Safe Rod (0% Withdrawn)")
	require.NoError(t, err)

	_, err = ed.EditLine(sc, 2, "810 pz bottom")
	require.Error(t, err)

	var mle *MalformedLineError
	require.ErrorAs(t, err, &mle)
	assert.Equal(t, BlockSafeRod, mle.Block)
	assert.Equal(t, 2, mle.Line)
	assert.Contains(t, mle.Error(), "safe rod")
	assert.Contains(t, mle.Error(), "line 2")
}

func TestRodHeightEditor_TooFewFields(t *testing.T) {
	ed := NewRodHeightEditor(RodHeights{Safe: 50}, DefaultCalibration())
	sc := ed.NewScanner()

	_, err := ed.EditLine(sc, 1, "c Safe Rod (0% Withdrawn)")
	require.NoError(t, err)

	_, err = ed.EditLine(sc, 2, "810 pz")
	var mle *MalformedLineError
	require.ErrorAs(t, err, &mle)
	assert.Equal(t, 2, mle.Line)
}
