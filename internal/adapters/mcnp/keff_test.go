package mcnp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// outputFixture mimics the tail of a simulator output file around the
// criticality summary.
const outputFixture = `1problem summary

 run terminated when     115 kcode cycles were done.

 the estimated average keffs, one standard deviations, and 68, 95, and 99 percent confidence intervals are:

        keff estimator     keff   standard deviation
            collision     1.00361      0.00061
            absorption    1.00373      0.00060
       col/abs/trk len    1.00365      0.00057      1.00308 to 1.00422

 the final estimated combined collision/absorption/track-length keff = 1.00365
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "o_rc-a050-h000-r000.o")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractKeff(t *testing.T) {
	path := writeFixture(t, outputFixture)

	keff, unc, err := ExtractKeff(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.00365, keff, 1e-9)
	assert.InDelta(t, 0.00057, unc, 1e-9)
}

func TestExtractKeff_EstimateRowRequiresHeader(t *testing.T) {
	// The estimate row without the arming header is not a summary.
	path := writeFixture(t, "       col/abs/trk len    1.00365      0.00057\n")

	_, _, err := ExtractKeff(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeffNotFound)
}

func TestExtractKeff_NotFound(t *testing.T) {
	path := writeFixture(t, "run terminated by fatal error\n")

	_, _, err := ExtractKeff(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeffNotFound)
	assert.Contains(t, err.Error(), "o_rc-a050-h000-r000.o")
}

func TestExtractKeff_MissingFile(t *testing.T) {
	_, _, err := ExtractKeff(filepath.Join(t.TempDir(), "absent.o"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeffNotFound)
}

func TestOutputFileFor(t *testing.T) {
	assert.Equal(t, "o_rc-a050-h000-r000.o", OutputFileFor("inputs/rc-a050-h000-r000.i"))
	assert.Equal(t, "o_rc-temp-0350.o", OutputFileFor("/abs/path/rc-temp-0350.i"))
}

func TestReactivity(t *testing.T) {
	assert.InDelta(t, 0.363678, Reactivity(1.00365), 1e-5)
	assert.Negative(t, Reactivity(0.99))
	assert.Zero(t, Reactivity(0), "zero estimate short-circuits instead of faulting")
}

func TestRelativeChange(t *testing.T) {
	assert.InDelta(t, 0.5, RelativeChange(3, 2), 1e-12)
	assert.InDelta(t, -0.25, RelativeChange(3, 4), 1e-12)
	assert.Zero(t, RelativeChange(3, 0), "zero reference short-circuits instead of faulting")
}
