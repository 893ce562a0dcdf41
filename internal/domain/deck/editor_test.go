package deck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// editAll runs one full pass over lines, failing the test on any error.
func editAll(t *testing.T, ed Editor, lines []string) []string {
	t.Helper()
	sc := ed.NewScanner()
	var out []string
	for i, line := range lines {
		edited, err := ed.EditLine(sc, i+1, line)
		require.NoError(t, err, "line %d: %q", i+1, line)
		out = append(out, edited...)
	}
	return out
}
