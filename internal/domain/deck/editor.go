package deck

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// commentPrefix marks a deck comment line. Editors never rewrite comments,
// and every rewritten line is preceded by its original behind this prefix.
const commentPrefix = "c"

// Editor rewrites a deck one line at a time. Implementations are driven by
// a fresh Scanner per pass; EditLine either passes a line through (returning
// it as the sole element) or returns the replacement lines that take its
// place in the output deck.
type Editor interface {
	// OutputName derives the variant deck file name for the given module
	// prefix. The name encodes the full spec, which is what makes variant
	// generation memoizable.
	OutputName(module string) string

	// NewScanner returns a scanner for one pass over the base deck and
	// resets any per-pass editor state (tracked material id, diagnostics).
	NewScanner() *Scanner

	// EditLine consumes one line (newline already stripped, lineNo 1-based)
	// and returns the lines to emit in its place.
	EditLine(sc *Scanner, lineNo int, line string) ([]string, error)

	// Diagnostics reports non-fatal findings from the most recent pass.
	Diagnostics() []string
}

// Calibration holds the facility-specific constants the editors are
// parameterized on, so a different facility's deck conventions need new
// configuration, not new code.
type Calibration struct {
	// CmPerPercent is rod travel in cm per percent withdrawn.
	CmPerPercent float64
	// MevPerKelvin converts a temperature in Kelvin to the deck's
	// cell-temperature attribute unit.
	MevPerKelvin float64
	// RodSurfacePrefix is the leading-token prefix reserved for rod
	// geometry surface ids.
	RodSurfacePrefix string
	// WaterMaterial is the material id of the core water moderator.
	WaterMaterial int
}

// DefaultCalibration returns the constants for the reference facility deck.
func DefaultCalibration() Calibration {
	return Calibration{
		CmPerPercent:     0.38,
		MevPerKelvin:     8.617e-11,
		RodSurfacePrefix: "8",
		WaterMaterial:    102,
	}
}

// MalformedLineError reports a line inside a tracked block that violates
// the field-count/format assumptions of the active editor. It carries
// enough context to locate the offending deck line. File is filled in by
// the caller that knows which deck is being streamed.
type MalformedLineError struct {
	File   string
	Block  Block
	Line   int // 1-based
	Reason string
}

func (e *MalformedLineError) Error() string {
	file := e.File
	if file == "" {
		file = "deck"
	}
	return fmt.Sprintf("%s: malformed line %d in %s block: %s", file, e.Line, e.Block, e.Reason)
}

// isComment reports whether a line is a deck comment.
func isComment(line string) bool {
	return strings.HasPrefix(line, commentPrefix)
}

// commentOut returns the untouched original behind the comment prefix,
// preserving provenance of every rewritten line.
func commentOut(line string) string {
	return commentPrefix + " " + line
}

// round5 rounds to 5 decimal places, the precision rod geometry
// coordinates are written at.
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// formatFloat renders a float the way the deck format expects: shortest
// decimal form, no trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatAttr renders the tmp= attribute value (shortest form, scientific
// notation where shorter, matching the deck's existing attribute style).
func formatAttr(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
