package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// DensityTarget sets one material's density. Density is a positive
// magnitude in g/cm³; the editor applies the deck's sign convention
// (negative = mass density) when writing the cell card.
type DensityTarget struct {
	Material int
	Density  float64
}

// DensitySpec is an ordered list of density targets. Order is significant:
// the derived output name appends one suffix per target in declared order.
type DensitySpec []DensityTarget

// DensityEditor rewrites the density field of cell cards inside the Cells
// block for targeted materials. Each rewritten card is preceded by its
// original, commented out.
type DensityEditor struct {
	spec DensitySpec
	byID map[string]float64
}

// NewDensityEditor builds an editor for one density variant.
func NewDensityEditor(spec DensitySpec) *DensityEditor {
	byID := make(map[string]float64, len(spec))
	for _, t := range spec {
		byID[strconv.Itoa(t.Material)] = t.Density
	}
	return &DensityEditor{spec: spec, byID: byID}
}

// OutputName appends one "-m<id>-<density>" suffix per target, with the
// decimal point stripped from the density, e.g. "rc-m102-095.i".
func (e *DensityEditor) OutputName(module string) string {
	var sb strings.Builder
	sb.WriteString(module)
	for _, t := range e.spec {
		density := strings.ReplaceAll(formatFloat(t.Density), ".", "")
		fmt.Fprintf(&sb, "-m%d-%s", t.Material, density)
	}
	sb.WriteString(".i")
	return sb.String()
}

// NewScanner returns a scanner over the density transition table.
func (e *DensityEditor) NewScanner() *Scanner {
	return NewScanner(DensityTransitions())
}

// Diagnostics is always empty for density passes.
func (e *DensityEditor) Diagnostics() []string { return nil }

// EditLine rewrites one deck line.
func (e *DensityEditor) EditLine(sc *Scanner, lineNo int, line string) ([]string, error) {
	state, marked := sc.Advance(line)
	if marked || state != BlockCells {
		return []string{line}, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] == commentPrefix || isComment(line) {
		return []string{line}, nil
	}
	if len(fields) < 2 {
		// A cell card carries at least (cell id, material id, density).
		return nil, &MalformedLineError{
			Block:  state,
			Line:   lineNo,
			Reason: fmt.Sprintf("cell card has %d fields, expected at least 3", len(fields)),
		}
	}

	density, ok := e.byID[fields[1]]
	if !ok {
		return []string{line}, nil
	}
	if len(fields) < 3 {
		return nil, &MalformedLineError{
			Block:  state,
			Line:   lineNo,
			Reason: fmt.Sprintf("cell card for material %s has no density field", fields[1]),
		}
	}

	// Deck sign convention: negative density is mass density in g/cm³.
	fields[2] = formatFloat(-density)
	return []string{commentOut(line), strings.Join(fields, " ")}, nil
}
