package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Geometry mnemonics recognized on rod surface cards. The numeric
// coordinate sits at a fixed field index per mnemonic, and reassembly
// keeps a fixed number of leading positional fields.
const (
	planeMnemonic = "pz"
	coneMnemonic  = "k/z"

	planeCoordIndex = 2
	coneCoordIndex  = 4

	planeLeadFields = 4
	coneLeadFields  = 7
)

// RodHeights is the percent-withdrawn position of the three control rods,
// each in [0, 100].
type RodHeights struct {
	Safe int
	Shim int
	Reg  int
}

// Validate rejects positions outside [0, 100].
func (h RodHeights) Validate() error {
	for _, r := range []struct {
		name string
		pct  int
	}{{"safe", h.Safe}, {"shim", h.Shim}, {"reg", h.Reg}} {
		if r.pct < 0 || r.pct > 100 {
			return fmt.Errorf("%s rod height %d%% outside [0, 100]", r.name, r.pct)
		}
	}
	return nil
}

// RodHeightEditor rewrites rod-geometry surface coordinates inside the
// three rod blocks. Planar ("pz") and conic ("k/z") surfaces whose leading
// token carries the reserved rod surface prefix are shifted by
// percent × CmPerPercent; everything else passes through untouched.
type RodHeightEditor struct {
	heights RodHeights
	cal     Calibration
}

// NewRodHeightEditor builds an editor for one rod-position variant.
func NewRodHeightEditor(heights RodHeights, cal Calibration) *RodHeightEditor {
	return &RodHeightEditor{heights: heights, cal: cal}
}

// OutputName encodes all three positions zero-padded to 3 digits,
// e.g. "rc-a050-h000-r000.i".
func (e *RodHeightEditor) OutputName(module string) string {
	return fmt.Sprintf("%s-a%03d-h%03d-r%03d.i", module, e.heights.Safe, e.heights.Shim, e.heights.Reg)
}

// NewScanner returns a scanner over the rod transition table.
func (e *RodHeightEditor) NewScanner() *Scanner {
	return NewScanner(RodTransitions())
}

// Diagnostics is always empty for rod passes.
func (e *RodHeightEditor) Diagnostics() []string { return nil }

// EditLine rewrites one deck line.
func (e *RodHeightEditor) EditLine(sc *Scanner, lineNo int, line string) ([]string, error) {
	state, marked := sc.Advance(line)
	if marked {
		if state == BlockNone {
			// End marker: pass through.
			return []string{line}, nil
		}
		// Start marker: restate the block header with the requested position.
		header := fmt.Sprintf("c %s Rod (%d%% withdrawn)", rodLabel(state), e.heightFor(state))
		return []string{header}, nil
	}
	if state == BlockNone || isComment(line) {
		return []string{line}, nil
	}
	if !strings.HasPrefix(line, e.cal.RodSurfacePrefix) {
		return []string{line}, nil
	}

	var coordIndex, leadFields int
	switch {
	case strings.Contains(line, planeMnemonic):
		coordIndex, leadFields = planeCoordIndex, planeLeadFields
	case strings.Contains(line, coneMnemonic):
		coordIndex, leadFields = coneCoordIndex, coneLeadFields
	default:
		return []string{line}, nil
	}

	edited, err := e.shift(line, coordIndex, leadFields, e.heightFor(state))
	if err != nil {
		var mle *MalformedLineError
		if errors.As(err, &mle) {
			mle.Block = state
			mle.Line = lineNo
		}
		return nil, err
	}
	return []string{commentOut(line), edited}, nil
}

// shift replaces the coordinate field with base + percent × CmPerPercent,
// rounded to 5 decimals, and reassembles the line: leading positional
// fields joined by 3 spaces, trailing fields by single spaces.
func (e *RodHeightEditor) shift(line string, coordIndex, leadFields, percent int) (string, error) {
	fields := strings.Fields(line)
	if len(fields) <= coordIndex {
		return "", &MalformedLineError{
			Reason: fmt.Sprintf("rod surface card has %d fields, coordinate expected at field %d", len(fields), coordIndex),
		}
	}
	base, err := strconv.ParseFloat(fields[coordIndex], 64)
	if err != nil {
		return "", &MalformedLineError{
			Reason: fmt.Sprintf("rod surface coordinate %q is not numeric", fields[coordIndex]),
		}
	}

	fields[coordIndex] = formatFloat(round5(base + float64(percent)*e.cal.CmPerPercent))

	if leadFields > len(fields) {
		leadFields = len(fields)
	}
	out := strings.Join(fields[:leadFields], "   ")
	if len(fields) > leadFields {
		out += " " + strings.Join(fields[leadFields:], " ")
	}
	return out, nil
}

// heightFor maps a rod block to its requested position.
func (e *RodHeightEditor) heightFor(b Block) int {
	switch b {
	case BlockSafeRod:
		return e.heights.Safe
	case BlockShimRod:
		return e.heights.Shim
	case BlockRegRod:
		return e.heights.Reg
	}
	return 0
}

func rodLabel(b Block) string {
	switch b {
	case BlockSafeRod:
		return "Safe"
	case BlockShimRod:
		return "Shim"
	case BlockRegRod:
		return "Reg"
	}
	return ""
}
