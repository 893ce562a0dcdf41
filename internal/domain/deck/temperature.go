package deck

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// inlineComment starts a trailing annotation on a deck card.
const inlineComment = "$"

// importanceMarker anchors the temperature attribute on core water cells.
const importanceMarker = "imp:n=1"

// TemperatureTarget sets one material's temperature in Kelvin.
type TemperatureTarget struct {
	Material int
	Kelvin   float64
}

// TemperatureSpec is an ordered list of temperature targets. The first
// declared target names the variant.
type TemperatureSpec []TemperatureTarget

// TemperatureEditor rewrites temperature-dependent physics-library tokens.
// Three regions get distinct treatment:
//
//   - Cells: targeted cell cards gain a tmp= attribute (Kelvin converted
//     via MevPerKelvin), inserted before any trailing $ annotation.
//   - CoreWaterCells: cards carrying the importance marker gain the same
//     attribute directly after it, at the water material's temperature.
//   - Materials: targeted material cards have their library tokens
//     swapped for the nearest supported temperature of their family.
//
// Substitution always lands on a table entry; temperatures between or
// beyond library points resolve to the nearest one, never interpolated.
type TemperatureEditor struct {
	spec TemperatureSpec
	byID map[int]float64
	cal  Calibration

	// Per-pass state: current material card id (material cards span
	// continuation lines) and accumulated diagnostics.
	matID int
	diags []string
}

// NewTemperatureEditor builds an editor for one temperature variant.
func NewTemperatureEditor(spec TemperatureSpec, cal Calibration) *TemperatureEditor {
	byID := make(map[int]float64, len(spec))
	for _, t := range spec {
		byID[t.Material] = t.Kelvin
	}
	return &TemperatureEditor{spec: spec, byID: byID, cal: cal}
}

// OutputName encodes the first declared target temperature zero-padded to
// 4 digits, e.g. "rc-temp-0350.i".
func (e *TemperatureEditor) OutputName(module string) string {
	kelvin := 0
	if len(e.spec) > 0 {
		kelvin = int(e.spec[0].Kelvin)
	}
	return fmt.Sprintf("%s-temp-%04d.i", module, kelvin)
}

// NewScanner returns a scanner over the cell transition table and resets
// per-pass state.
func (e *TemperatureEditor) NewScanner() *Scanner {
	e.matID = 0
	e.diags = nil
	return NewScanner(CellTransitions())
}

// Diagnostics reports materials whose cards mixed tokens from more than
// one temperature family; only the first family is rewritten.
func (e *TemperatureEditor) Diagnostics() []string { return e.diags }

// EditLine rewrites one deck line.
func (e *TemperatureEditor) EditLine(sc *Scanner, lineNo int, line string) ([]string, error) {
	state, marked := sc.Advance(line)
	if marked {
		return []string{line}, nil
	}

	switch state {
	case BlockCells:
		return e.editCell(state, lineNo, line)
	case BlockCoreWaterCells:
		return e.editWaterCell(line)
	case BlockMaterials:
		return e.editMaterial(line)
	default:
		return []string{line}, nil
	}
}

// editCell appends a tmp= attribute to targeted cell cards, inserting it
// before an inline $ annotation when one is present.
func (e *TemperatureEditor) editCell(state Block, lineNo int, line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || isComment(line) {
		return []string{line}, nil
	}
	if len(fields) < 2 {
		return nil, &MalformedLineError{
			Block:  state,
			Line:   lineNo,
			Reason: fmt.Sprintf("cell card has %d fields, expected at least 3", len(fields)),
		}
	}

	matID, err := strconv.Atoi(fields[1])
	if err != nil {
		// Continuation or fill card; not a cell record.
		return []string{line}, nil
	}
	kelvin, ok := e.byID[matID]
	if !ok {
		return []string{line}, nil
	}

	attr := e.tempAttr(kelvin)
	for i, f := range fields {
		if f == inlineComment {
			fields = append(fields[:i], append([]string{attr}, fields[i:]...)...)
			return []string{commentOut(line), strings.Join(fields, " ")}, nil
		}
	}
	fields = append(fields, attr)
	return []string{commentOut(line), strings.Join(fields, " ")}, nil
}

// editWaterCell inserts the water temperature attribute directly after the
// importance marker. Cards without the marker, and passes whose spec does
// not cover the water material, pass through untouched.
func (e *TemperatureEditor) editWaterCell(line string) ([]string, error) {
	if isComment(line) || !strings.Contains(line, importanceMarker) {
		return []string{line}, nil
	}
	kelvin, ok := e.byID[e.cal.WaterMaterial]
	if !ok {
		return []string{line}, nil
	}
	edited := strings.Replace(line, importanceMarker, importanceMarker+" "+e.tempAttr(kelvin), 1)
	return []string{commentOut(line), edited}, nil
}

// editMaterial tracks the current material card across continuation lines
// and, for targeted materials, swaps library tokens for the nearest
// supported temperature of their family.
func (e *TemperatureEditor) editMaterial(line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] == commentPrefix || isComment(line) {
		return []string{line}, nil
	}

	// A new material (m…) or thermal (mt…) card updates the tracked id;
	// continuation lines inherit it.
	if strings.HasPrefix(fields[0], "m") {
		if id, ok := digitsOf(fields[0]); ok {
			e.matID = id
		}
	}

	kelvin, ok := e.byID[e.matID]
	if !ok {
		return []string{line}, nil
	}

	edited, rewritten := e.rewriteMaterialLine(line, fields, kelvin)
	if !rewritten {
		return []string{line}, nil
	}
	return []string{commentOut(line), edited}, nil
}

// rewriteMaterialLine applies the family substitution rules to one line of
// a targeted material card. Only tokens before an inline $ annotation are
// considered.
//
// Nuclide tokens are value-matched against the family tables in fixed
// priority order; the first token that belongs to any family decides the
// rewrite, and every token of that family on the line is replaced. Tokens
// of other families are left as-is — a known single-family-per-line
// limitation, surfaced as a diagnostic rather than silently dropped.
func (e *TemperatureEditor) rewriteMaterialLine(line string, fields []string, kelvin float64) (string, bool) {
	body := line
	var annotation string
	if i := strings.Index(line, inlineComment); i >= 0 {
		body, annotation = line[:i], line[i:]
	}
	tokens := strings.Fields(body)

	for _, tok := range tokens {
		family, ok := matchNuclideFamily(tok)
		if !ok {
			continue
		}
		replacement := family.Nearest(kelvin).Token
		edited := body
		for _, t := range tokens {
			if family.HasToken(t) {
				edited = strings.ReplaceAll(edited, t, replacement)
			}
		}
		e.noteExtraFamilies(family, tokens)
		return strings.TrimRight(edited+annotation, " \t"), true
	}

	// Thermal scattering cards substitute by token prefix.
	if strings.HasPrefix(fields[0], "mt") {
		edited := make([]string, len(tokens))
		changed := false
		for i, tok := range tokens {
			edited[i] = tok
			for _, tbl := range thermalTables {
				if strings.HasPrefix(tok, tbl.Family) {
					edited[i] = tbl.Nearest(kelvin).Token
					changed = true
					break
				}
			}
		}
		if !changed {
			return "", false
		}
		out := strings.Join(edited, " ")
		if annotation != "" {
			out += " " + strings.TrimRight(annotation, " \t")
		}
		return out, true
	}

	return "", false
}

// noteExtraFamilies records a diagnostic when a line carries tokens from
// more than one nuclide family; only matched's tokens were rewritten.
func (e *TemperatureEditor) noteExtraFamilies(matched TemperatureTable, tokens []string) {
	for _, tok := range tokens {
		family, ok := matchNuclideFamily(tok)
		if ok && family.Family != matched.Family {
			e.diags = append(e.diags, fmt.Sprintf(
				"material %d: tokens from families %s and %s on one line; only %s rewritten",
				e.matID, matched.Family, family.Family, matched.Family))
			return
		}
	}
}

// tempAttr renders the cell temperature attribute for kelvin.
func (e *TemperatureEditor) tempAttr(kelvin float64) string {
	return "tmp=" + formatAttr(kelvin*e.cal.MevPerKelvin)
}

// matchNuclideFamily returns the first family table, in priority order,
// whose value set contains token.
func matchNuclideFamily(token string) (TemperatureTable, bool) {
	for _, tbl := range nuclideTables {
		if tbl.HasToken(token) {
			return tbl, true
		}
	}
	return TemperatureTable{}, false
}

// digitsOf extracts the integer formed by the digit characters of a token,
// e.g. "mt102" → 102.
func digitsOf(token string) (int, bool) {
	var sb strings.Builder
	for _, r := range token {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(sb.String())
	if err != nil {
		return 0, false
	}
	return id, true
}
