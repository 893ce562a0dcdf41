// Package deck contains the pure deck-editing logic: the block scanner,
// the three line editors (rod height, cell density, cell/material temperature),
// and the temperature-library tables with their nearest-value resolver.
// Nothing in this package touches the filesystem — editors consume one line
// at a time and return replacement lines, so the whole package is testable
// from in-memory decks.
package deck

import "strings"

// Block identifies the named deck region the scanner is currently inside.
// Rod-editing passes use the three rod blocks; cell/temperature passes use
// Cells, CoreWaterCells, Surfaces and Materials. BlockNone means the cursor
// is outside every tracked region.
type Block int

const (
	BlockNone Block = iota
	BlockSafeRod
	BlockShimRod
	BlockRegRod
	BlockCells
	BlockCoreWaterCells
	BlockSurfaces
	BlockMaterials
)

// BlockAny is a wildcard origin state for transitions that fire regardless
// of the current block (the cell-section markers behave this way).
const BlockAny Block = -1

func (b Block) String() string {
	switch b {
	case BlockNone:
		return "none"
	case BlockSafeRod:
		return "safe rod"
	case BlockShimRod:
		return "shim rod"
	case BlockRegRod:
		return "reg rod"
	case BlockCells:
		return "cells"
	case BlockCoreWaterCells:
		return "core water cells"
	case BlockSurfaces:
		return "surfaces"
	case BlockMaterials:
		return "materials"
	case BlockAny:
		return "any"
	}
	return "unknown"
}

// Transition fires when Marker occurs as an exact, case-sensitive substring
// of a line while the scanner is in From (or unconditionally for BlockAny).
type Transition struct {
	From   Block
	Marker string
	To     Block
}

// Scanner tracks which named block of a deck the line cursor is inside.
// It is a single tagged state machine driven by an explicit transition
// table, so overlapping "inside block X and block Y" states cannot be
// represented at all.
//
// An unterminated block is not an error: if an end marker never appears,
// the scanner simply stays in that state through end of file.
type Scanner struct {
	transitions []Transition
	state       Block
}

// NewScanner returns a scanner in BlockNone driven by the given table.
// Transitions are tried in declared order; the first match wins.
func NewScanner(table []Transition) *Scanner {
	return &Scanner{transitions: table}
}

// Advance consumes one line and returns the state after it, plus whether
// the line itself was a marker line (i.e. a transition fired). Marker lines
// belong to neither the region they open nor the one they close; editors
// use the flag to pass them through (or restate them) rather than edit them.
func (s *Scanner) Advance(line string) (Block, bool) {
	for _, t := range s.transitions {
		if t.From != BlockAny && t.From != s.state {
			continue
		}
		if !strings.Contains(line, t.Marker) {
			continue
		}
		s.state = t.To
		return s.state, true
	}
	return s.state, false
}

// State returns the current block without consuming a line.
func (s *Scanner) State() Block {
	return s.state
}

// RodTransitions is the transition table for rod-geometry passes. Start
// markers only fire from outside a block, end markers only from inside
// their own block, mirroring the source deck's layout where rod blocks
// never nest.
func RodTransitions() []Transition {
	return []Transition{
		{From: BlockNone, Marker: "Safe Rod (", To: BlockSafeRod},
		{From: BlockSafeRod, Marker: "End of Safe Rod", To: BlockNone},
		{From: BlockNone, Marker: "Shim Rod (", To: BlockShimRod},
		{From: BlockShimRod, Marker: "End of Shim Rod", To: BlockNone},
		{From: BlockNone, Marker: "Reg Rod (", To: BlockRegRod},
		{From: BlockRegRod, Marker: "End of Reg Rod", To: BlockNone},
	}
}

// CellTransitions is the transition table for cell/temperature passes.
// Section markers fire from any state. "End Core Water Cells" re-enters
// Cells rather than None: the core water cells sit inside the wider cell
// section of the deck.
func CellTransitions() []Transition {
	return []Transition{
		{From: BlockAny, Marker: "Begin Cells", To: BlockCells},
		{From: BlockAny, Marker: "Begin Core Water Cells", To: BlockCoreWaterCells},
		{From: BlockAny, Marker: "End Core Water Cells", To: BlockCells},
		{From: BlockAny, Marker: "Begin Surfaces", To: BlockSurfaces},
		{From: BlockAny, Marker: "Begin Materials", To: BlockMaterials},
		{From: BlockAny, Marker: "End Materials", To: BlockNone},
	}
}

// DensityTransitions tracks only the Cells region, bounded below by the
// start of the surface section.
func DensityTransitions() []Transition {
	return []Transition{
		{From: BlockAny, Marker: "Begin Cells", To: BlockCells},
		{From: BlockAny, Marker: "Begin Surfaces", To: BlockNone},
	}
}
