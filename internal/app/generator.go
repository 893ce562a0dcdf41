// Package app wires the deck editors to the filesystem: it streams the
// immutable base deck through an editor into a derived variant file, and
// fans batches of independent variants out over a worker pool.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"deckgen/internal/domain/deck"
)

// Result reports one variant generation.
type Result struct {
	// OutputPath is the derived variant file, whether written or skipped.
	OutputPath string

	// Skipped is true when the derived name already existed. The existing
	// file is left untouched — generation is memoized by name.
	Skipped bool

	// Lines is the number of lines written (0 when skipped).
	Lines int

	// Diagnostics are non-fatal findings from the editor.
	Diagnostics []string
}

// Generator streams a base deck through an editor once per variant.
// The base deck is read-only input; the output is created once, written
// completely and closed, never re-opened for mutation.
type Generator struct {
	// Module prefixes every derived output name.
	Module string

	// InputsDir receives generated variant decks.
	InputsDir string
}

// Generate derives the variant of basePath described by ed. When the
// derived output already exists the call reports Skipped and touches
// nothing. On a malformed deck line the partial output is removed and the
// error locates the line (file, block, 1-based number).
func (g *Generator) Generate(basePath string, ed deck.Editor) (*Result, error) {
	if err := os.MkdirAll(g.InputsDir, 0755); err != nil {
		return nil, fmt.Errorf("create inputs dir: %w", err)
	}

	outPath := filepath.Join(g.InputsDir, ed.OutputName(g.Module))
	if _, err := os.Stat(outPath); err == nil {
		return &Result{OutputPath: outPath, Skipped: true}, nil
	}

	base, err := os.Open(basePath)
	if err != nil {
		return nil, fmt.Errorf("open base deck: %w", err)
	}
	defer base.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create variant deck: %w", err)
	}

	written, diags, err := stream(base, out, ed)
	if err != nil {
		out.Close()
		os.Remove(outPath)
		// Locate the failure in the base deck, not the partial output.
		var mle *deck.MalformedLineError
		if errors.As(err, &mle) && mle.File == "" {
			mle.File = filepath.Base(basePath)
		}
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("close variant deck: %w", err)
	}

	return &Result{OutputPath: outPath, Lines: written, Diagnostics: diags}, nil
}

// stream runs one editing pass: base deck in, variant deck out.
func stream(base *os.File, out *os.File, ed deck.Editor) (int, []string, error) {
	sc := ed.NewScanner()
	w := bufio.NewWriter(out)
	written := 0

	lines := bufio.NewScanner(base)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		edited, err := ed.EditLine(sc, lineNo, lines.Text())
		if err != nil {
			return written, nil, err
		}
		for _, l := range edited {
			if _, err := w.WriteString(l + "\n"); err != nil {
				return written, nil, fmt.Errorf("write variant deck: %w", err)
			}
			written++
		}
	}
	if err := lines.Err(); err != nil {
		return written, nil, fmt.Errorf("read base deck: %w", err)
	}
	if err := w.Flush(); err != nil {
		return written, nil, fmt.Errorf("write variant deck: %w", err)
	}
	return written, ed.Diagnostics(), nil
}
