// Package mcnp talks to the external criticality simulator: it invokes
// the executable on generated variant decks and extracts the criticality
// estimate from its output text. The deck-editing core never imports this
// package; the CLI wires the two together.
package mcnp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Runner implements ports.Runner by shelling out to the simulator.
type Runner struct {
	// Executable is the simulator binary, e.g. "mcnp6".
	Executable string
}

// NewRunner builds a runner for the given executable.
func NewRunner(executable string) *Runner {
	return &Runner{Executable: executable}
}

// OutputFileFor derives the simulator output file name for an input deck:
// "inputs/rc-a050-h000-r000.i" → "o_rc-a050-h000-r000.o".
func OutputFileFor(inputPath string) string {
	return "o_" + deckStem(inputPath) + ".o"
}

// Run invokes the simulator on inputPath, writing its output files under
// outputsDir, distributed over tasks worker processes. When the output
// file already exists the run is skipped — identical input produces
// identical output, so a rerun has no expected effect.
func (r *Runner) Run(ctx context.Context, inputPath, outputsDir string, tasks int) (bool, error) {
	if err := os.MkdirAll(outputsDir, 0755); err != nil {
		return false, fmt.Errorf("create outputs dir: %w", err)
	}
	if _, err := os.Stat(filepath.Join(outputsDir, OutputFileFor(inputPath))); err == nil {
		return true, nil
	}

	stem := filepath.Join(outputsDir, "o_"+deckStem(inputPath))
	cmd := exec.CommandContext(ctx, r.Executable,
		"i="+inputPath,
		"n="+stem+".",
		"tasks", strconv.Itoa(tasks),
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return false, fmt.Errorf("%s on %s: %w\n%s", r.Executable, filepath.Base(inputPath), err, out)
	}
	return false, nil
}

// deckStem strips the directory and extension from an input deck path.
func deckStem(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
