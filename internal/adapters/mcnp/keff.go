package mcnp

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The two fixed marker lines anchoring the criticality summary in
// simulator output text. The estimate row follows the header at some
// later line; its third and fourth columns are the combined estimate and
// its uncertainty.
const (
	keffHeaderMarker   = " the estimated average keffs"
	keffEstimateMarker = "       col/abs/trk len"
)

// ErrKeffNotFound reports output text with no criticality summary
// (typically a run that died before the final tally).
var ErrKeffNotFound = errors.New("criticality summary not found")

// ExtractKeff scans a simulator output file for the criticality estimate
// and its uncertainty.
func ExtractKeff(path string) (keff, keffUnc float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open simulator output: %w", err)
	}
	defer f.Close()

	armed := false
	lines := bufio.NewScanner(f)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lines.Scan() {
		line := lines.Text()
		switch {
		case strings.HasPrefix(line, keffHeaderMarker):
			armed = true
		case armed && strings.HasPrefix(line, keffEstimateMarker):
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return 0, 0, fmt.Errorf("%s: estimate row has %d fields, expected 4", path, len(fields))
			}
			keff, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return 0, 0, fmt.Errorf("%s: parse estimate %q: %w", path, fields[2], err)
			}
			keffUnc, err = strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return 0, 0, fmt.Errorf("%s: parse uncertainty %q: %w", path, fields[3], err)
			}
			return keff, keffUnc, nil
		}
	}
	if err := lines.Err(); err != nil {
		return 0, 0, fmt.Errorf("read simulator output: %w", err)
	}
	return 0, 0, fmt.Errorf("%s: %w", path, ErrKeffNotFound)
}

// Reactivity converts a criticality estimate to reactivity in percent,
// (keff − 1)/keff × 100. A zero estimate short-circuits to zero rather
// than faulting.
func Reactivity(keff float64) float64 {
	if keff == 0 {
		return 0
	}
	return (keff - 1) / keff * 100
}

// RelativeChange returns (value − reference)/reference. Comparing a value
// against a zero (self-) reference short-circuits to zero.
func RelativeChange(value, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return (value - reference) / reference
}
