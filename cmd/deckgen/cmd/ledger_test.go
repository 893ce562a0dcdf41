package cmd

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckgen/internal/app"
	"deckgen/internal/ports"
)

// memLedger is an in-memory ports.Ledger for testing the recording glue
// without a database on disk.
type memLedger struct {
	recs map[string]ports.VariantRecord
}

var _ ports.Ledger = (*memLedger)(nil)

func newMemLedger() *memLedger {
	return &memLedger{recs: make(map[string]ports.VariantRecord)}
}

func (m *memLedger) RecordVariant(rec ports.VariantRecord) error {
	if rec.Name == "" {
		return fmt.Errorf("variant record has no name")
	}
	m.recs[rec.Name] = rec
	return nil
}

func (m *memLedger) AttachResult(name string, keff, keffUnc float64) error {
	rec, ok := m.recs[name]
	if !ok {
		return fmt.Errorf("no variant record for %s", name)
	}
	rec.HasResult = true
	rec.Keff = keff
	rec.KeffUnc = keffUnc
	m.recs[name] = rec
	return nil
}

func (m *memLedger) Variant(name string) (*ports.VariantRecord, error) {
	rec, ok := m.recs[name]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memLedger) Variants() ([]ports.VariantRecord, error) {
	out := make([]ports.VariantRecord, 0, len(m.recs))
	for _, rec := range m.recs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memLedger) Close() error { return nil }

func TestRecordVariant_FirstGenerationOwnsTheEntry(t *testing.T) {
	ledger := newMemLedger()

	written := &app.Result{OutputPath: "inputs/rc-a050-h000-r000.i", Lines: 12}
	require.NoError(t, recordVariant(ledger, written, ports.KindRodHeight, "safe=50 shim=0 reg=0"))

	first, err := ledger.Variant("rc-a050-h000-r000.i")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.False(t, first.Skipped)
	createdAt := first.CreatedAt

	// A later skipped run of the same variant must not overwrite the record.
	time.Sleep(time.Millisecond)
	skipped := &app.Result{OutputPath: "inputs/rc-a050-h000-r000.i", Skipped: true}
	require.NoError(t, recordVariant(ledger, skipped, ports.KindRodHeight, "safe=50 shim=0 reg=0"))

	after, err := ledger.Variant("rc-a050-h000-r000.i")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.False(t, after.Skipped)
	assert.Equal(t, createdAt, after.CreatedAt)
}

func TestRecordVariant_SkippedRunRecordedWhenAbsent(t *testing.T) {
	ledger := newMemLedger()

	skipped := &app.Result{OutputPath: "inputs/rc-m102-095.i", Skipped: true}
	require.NoError(t, recordVariant(ledger, skipped, ports.KindDensity, "102=0.95"))

	rec, err := ledger.Variant("rc-m102-095.i")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Skipped)
	assert.Equal(t, ports.KindDensity, rec.Kind)
}
