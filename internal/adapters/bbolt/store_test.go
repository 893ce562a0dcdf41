package bbolt

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckgen/internal/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "deckgen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndLoadVariant(t *testing.T) {
	store := newTestStore(t)

	rec := ports.VariantRecord{
		Name:      "rc-a050-h000-r000.i",
		Kind:      ports.KindRodHeight,
		Spec:      "safe=50 shim=0 reg=0",
		CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.RecordVariant(rec))

	got, err := store.Variant("rc-a050-h000-r000.i")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestStore_VariantAbsent(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Variant("rc-temp-0350.i")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_RecordRejectsUnnamed(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.RecordVariant(ports.VariantRecord{}))
}

func TestStore_AttachResult(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordVariant(ports.VariantRecord{
		Name: "rc-temp-0350.i",
		Kind: ports.KindTemperature,
	}))
	require.NoError(t, store.AttachResult("rc-temp-0350.i", 1.00365, 0.00057))

	got, err := store.Variant("rc-temp-0350.i")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HasResult)
	assert.InDelta(t, 1.00365, got.Keff, 1e-12)
	assert.InDelta(t, 0.00057, got.KeffUnc, 1e-12)
}

func TestStore_AttachResultRequiresRecord(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.AttachResult("rc-temp-0350.i", 1.0, 0.001))
}

func TestStore_VariantsSortedByName(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"rc-temp-0350.i", "rc-a000-h000-r000.i", "rc-m102-095.i"} {
		require.NoError(t, store.RecordVariant(ports.VariantRecord{Name: name, Kind: ports.KindDensity}))
	}

	recs, err := store.Variants()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "rc-a000-h000-r000.i", recs[0].Name)
	assert.Equal(t, "rc-m102-095.i", recs[1].Name)
	assert.Equal(t, "rc-temp-0350.i", recs[2].Name)
}

func TestStore_UpsertOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordVariant(ports.VariantRecord{Name: "rc-m102-095.i", Skipped: true}))
	require.NoError(t, store.RecordVariant(ports.VariantRecord{Name: "rc-m102-095.i", Skipped: false, Spec: "102=0.95"}))

	got, err := store.Variant("rc-m102-095.i")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Skipped)
	assert.Equal(t, "102=0.95", got.Spec)
}
