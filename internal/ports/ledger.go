// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// Variant kinds recorded in the ledger.
const (
	KindRodHeight   = "rods"
	KindDensity     = "density"
	KindTemperature = "temp"
)

// VariantRecord is the ledger entry for one generated (or skipped) variant
// deck. Name is the derived output file name, which doubles as the primary
// key — the same spec always derives the same name.
type VariantRecord struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Spec      string    `json:"spec"`
	CreatedAt time.Time `json:"created_at"`
	Skipped   bool      `json:"skipped"`

	// Simulation result, attached once the output is extracted.
	HasResult bool    `json:"has_result"`
	Keff      float64 `json:"keff,omitempty"`
	KeffUnc   float64 `json:"keff_unc,omitempty"`
}

// Ledger persists variant generation records and their simulation results.
// Writes must be transactional: a crash mid-write must not corrupt
// previously committed records.
type Ledger interface {
	// RecordVariant upserts a generation record keyed by its name.
	RecordVariant(rec VariantRecord) error

	// AttachResult stores an extracted estimate and uncertainty on an
	// existing record. Returns an error if no record exists for name.
	AttachResult(name string, keff, keffUnc float64) error

	// Variant retrieves one record by name. Returns nil, nil when absent.
	Variant(name string) (*VariantRecord, error)

	// Variants returns all records sorted by name.
	Variants() ([]VariantRecord, error)

	// Close releases the underlying store.
	Close() error
}
