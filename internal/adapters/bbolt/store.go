// Package bbolt implements the ports.Ledger interface using bbolt
// (embedded B+ tree). Variant records live in a single bucket keyed by
// derived output name, JSON-serialized. Writes are transactional — a
// crash mid-write cannot corrupt previously committed records.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"deckgen/internal/ports"
)

var bucketVariants = []byte("variants")

// Store implements ports.Ledger backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordVariant upserts a generation record keyed by its derived name.
func (s *Store) RecordVariant(rec ports.VariantRecord) error {
	if rec.Name == "" {
		return fmt.Errorf("variant record has no name")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal variant %s: %w", rec.Name, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketVariants)
		if err != nil {
			return err
		}
		return b.Put([]byte(rec.Name), data)
	})
}

// AttachResult stores an extracted estimate and uncertainty on an
// existing record.
func (s *Store) AttachResult(name string, keff, keffUnc float64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketVariants)
		if err != nil {
			return err
		}
		data := b.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("no variant record for %s", name)
		}
		var rec ports.VariantRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("unmarshal variant %s: %w", name, err)
		}
		rec.HasResult = true
		rec.Keff = keff
		rec.KeffUnc = keffUnc
		updated, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal variant %s: %w", name, err)
		}
		return b.Put([]byte(name), updated)
	})
}

// Variant retrieves one record by name. Returns nil, nil when absent.
func (s *Store) Variant(name string) (*ports.VariantRecord, error) {
	var rec *ports.VariantRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVariants)
		if b == nil {
			return nil
		}
		data := b.Get([]byte(name))
		if data == nil {
			return nil
		}
		rec = &ports.VariantRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("load variant %s: %w", name, err)
	}
	return rec, nil
}

// Variants returns all records in name order (bbolt iterates keys sorted).
func (s *Store) Variants() ([]ports.VariantRecord, error) {
	var recs []ports.VariantRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVariants)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec ports.VariantRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal variant %s: %w", k, err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
