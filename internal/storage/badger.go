// ABOUTME: Badger-backed patient store, one JSON blob per patient.
// ABOUTME: Keys are patient-ID prefixed; corrupt blobs are skipped on listing.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/harperreed/healthtwin/internal/models"
)

const patientPrefix = "patient:"

// BadgerStore persists patient records in a local Badger database.
type BadgerStore struct {
	db *badger.DB
}

// Compile-time check that BadgerStore implements Store.
var _ Store = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database at the given directory.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// LoadAll returns all stored patient records sorted by patient ID.
// Entries that fail to decode are skipped so one corrupt blob cannot
// break the whole listing.
func (s *BadgerStore) LoadAll() ([]*models.PatientRecord, error) {
	var records []*models.PatientRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(patientPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r models.PatientRecord
				if err := json.Unmarshal(val, &r); err != nil {
					return nil // skip corrupt entry
				}
				records = append(records, &r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PatientID < records[j].PatientID
	})
	return records, nil
}

// Get retrieves a single patient record by ID.
func (s *BadgerStore) Get(patientID string) (*models.PatientRecord, error) {
	var record *models.PatientRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(patientPrefix + patientID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var r models.PatientRecord
			if err := json.Unmarshal(val, &r); err != nil {
				return fmt.Errorf("decode patient %s: %w", patientID, err)
			}
			record = &r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Save writes the full record, overwriting any previous version.
func (s *BadgerStore) Save(record *models.PatientRecord) error {
	if record.PatientID == "" {
		return fmt.Errorf("cannot save record without patient ID")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal patient %s: %w", record.PatientID, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(patientPrefix+record.PatientID), data)
	})
	if err != nil {
		return fmt.Errorf("save patient %s: %w", record.PatientID, err)
	}
	return nil
}
