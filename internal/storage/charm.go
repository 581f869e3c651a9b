// ABOUTME: Charm KV backend for cloud-synced patient storage.
// ABOUTME: Stores one JSON blob per patient with automatic sync after writes.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/healthtwin/internal/models"
)

const (
	charmDBName = "healthtwin"
	charmHost   = "charm.2389.dev"
)

// CharmStore persists patient records in Charm KV, which syncs them to
// Charm Cloud E2E-encrypted with the user's SSH key.
type CharmStore struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// Compile-time check that CharmStore implements Store.
var _ Store = (*CharmStore)(nil)

// OpenCharm opens the Charm-backed store, pulling remote state first.
func OpenCharm() (*CharmStore, error) {
	if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(charmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	// Pull remote data on startup (skip in read-only mode).
	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return &CharmStore{kv: db, autoSync: true}, nil
}

// Close closes the KV database connection.
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}

func (s *CharmStore) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}

// LoadAll returns all stored patient records sorted by patient ID.
// Entries that fail to decode are skipped.
func (s *CharmStore) LoadAll() ([]*models.PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	prefix := []byte(patientPrefix)
	var records []*models.PatientRecord
	for _, key := range keys {
		if !bytes.HasPrefix(key, prefix) {
			continue
		}
		val, err := s.kv.Get(key)
		if err != nil {
			continue
		}
		var r models.PatientRecord
		if err := json.Unmarshal(val, &r); err != nil {
			continue
		}
		records = append(records, &r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PatientID < records[j].PatientID
	})
	return records, nil
}

// Get retrieves a single patient record by ID.
func (s *CharmStore) Get(patientID string) (*models.PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, err := s.kv.Get([]byte(patientPrefix + patientID))
	if err != nil || len(val) == 0 {
		return nil, ErrNotFound
	}
	var r models.PatientRecord
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("decode patient %s: %w", patientID, err)
	}
	return &r, nil
}

// Save writes the full record and syncs to Charm Cloud.
func (s *CharmStore) Save(record *models.PatientRecord) error {
	if record.PatientID == "" {
		return fmt.Errorf("cannot save record without patient ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process (MCP server?)")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal patient %s: %w", record.PatientID, err)
	}
	if err := s.kv.Set([]byte(patientPrefix+record.PatientID), data); err != nil {
		return fmt.Errorf("save patient %s: %w", record.PatientID, err)
	}
	s.syncIfEnabled()
	return nil
}
