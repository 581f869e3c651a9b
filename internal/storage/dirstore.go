// ABOUTME: File-per-patient JSON store for plain-directory persistence.
// ABOUTME: Mirrors the profiles-directory layout; corrupt files are skipped.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harperreed/healthtwin/internal/models"
)

// DirStore persists each patient as a JSON file named <patient_id>.json
// inside a single directory.
type DirStore struct {
	dataDir string
}

// Compile-time check that DirStore implements Store.
var _ Store = (*DirStore)(nil)

// NewDirStore creates a directory-backed store rooted at dataDir.
func NewDirStore(dataDir string) (*DirStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &DirStore{dataDir: dataDir}, nil
}

// Close releases resources. For DirStore this is a no-op.
func (s *DirStore) Close() error {
	return nil
}

func (s *DirStore) filePath(patientID string) string {
	return filepath.Join(s.dataDir, patientID+".json")
}

// validID rejects IDs that would escape the data directory when used as
// a file name.
func validID(patientID string) error {
	if patientID == "" {
		return fmt.Errorf("cannot save record without patient ID")
	}
	if strings.ContainsAny(patientID, `/\`) || patientID == "." || patientID == ".." {
		return fmt.Errorf("invalid patient ID: %q", patientID)
	}
	return nil
}

// LoadAll returns all stored patient records sorted by patient ID.
// Unreadable or malformed files are skipped, not surfaced.
func (s *DirStore) LoadAll() ([]*models.PatientRecord, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var records []*models.PatientRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			continue
		}
		var r models.PatientRecord
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		if r.PatientID == "" {
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
func (s *DirStore) Get(patientID string) (*models.PatientRecord, error) {
	if err := validID(patientID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.filePath(patientID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read patient %s: %w", patientID, err)
	}
	var r models.PatientRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode patient %s: %w", patientID, err)
	}
	return &r, nil
}

// Save writes the full record, overwriting any previous version.
func (s *DirStore) Save(record *models.PatientRecord) error {
	if err := validID(record.PatientID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal patient %s: %w", record.PatientID, err)
	}
	if err := os.WriteFile(s.filePath(record.PatientID), data, 0600); err != nil {
		return fmt.Errorf("save patient %s: %w", record.PatientID, err)
	}
	return nil
}
