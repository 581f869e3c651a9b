// ABOUTME: Store interface for patient record persistence.
// ABOUTME: Defines the load-all/save contract plus per-patient update locking.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/harperreed/healthtwin/internal/models"
)

// ErrNotFound is returned when no record exists for a patient ID.
var ErrNotFound = errors.New("patient not found")

// Store defines the persistence contract for patient records.
// Records are opaque blobs keyed by patient ID; Save is a full overwrite
// (callers read-modify-write the whole record). LoadAll skips corrupt
// entries rather than failing the listing.
type Store interface {
	LoadAll() ([]*models.PatientRecord, error)
	Get(patientID string) (*models.PatientRecord, error)
	Save(record *models.PatientRecord) error
	Close() error
}

// patientLocks serializes read-modify-write sequences per patient ID so
// concurrent callers cannot lose updates. The host CLI is effectively
// single-user, but the MCP server can serve overlapping requests.
var patientLocks sync.Map

// Update runs fn against the current record for patientID while holding
// that patient's lock, then persists the mutated record. The lock covers
// the whole load-modify-save sequence.
func Update(st Store, patientID string, fn func(*models.PatientRecord) error) error {
	muIface, _ := patientLocks.LoadOrStore(patientID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	record, err := st.Get(patientID)
	if err != nil {
		return err
	}
	if err := fn(record); err != nil {
		return err
	}
	return st.Save(record)
}

// DataDir returns the default data directory following the XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "healthtwin")
}
