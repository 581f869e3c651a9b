// ABOUTME: Tests for Store implementations and the keyed Update helper.
// ABOUTME: Verifies overwrite semantics, corrupt-record skipping, and locking.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/harperreed/healthtwin/internal/models"
)

func newPatient(t *testing.T, id string) *models.PatientRecord {
	t.Helper()
	p, err := models.NewPatientRecord(id, "Test Patient", 40, models.GenderOther, 170, 70, models.MedicalHistory{
		PhysicalActivity: models.ActivityModerate,
	})
	if err != nil {
		t.Fatalf("NewPatientRecord failed: %v", err)
	}
	return p
}

// storeFactories builds each backend against a temp directory.
var storeFactories = map[string]func(t *testing.T) Store{
	"badger": func(t *testing.T) Store {
		s, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
		if err != nil {
			t.Fatalf("OpenBadger failed: %v", err)
		}
		return s
	},
	"dir": func(t *testing.T) Store {
		s, err := NewDirStore(filepath.Join(t.TempDir(), "profiles"))
		if err != nil {
			t.Fatalf("NewDirStore failed: %v", err)
		}
		return s
	},
}

func TestSaveAndGet(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := factory(t)
			defer st.Close()

			p := newPatient(t, "P001")
			p.RecordMeasurement(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), models.Measurements{
				BloodGlucose: 95, WeightKG: 70,
			})

			if err := st.Save(p); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, err := st.Get("P001")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Name != "Test Patient" {
				t.Errorf("Name = %q, want 'Test Patient'", got.Name)
			}
			if len(got.History) != 1 || got.History[0].BloodGlucose != 95 {
				t.Errorf("history not persisted: %+v", got.History)
			}
		})
	}
}

func TestGetMissingPatient(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := factory(t)
			defer st.Close()

			if _, err := st.Get("nope"); err != ErrNotFound {
				t.Errorf("Get missing = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := factory(t)
			defer st.Close()

			p := newPatient(t, "P001")
			if err := st.Save(p); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			p.Name = "Renamed"
			if err := st.Save(p); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}

			all, err := st.LoadAll()
			if err != nil {
				t.Fatalf("LoadAll failed: %v", err)
			}
			if len(all) != 1 {
				t.Fatalf("LoadAll returned %d records, want 1", len(all))
			}
			if all[0].Name != "Renamed" {
				t.Errorf("Name = %q, want 'Renamed'", all[0].Name)
			}
		})
	}
}

func TestLoadAllSorted(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := factory(t)
			defer st.Close()

			for _, id := range []string{"P003", "P001", "P002"} {
				if err := st.Save(newPatient(t, id)); err != nil {
					t.Fatalf("Save %s failed: %v", id, err)
				}
			}

			all, err := st.LoadAll()
			if err != nil {
				t.Fatalf("LoadAll failed: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("LoadAll returned %d records, want 3", len(all))
			}
			for i, want := range []string{"P001", "P002", "P003"} {
				if all[i].PatientID != want {
					t.Errorf("record %d = %s, want %s", i, all[i].PatientID, want)
				}
			}
		})
	}
}

func TestDirStoreSkipsCorruptRecords(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	st, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}
	defer st.Close()

	if err := st.Save(newPatient(t, "P001")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := st.Save(newPatient(t, "P002")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	all, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll returned %d records, want 2 (corrupt skipped)", len(all))
	}
	if all[0].PatientID != "P001" || all[1].PatientID != "P002" {
		t.Errorf("unexpected records: %s, %s", all[0].PatientID, all[1].PatientID)
	}
}

func TestBadgerStoreSkipsCorruptRecords(t *testing.T) {
	st, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer st.Close()

	if err := st.Save(newPatient(t, "P001")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := st.Save(newPatient(t, "P002")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Plant a corrupt blob under the patient prefix.
	err = st.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(patientPrefix+"P666"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("plant corrupt blob: %v", err)
	}

	all, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll returned %d records, want 2 (corrupt skipped)", len(all))
	}
}

func TestDirStoreRejectsPathEscapingIDs(t *testing.T) {
	st, err := NewDirStore(filepath.Join(t.TempDir(), "profiles"))
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}
	defer st.Close()

	bad := &models.PatientRecord{PatientID: "../escape", Name: "X"}
	if err := st.Save(bad); err == nil {
		t.Error("expected error for path-escaping patient ID")
	}
	if _, err := st.Get("a/b"); err == nil {
		t.Error("expected error for path-escaping Get")
	}
}

func TestStoredSeriesRoundTripsSparseFields(t *testing.T) {
	st, err := NewDirStore(filepath.Join(t.TempDir(), "profiles"))
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}
	defer st.Close()

	p := newPatient(t, "P001")
	var sample models.WearableSample
	sample.Timestamp = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	sample.PatientID = "P001"
	sample.SetValue(models.ParamHeartRate, 75)
	p.AddWearableSamples([]models.WearableSample{sample})

	if err := st.Save(p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Absent fields must be omitted from the serialized blob entirely.
	data, err := os.ReadFile(filepath.Join(filepath.Dir(st.filePath("P001")), "P001.json"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal stored file: %v", err)
	}

	got, err := st.Get("P001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	s := got.WearableSeries[0]
	if hr, ok := s.Value(models.ParamHeartRate); !ok || hr != 75 {
		t.Errorf("heart_rate = %v (present=%v), want 75", hr, ok)
	}
	if _, ok := s.Value(models.ParamSteps); ok {
		t.Error("steps should be absent after round trip")
	}
}

func TestUpdateSerializesConcurrentWriters(t *testing.T) {
	st, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer st.Close()

	if err := st.Save(newPatient(t, "P001")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := Update(st, "P001", func(p *models.PatientRecord) error {
				p.RecordMeasurement(date, models.Measurements{WeightKG: 70})
				return nil
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := st.Get("P001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.History) != writers {
		t.Errorf("history length = %d, want %d (lost updates)", len(got.History), writers)
	}
}

func TestUpdateMissingPatient(t *testing.T) {
	st, err := NewDirStore(filepath.Join(t.TempDir(), "profiles"))
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}
	defer st.Close()

	err = Update(st, "nope", func(p *models.PatientRecord) error { return nil })
	if err != ErrNotFound {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}
