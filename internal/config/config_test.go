// ABOUTME: Tests for healthtwin configuration management.
// ABOUTME: Covers defaults, backend selection, env overrides, and expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "dir"}
	if got := cfg.GetBackend(); got != "dir" {
		t.Errorf("GetBackend() = %q, want %q", got, "dir")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/healthtwin-test"}
	if got := cfg.GetDataDir(); got != "/tmp/healthtwin-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/healthtwin-test")
	}
}

func TestWearableDir(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/healthtwin-test"}
	want := filepath.Join("/tmp/healthtwin-test", "wearable_data")
	if got := cfg.WearableDir(); got != want {
		t.Errorf("WearableDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/healthtwin", filepath.Join(home, "data/healthtwin")},
		{"data/healthtwin", "data/healthtwin"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "oracle"}
	if _, err := cfg.OpenStore(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenStoreBackends(t *testing.T) {
	for _, backend := range []string{"badger", "dir"} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{Backend: backend, DataDir: t.TempDir()}
			st, err := cfg.OpenStore()
			if err != nil {
				t.Fatalf("OpenStore(%s) failed: %v", backend, err)
			}
			defer st.Close()

			records, err := st.LoadAll()
			if err != nil {
				t.Fatalf("LoadAll failed: %v", err)
			}
			if len(records) != 0 {
				t.Errorf("fresh store has %d records", len(records))
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HEALTHTWIN_BACKEND", "dir")
	t.Setenv("HEALTHTWIN_DATA_DIR", "/tmp/override")
	// Point the config path somewhere empty so only env applies.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetBackend() != "dir" {
		t.Errorf("backend = %q, want dir from env", cfg.GetBackend())
	}
	if cfg.GetDataDir() != "/tmp/override" {
		t.Errorf("data dir = %q, want /tmp/override from env", cfg.GetDataDir())
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	os.Unsetenv("HEALTHTWIN_BACKEND")
	os.Unsetenv("HEALTHTWIN_DATA_DIR")

	cfg := &Config{Backend: "dir", DataDir: "~/twin-data"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend != "dir" || loaded.DataDir != "~/twin-data" {
		t.Errorf("loaded config = %+v", loaded)
	}
}
