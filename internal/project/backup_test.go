package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panelforge/panelcut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := DefaultAppConfig()
	cfg.KerfWidth = 4.0
	cfg.GrainPreferences["SF101"] = true

	profiles := []SheetProfile{{Name: "MDF 6mm", Width: 1220, Height: 2440, Kerf: 2.5}}
	offcuts := OffcutInventory{Offcuts: []StoredOffcut{
		{Offcut: model.Offcut{ID: "oc1", Width: 700, Height: 400}, Brand: "Century", Laminate: "SF101"},
	}}

	if err := ExportAllData(path, cfg, profiles, offcuts); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version == "" || backup.CreatedAt == "" {
		t.Error("backup metadata missing")
	}
	if backup.Config.KerfWidth != 4.0 {
		t.Errorf("config lost in round trip: %+v", backup.Config)
	}
	if !backup.Config.GrainPreferences["SF101"] {
		t.Error("grain preferences lost in round trip")
	}
	if len(backup.Profiles) != 1 || backup.Profiles[0].Name != "MDF 6mm" {
		t.Errorf("profiles lost in round trip: %+v", backup.Profiles)
	}
	if len(backup.Offcuts.Offcuts) != 1 {
		t.Errorf("offcuts lost in round trip: %+v", backup.Offcuts)
	}
}

func TestImportAllData_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for backup without version")
	}
}

func TestImportAllData_MissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllData_NilMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0","config":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.GrainPreferences == nil || backup.Config.RecentJobs == nil || backup.Offcuts.Offcuts == nil {
		t.Error("sparse backup must load with non-nil collections")
	}
}
