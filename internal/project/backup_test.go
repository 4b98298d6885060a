package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
)

func sampleBackup() BackupData {
	cfg := model.DefaultAppConfig()
	cfg.DefaultVehicle = model.VehicleVagao2m70
	cfg.RecentProjects = nil

	store := model.NewTemplateStore()
	store.Add(model.NewLoadTemplate("Weekly", "", []model.LoadItem{model.NewLoadItem("w200x15", model.LengthLong, 2, 1)}, model.DefaultSettings()))

	return BackupData{
		Config: cfg,
		Catalog: model.BeamCatalog{Beams: []model.Beam{
			{ID: "cs250", Bitola: "CS 250 x 52", Width: 25, Height: 25, Weight12m: 0.624},
		}},
		Vehicles:  []model.Vehicle{{Type: "prancha", Description: "Prancha", MaxWidth: 320}},
		Templates: store,
	}
}

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := ExportAllData(path, sampleBackup()); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultVehicle != model.VehicleVagao2m70 {
		t.Errorf("expected vagao_2m70, got %s", backup.Config.DefaultVehicle)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
	if len(backup.Catalog.Beams) != 1 || backup.Catalog.Beams[0].ID != "cs250" {
		t.Errorf("unexpected catalog %+v", backup.Catalog)
	}
	if len(backup.Vehicles) != 1 || backup.Vehicles[0].MaxWidth != 320 {
		t.Errorf("unexpected vehicles %+v", backup.Vehicles)
	}
	if len(backup.Templates.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(backup.Templates.Templates))
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllData_MinimalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Catalog.Beams == nil || backup.Vehicles == nil || backup.Templates.Templates == nil {
		t.Error("expected non-nil collections")
	}
}

func TestRestoreAllData(t *testing.T) {
	dir := t.TempDir()
	backup := sampleBackup()

	if err := RestoreAllData(dir, backup); err != nil {
		t.Fatalf("RestoreAllData failed: %v", err)
	}

	cfg, err := LoadAppConfig(filepath.Join(dir, "config.toml"))
	if err != nil || cfg.DefaultVehicle != model.VehicleVagao2m70 {
		t.Errorf("config not restored: %+v, %v", cfg, err)
	}
	cat, err := LoadCatalog(filepath.Join(dir, "catalog.yaml"))
	if err != nil || len(cat.Beams) != 1 {
		t.Errorf("catalog not restored: %+v, %v", cat, err)
	}
	vehicles, err := LoadCustomVehicles(filepath.Join(dir, "vehicles.json"))
	if err != nil || len(vehicles) != 1 {
		t.Errorf("vehicles not restored: %+v, %v", vehicles, err)
	}
	store, err := LoadTemplates(filepath.Join(dir, "templates.json"))
	if err != nil || len(store.Templates) != 1 {
		t.Errorf("templates not restored: %+v, %v", store, err)
	}
}
