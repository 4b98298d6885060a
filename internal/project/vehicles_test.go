package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
)

func TestSaveAndLoadCustomVehicles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.json")
	vehicles := []model.Vehicle{
		{Type: "prancha_320", Description: "Prancha (320cm)", MaxWidth: 320, IsBuiltIn: true},
	}

	if err := SaveCustomVehicles(path, vehicles); err != nil {
		t.Fatalf("SaveCustomVehicles failed: %v", err)
	}

	loaded, err := LoadCustomVehicles(path)
	if err != nil {
		t.Fatalf("LoadCustomVehicles failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(loaded))
	}
	if loaded[0].IsBuiltIn {
		t.Error("loaded vehicles must not be marked built-in")
	}
	if loaded[0].MaxWidth != 320 {
		t.Errorf("expected width 320, got %f", loaded[0].MaxWidth)
	}

	v, ok := model.FindVehicle("prancha_320", loaded)
	if !ok || v.Description != "Prancha (320cm)" {
		t.Errorf("expected custom vehicle to be found, got %+v", v)
	}
}

func TestLoadCustomVehicles_MissingFile(t *testing.T) {
	vehicles, err := LoadCustomVehicles(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if vehicles == nil || len(vehicles) != 0 {
		t.Errorf("expected empty slice, got %v", vehicles)
	}
}

func TestLoadCustomVehicles_RejectsBuiltInType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.json")
	data := `[{"type": "carreta", "description": "Fake", "max_width": 500}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCustomVehicles(path)
	if err == nil || !strings.Contains(err.Error(), "reserved") {
		t.Errorf("expected reserved type error, got %v", err)
	}
}

func TestExportImportVehicle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicle.json")
	v := model.Vehicle{Type: "bitrem", Description: "Bitrem (260cm)", MaxWidth: 260}

	if err := ExportVehicle(path, v); err != nil {
		t.Fatalf("ExportVehicle failed: %v", err)
	}
	got, err := ImportVehicle(path)
	if err != nil {
		t.Fatalf("ImportVehicle failed: %v", err)
	}
	if got != v {
		t.Errorf("expected %+v, got %+v", v, got)
	}
}

func TestImportVehicle_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"notype.json":  `{"description": "x", "max_width": 200}`,
		"nowidth.json": `{"type": "x", "max_width": 0}`,
		"bad.json":     `{nope`,
	}
	for name, data := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ImportVehicle(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := ImportVehicle(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
