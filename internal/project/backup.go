package project

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Catalog   model.BeamCatalog   `json:"catalog"`
	Vehicles  []model.Vehicle     `json:"vehicles"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData exports config, custom catalog, custom vehicles and templates
// to a single JSON file at the specified path.
func ExportAllData(exportPath string, backup BackupData) error {
	backup.Version = BackupVersion
	backup.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	var backup BackupData
	found, err := readJSON(importPath, &backup)
	if err != nil {
		return BackupData{}, fmt.Errorf("read backup: %w", err)
	}
	if !found {
		return BackupData{}, fmt.Errorf("backup %s not found", importPath)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := ValidateCatalog(backup.Catalog); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup catalog: %w", err)
	}
	// Ensure slices are never nil
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Catalog.Beams == nil {
		backup.Catalog.Beams = []model.Beam{}
	}
	if backup.Vehicles == nil {
		backup.Vehicles = []model.Vehicle{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.LoadTemplate{}
	}
	return backup, nil
}

// RestoreAllData writes the parts of a backup to their files under dir,
// using the same file names as the default locations.
func RestoreAllData(dir string, backup BackupData) error {
	if err := SaveAppConfig(filepath.Join(dir, "config.toml"), backup.Config); err != nil {
		return fmt.Errorf("restore config: %w", err)
	}
	if err := SaveCatalog(filepath.Join(dir, "catalog.yaml"), backup.Catalog); err != nil {
		return fmt.Errorf("restore catalog: %w", err)
	}
	if err := SaveCustomVehicles(filepath.Join(dir, "vehicles.json"), backup.Vehicles); err != nil {
		return fmt.Errorf("restore vehicles: %w", err)
	}
	if err := SaveTemplates(filepath.Join(dir, "templates.json"), backup.Templates); err != nil {
		return fmt.Errorf("restore templates: %w", err)
	}
	return nil
}
