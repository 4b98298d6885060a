package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BeamLoad/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogPath returns the default file path for the custom beam catalog.
// This is located at ~/.beamload/catalog.yaml.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.yaml")
}

// SaveCatalog writes a beam catalog to the specified YAML file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, catalog model.BeamCatalog) error {
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// LoadCatalog reads a custom beam catalog from a YAML file.
// If the file does not exist, it returns an empty catalog with no error.
// Every entry must have an ID and positive dimensions and weight.
func LoadCatalog(path string) (model.BeamCatalog, error) {
	data, found, err := readFile(path)
	if err != nil {
		return model.BeamCatalog{}, err
	}
	if !found {
		return model.BeamCatalog{Beams: []model.Beam{}}, nil
	}
	var catalog model.BeamCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return model.BeamCatalog{}, fmt.Errorf("failed to parse catalog %s: %w", filepath.Base(path), err)
	}
	if catalog.Beams == nil {
		catalog.Beams = []model.Beam{}
	}
	if err := ValidateCatalog(catalog); err != nil {
		return model.BeamCatalog{}, err
	}
	return catalog, nil
}

// ValidateCatalog checks every beam entry and reports all problems at once.
func ValidateCatalog(catalog model.BeamCatalog) error {
	var errs []error
	seen := make(map[string]bool)
	for i, b := range catalog.Beams {
		name := b.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Errorf("beam %s: missing id", name))
		}
		if b.ID != strings.ToLower(strings.TrimSpace(b.ID)) {
			errs = append(errs, fmt.Errorf("beam %s: id must be lowercase without spaces", name))
		}
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("beam %s: duplicate id", name))
		}
		seen[b.ID] = true
		if b.Width <= 0 || b.Height <= 0 {
			errs = append(errs, fmt.Errorf("beam %s: width and height must be positive", name))
		}
		if b.Weight12m <= 0 {
			errs = append(errs, fmt.Errorf("beam %s: weight must be positive", name))
		}
	}
	return errors.Join(errs...)
}

// LoadMergedCatalog returns the built-in catalog with the custom catalog at
// path merged over it. An empty path yields the built-in catalog.
func LoadMergedCatalog(path string) (model.BeamCatalog, error) {
	builtin := model.DefaultCatalog()
	if path == "" {
		return builtin, nil
	}
	custom, err := LoadCatalog(path)
	if err != nil {
		return model.BeamCatalog{}, err
	}
	return builtin.Merge(custom), nil
}
