package project

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// DefaultTemplatePath is ~/.beamload/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store. Template names must be unique
// since the CLI addresses templates by name.
func SaveTemplates(path string, store model.TemplateStore) error {
	names := make(map[string]bool, len(store.Templates))
	for _, t := range store.Templates {
		if t.Name == "" {
			return fmt.Errorf("template %s has no name", t.ID)
		}
		if names[t.Name] {
			return fmt.Errorf("duplicate template name %q", t.Name)
		}
		names[t.Name] = true
	}
	return writeJSON(path, store)
}

// LoadTemplates reads the template store; a missing file is an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if _, err := readJSON(path, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.LoadTemplate{}
	}
	return store, nil
}
