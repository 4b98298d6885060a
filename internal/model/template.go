package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// LoadTemplate is a load request list saved with its settings so a recurring
// shipment can be planned again. Results are never stored with it.
type LoadTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Items       []LoadItem   `json:"items"`
	Settings    LoadSettings `json:"settings"`
}

func NewLoadTemplate(name, description string, items []LoadItem, settings LoadSettings) LoadTemplate {
	stamp := time.Now().UTC().Format(time.RFC3339)
	kept := slices.Clone(items)
	if kept == nil {
		kept = []LoadItem{}
	}
	return LoadTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
		Items:       kept,
		Settings:    settings,
	}
}

// ToProject starts a plan from the template. Every item is re-created with a
// new ID so edits to the plan never touch the stored template.
func (t LoadTemplate) ToProject(name string) Project {
	p := Project{Name: name, Items: make([]LoadItem, 0, len(t.Items)), Settings: t.Settings}
	for _, src := range t.Items {
		item := NewLoadItem(src.BeamID, src.Length, src.Quantity, src.Priority)
		item.Label = src.Label
		p.Items = append(p.Items, item)
	}
	return p
}

// TemplateStore is the on-disk collection of templates.
type TemplateStore struct {
	Templates []LoadTemplate `json:"templates"`
}

func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []LoadTemplate{}}
}

func (ts *TemplateStore) Add(t LoadTemplate) {
	ts.Templates = append(ts.Templates, t)
}

func (ts *TemplateStore) find(match func(LoadTemplate) bool) *LoadTemplate {
	if i := slices.IndexFunc(ts.Templates, match); i >= 0 {
		return &ts.Templates[i]
	}
	return nil
}

// Remove deletes the template with the given ID and reports whether it existed.
func (ts *TemplateStore) Remove(id string) bool {
	n := len(ts.Templates)
	ts.Templates = slices.DeleteFunc(ts.Templates, func(t LoadTemplate) bool { return t.ID == id })
	return len(ts.Templates) < n
}

func (ts *TemplateStore) FindByID(id string) *LoadTemplate {
	return ts.find(func(t LoadTemplate) bool { return t.ID == id })
}

// FindByName returns the first template called name, or nil.
func (ts *TemplateStore) FindByName(name string) *LoadTemplate {
	return ts.find(func(t LoadTemplate) bool { return t.Name == name })
}

func (ts *TemplateStore) Names() []string {
	names := make([]string, 0, len(ts.Templates))
	for _, t := range ts.Templates {
		names = append(names, t.Name)
	}
	return names
}
