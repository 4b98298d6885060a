package project

import (
	"fmt"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// FileExtension is appended to saved load plans.
const FileExtension = ".beamload"

// SaveProject writes a load plan, including its result when present.
func SaveProject(path string, proj model.Project) error {
	return writeJSON(path, proj)
}

// LoadProject reads a load plan saved by SaveProject or written by hand.
func LoadProject(path string) (model.Project, error) {
	var proj model.Project
	found, err := readJSON(path, &proj)
	if err != nil {
		return model.Project{}, err
	}
	if !found {
		return model.Project{}, fmt.Errorf("plan %s not found", path)
	}
	if proj.Items == nil {
		proj.Items = []model.LoadItem{}
	}
	// Hand-written plans may omit the settings block entirely.
	if proj.Settings.MaxWidth <= 0 {
		proj.Settings = model.DefaultSettings()
	}
	return proj, nil
}
