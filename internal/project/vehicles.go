package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// DefaultVehiclesPath is ~/.beamload/vehicles.json.
func DefaultVehiclesPath() string {
	return filepath.Join(DefaultConfigDir(), "vehicles.json")
}

// SaveCustomVehicles writes the custom vehicle profiles as JSON.
func SaveCustomVehicles(path string, vehicles []model.Vehicle) error {
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	return writeJSON(path, vehicles)
}

// LoadCustomVehicles reads custom vehicle profiles. A missing file yields an
// empty list; an invalid profile fails the whole load.
func LoadCustomVehicles(path string) ([]model.Vehicle, error) {
	vehicles := []model.Vehicle{}
	if _, err := readJSON(path, &vehicles); err != nil {
		return nil, err
	}
	for i := range vehicles {
		vehicles[i].IsBuiltIn = false
		if err := ValidateVehicle(vehicles[i]); err != nil {
			return nil, err
		}
	}
	return vehicles, nil
}

// ExportVehicle writes a single profile to its own file for sharing.
func ExportVehicle(path string, vehicle model.Vehicle) error {
	vehicle.IsBuiltIn = false
	return writeJSON(path, vehicle)
}

// ImportVehicle reads a profile written by ExportVehicle.
func ImportVehicle(path string) (model.Vehicle, error) {
	var vehicle model.Vehicle
	found, err := readJSON(path, &vehicle)
	if err != nil {
		return model.Vehicle{}, err
	}
	if !found {
		return model.Vehicle{}, fmt.Errorf("vehicle file %s not found", path)
	}
	if err := ValidateVehicle(vehicle); err != nil {
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

// ValidateVehicle rejects profiles without a type or width, and custom
// profiles that reuse a built-in type.
func ValidateVehicle(v model.Vehicle) error {
	if v.Type == "" {
		return errors.New("vehicle profile has no type")
	}
	if v.MaxWidth <= 0 {
		return fmt.Errorf("vehicle %s: max width must be positive", v.Type)
	}
	if _, builtin := model.FindVehicle(v.Type, nil); builtin {
		return fmt.Errorf("vehicle %s: type is reserved by a built-in profile", v.Type)
	}
	return nil
}
