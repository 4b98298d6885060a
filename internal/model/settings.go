package model

import "fmt"

// VehicleType identifies a transport profile.
type VehicleType string

const (
	VehicleCarreta   VehicleType = "carreta"
	VehicleVagao2m40 VehicleType = "vagao_2m40"
	VehicleVagao2m70 VehicleType = "vagao_2m70"
	VehicleVagao3m   VehicleType = "vagao_3m"
)

// Vehicle describes the usable lateral width of a transport surface.
type Vehicle struct {
	Type        VehicleType `json:"type"`
	Description string      `json:"description"`
	MaxWidth    float64     `json:"max_width"` // cm
	IsBuiltIn   bool        `json:"-"`
}

// Built-in vehicle profiles
var Vehicles = []Vehicle{
	{Type: VehicleCarreta, Description: "Carreta (240cm)", MaxWidth: 240, IsBuiltIn: true},
	{Type: VehicleVagao2m40, Description: "Vagao (240cm)", MaxWidth: 240, IsBuiltIn: true},
	{Type: VehicleVagao2m70, Description: "Vagao (270cm)", MaxWidth: 270, IsBuiltIn: true},
	{Type: VehicleVagao3m, Description: "Vagao (300cm)", MaxWidth: 300, IsBuiltIn: true},
}

// GetVehicle returns a built-in vehicle by type, or the carreta if not found.
func GetVehicle(t VehicleType) Vehicle {
	for _, v := range Vehicles {
		if v.Type == t {
			return v
		}
	}
	return Vehicles[0]
}

// FindVehicle looks a vehicle up in the built-in table followed by custom.
func FindVehicle(t VehicleType, custom []Vehicle) (Vehicle, bool) {
	for _, v := range Vehicles {
		if v.Type == t {
			return v, true
		}
	}
	for _, v := range custom {
		if v.Type == t {
			return v, true
		}
	}
	return Vehicle{}, false
}

// GetVehicleNames returns the names of all built-in vehicles.
func GetVehicleNames() []string {
	var names []string
	for _, v := range Vehicles {
		names = append(names, string(v.Type))
	}
	return names
}

// LoadSettings holds the loading configuration for one calculation.
type LoadSettings struct {
	VehicleType       VehicleType `json:"vehicle_type"`
	MaxWidth          float64     `json:"max_width"`           // Usable vehicle width in cm
	FixedGap          float64     `json:"fixed_gap"`           // Mandatory spacing between slots in cm, 0 = none
	WoodHeight        float64     `json:"wood_height"`         // Support timber thickness per layer in cm
	EnableHeightLimit bool        `json:"enable_height_limit"` // Block loads above MaxHeightLimit
	MaxHeightLimit    float64     `json:"max_height_limit"`    // cm
}

// Validate reports settings the engine cannot work with.
func (s LoadSettings) Validate() error {
	switch {
	case s.MaxWidth <= 0:
		return fmt.Errorf("max width must be positive, got %g", s.MaxWidth)
	case s.FixedGap < 0:
		return fmt.Errorf("fixed gap must not be negative, got %g", s.FixedGap)
	case s.WoodHeight < 0:
		return fmt.Errorf("wood height must not be negative, got %g", s.WoodHeight)
	case s.EnableHeightLimit && s.MaxHeightLimit <= 0:
		return fmt.Errorf("height limit must be positive when enabled, got %g", s.MaxHeightLimit)
	}
	return nil
}

// UseVehicle sets the vehicle type and its max width.
func (s *LoadSettings) UseVehicle(v Vehicle) {
	s.VehicleType = v.Type
	s.MaxWidth = v.MaxWidth
}

// AllVehicles returns the built-in vehicles followed by custom ones.
func AllVehicles(custom []Vehicle) []Vehicle {
	all := make([]Vehicle, 0, len(Vehicles)+len(custom))
	all = append(all, Vehicles...)
	return append(all, custom...)
}

func DefaultSettings() LoadSettings {
	v := GetVehicle(VehicleCarreta)
	return LoadSettings{
		VehicleType:       v.Type,
		MaxWidth:          v.MaxWidth,
		FixedGap:          0,
		WoodHeight:        8.5,
		EnableHeightLimit: true,
		MaxHeightLimit:    350,
	}
}
