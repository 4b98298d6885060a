package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new load plans
	DefaultVehicle           VehicleType `json:"default_vehicle" toml:"default_vehicle"`
	DefaultFixedGap          float64     `json:"default_fixed_gap" toml:"default_fixed_gap"`
	DefaultWoodHeight        float64     `json:"default_wood_height" toml:"default_wood_height"`
	DefaultEnableHeightLimit bool        `json:"default_enable_height_limit" toml:"default_enable_height_limit"`
	DefaultMaxHeightLimit    float64     `json:"default_max_height_limit" toml:"default_max_height_limit"`

	// Application preferences
	CatalogPath    string   `json:"catalog_path" toml:"catalog_path"` // Custom beam catalog (YAML), empty = built-in only
	ServerAddr     string   `json:"server_addr" toml:"server_addr"`
	RecentProjects []string `json:"recent_projects" toml:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultVehicle:           defaults.VehicleType,
		DefaultFixedGap:          defaults.FixedGap,
		DefaultWoodHeight:        defaults.WoodHeight,
		DefaultEnableHeightLimit: defaults.EnableHeightLimit,
		DefaultMaxHeightLimit:    defaults.MaxHeightLimit,
		ServerAddr:               ":8080",
		RecentProjects:           []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a LoadSettings struct.
// This is used when creating a new plan so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *LoadSettings) {
	s.UseVehicle(GetVehicle(c.DefaultVehicle))
	s.FixedGap = c.DefaultFixedGap
	s.WoodHeight = c.DefaultWoodHeight
	s.EnableHeightLimit = c.DefaultEnableHeightLimit
	s.MaxHeightLimit = c.DefaultMaxHeightLimit
}

// AddRecentProject moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
