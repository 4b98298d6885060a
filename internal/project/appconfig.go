package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/BeamLoad/internal/model"
)

// DefaultConfigDir is ~/.beamload, or ./.beamload when the home directory
// is unknown. The custom catalog, vehicles and templates live here too.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".beamload")
}

// DefaultConfigPath is config.toml inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// SaveAppConfig writes config as TOML.
func SaveAppConfig(path string, config model.AppConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// LoadAppConfig reads the TOML config at path. A missing file yields
// DefaultAppConfig, and keys missing from the file keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	data, found, err := readFile(path)
	if err != nil {
		return model.AppConfig{}, err
	}
	if found {
		if err := toml.Unmarshal(data, &config); err != nil {
			return model.AppConfig{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
