// Package cli implements the beamload command-line interface.
package cli

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/piwi3910/BeamLoad/internal/project"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and next-step hints.
	appName = "beamload"

	// recentProjectsLimit caps the recent project list kept in the config.
	recentProjectsLimit = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the TOML config file. Custom catalog, vehicles and
	// templates live next to it.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		ConfigPath: project.DefaultConfigPath(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "BeamLoad plans steel beam loads for trucks and wagons",
		Long: `BeamLoad arranges steel beams into stacked layers on a transport surface,
respecting the vehicle width, the shim tolerance inside each layer and the
pyramid rule between layers, and refuses loads above the height limit.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "config file (TOML)")

	root.AddCommand(c.calculateCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.vehiclesCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.backupCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

func (c *CLI) configDir() string {
	return filepath.Dir(c.ConfigPath)
}

func (c *CLI) vehiclesPath() string {
	return filepath.Join(c.configDir(), "vehicles.json")
}

func (c *CLI) templatesPath() string {
	return filepath.Join(c.configDir(), "templates.json")
}

// catalogPath returns the custom catalog file: the config entry when set,
// otherwise catalog.yaml next to the config file.
func (c *CLI) catalogPath(config model.AppConfig) string {
	if config.CatalogPath != "" {
		return config.CatalogPath
	}
	return filepath.Join(c.configDir(), "catalog.yaml")
}

// =============================================================================
// Environment
// =============================================================================

// env is the configuration every command starts from.
type env struct {
	config   model.AppConfig
	catalog  model.BeamCatalog
	vehicles []model.Vehicle // custom only
}

// loadEnv reads the config file, the merged beam catalog and the custom
// vehicles. Missing files fall back to built-in defaults.
func (c *CLI) loadEnv() (env, error) {
	config, err := project.LoadAppConfig(c.ConfigPath)
	if err != nil {
		return env{}, err
	}
	catalog, err := project.LoadMergedCatalog(c.catalogPath(config))
	if err != nil {
		return env{}, err
	}
	vehicles, err := project.LoadCustomVehicles(c.vehiclesPath())
	if err != nil {
		return env{}, err
	}
	c.Logger.Debug("loaded config", "path", c.ConfigPath, "beams", len(catalog.Beams), "custom_vehicles", len(vehicles))
	return env{config: config, catalog: catalog, vehicles: vehicles}, nil
}

// defaultSettings returns the settings new plans start from. A custom
// default vehicle is honoured when it exists.
func (e env) defaultSettings() model.LoadSettings {
	settings := model.DefaultSettings()
	e.config.ApplyToSettings(&settings)
	if v, ok := model.FindVehicle(e.config.DefaultVehicle, e.vehicles); ok {
		settings.UseVehicle(v)
	}
	return settings
}
