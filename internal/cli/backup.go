package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/project"
)

// backupCommand creates the backup command. A backup bundles the config,
// custom catalog, custom vehicles and templates into one JSON file.
func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore all configuration data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write all configuration data to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv()
			if err != nil {
				return err
			}
			custom, err := project.LoadCatalog(c.catalogPath(e.config))
			if err != nil {
				return err
			}
			templates, err := project.LoadTemplates(c.templatesPath())
			if err != nil {
				return err
			}

			backup := project.BackupData{
				Config:    e.config,
				Catalog:   custom,
				Vehicles:  e.vehicles,
				Templates: templates,
			}
			if err := project.ExportAllData(args[0], backup); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Backed up %d beams, %d vehicles, %d templates",
				len(custom.Beams), len(e.vehicles), len(templates.Templates))
			printFile(out, args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore [file]",
		Short: "Restore configuration data from a backup file",
		Long: `Restore configuration data from a backup file. The files next to the
config file (config.toml, catalog.yaml, vehicles.json, templates.json) are
overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			// Restored catalog lives next to the config, whatever the
			// backed-up config pointed at.
			backup.Config.CatalogPath = ""
			if err := project.RestoreAllData(c.configDir(), backup); err != nil {
				return fmt.Errorf("restore %s: %w", args[0], err)
			}

			printSuccess(cmd.OutOrStdout(), "Restored backup from %s (version %s)", backup.CreatedAt, backup.Version)
			printFile(cmd.OutOrStdout(), c.configDir())
			return nil
		},
	})

	return cmd
}
