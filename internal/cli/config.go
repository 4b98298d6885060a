package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/piwi3910/BeamLoad/internal/project"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			e, err := c.loadEnv()
			if err != nil {
				return err
			}
			s := e.defaultSettings()

			printTitle(out, "Configuration")
			printKeyValue(out, "Config file", c.ConfigPath)
			printKeyValue(out, "Catalog", c.catalogPath(e.config))
			printKeyValue(out, "Vehicles", c.vehiclesPath())
			printKeyValue(out, "Templates", c.templatesPath())
			printNewline(out)
			printKeyValue(out, "Vehicle", fmt.Sprintf("%s (%.0f cm)", s.VehicleType, s.MaxWidth))
			printKeyValue(out, "Fixed gap", fmt.Sprintf("%.1f cm", s.FixedGap))
			printKeyValue(out, "Wood height", fmt.Sprintf("%.1f cm", s.WoodHeight))
			printKeyValue(out, "Height limit", heightLimitText(s))
			printKeyValue(out, "Server", e.config.ServerAddr)
			if len(e.config.RecentProjects) > 0 {
				printKeyValue(out, "Recent", strings.Join(e.config.RecentProjects, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.ConfigPath)
			}
			if err := project.SaveAppConfig(c.ConfigPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote default configuration")
			printFile(cmd.OutOrStdout(), c.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func heightLimitText(s model.LoadSettings) string {
	if !s.EnableHeightLimit {
		return "disabled"
	}
	return fmt.Sprintf("%.0f cm", s.MaxHeightLimit)
}
