package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/piwi3910/BeamLoad/internal/project"
)

// vehiclesCommand creates the vehicles command with its add and remove
// subcommands. Without a subcommand it lists every vehicle.
func (c *CLI) vehiclesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List and manage vehicle profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			e, err := c.loadEnv()
			if err != nil {
				return err
			}

			defaults := e.defaultSettings()
			printTitle(out, "Vehicles")
			var rows [][]string
			for _, v := range model.AllVehicles(e.vehicles) {
				kind := "custom"
				if v.IsBuiltIn {
					kind = "built-in"
				}
				marker := ""
				if v.Type == defaults.VehicleType {
					marker = "default"
				}
				rows = append(rows, []string{string(v.Type), v.Description, fmt.Sprintf("%.0f", v.MaxWidth), kind, marker})
			}
			printTable(out, []string{"Type", "Description", "Width", "Kind", ""}, rows)
			return nil
		},
	}

	cmd.AddCommand(c.vehiclesAddCommand())
	cmd.AddCommand(c.vehiclesRemoveCommand())
	cmd.AddCommand(c.vehiclesExportCommand())
	cmd.AddCommand(c.vehiclesImportCommand())

	return cmd
}

func (c *CLI) vehiclesAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add [type] [width-cm]",
		Short: "Add or replace a custom vehicle profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid width %q: %w", args[1], err)
			}

			vehicles, err := project.LoadCustomVehicles(c.vehiclesPath())
			if err != nil {
				return err
			}

			v := model.Vehicle{Type: model.VehicleType(args[0]), Description: description, MaxWidth: width}
			if v.Description == "" {
				v.Description = fmt.Sprintf("%s (%.0fcm)", args[0], width)
			}
			if err := project.ValidateVehicle(v); err != nil {
				return err
			}

			replaced := false
			for i := range vehicles {
				if vehicles[i].Type == v.Type {
					vehicles[i] = v
					replaced = true
				}
			}
			if !replaced {
				vehicles = append(vehicles, v)
			}

			if err := project.SaveCustomVehicles(c.vehiclesPath(), vehicles); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Saved vehicle %s (%.0f cm)", v.Type, v.MaxWidth)
			printFile(cmd.OutOrStdout(), c.vehiclesPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "display name")

	return cmd
}

func (c *CLI) vehiclesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [type]",
		Short: "Remove a custom vehicle profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicles, err := project.LoadCustomVehicles(c.vehiclesPath())
			if err != nil {
				return err
			}

			kept := vehicles[:0]
			for _, v := range vehicles {
				if string(v.Type) != args[0] {
					kept = append(kept, v)
				}
			}
			if len(kept) == len(vehicles) {
				return fmt.Errorf("no custom vehicle %q", args[0])
			}

			if err := project.SaveCustomVehicles(c.vehiclesPath(), kept); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed vehicle %s", args[0])
			return nil
		},
	}
}

func (c *CLI) vehiclesExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [type] [file]",
		Short: "Write one custom vehicle profile to a file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicles, err := project.LoadCustomVehicles(c.vehiclesPath())
			if err != nil {
				return err
			}
			for _, v := range vehicles {
				if string(v.Type) == args[0] {
					if err := project.ExportVehicle(args[1], v); err != nil {
						return fmt.Errorf("export vehicle: %w", err)
					}
					printSuccess(cmd.OutOrStdout(), "Exported vehicle %s", v.Type)
					printFile(cmd.OutOrStdout(), args[1])
					return nil
				}
			}
			return fmt.Errorf("no custom vehicle %q", args[0])
		},
	}
}

func (c *CLI) vehiclesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Add a vehicle profile exported with 'vehicles export'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := project.ImportVehicle(args[0])
			if err != nil {
				return fmt.Errorf("import vehicle %s: %w", args[0], err)
			}
			vehicles, err := project.LoadCustomVehicles(c.vehiclesPath())
			if err != nil {
				return err
			}
			for _, existing := range vehicles {
				if existing.Type == v.Type {
					return fmt.Errorf("vehicle %q already exists", v.Type)
				}
			}

			if err := project.SaveCustomVehicles(c.vehiclesPath(), append(vehicles, v)); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Imported vehicle %s (%.0f cm)", v.Type, v.MaxWidth)
			return nil
		},
	}
}
