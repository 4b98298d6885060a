package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/piwi3910/BeamLoad/internal/project"
)

// templatesCommand creates the templates command. Templates are load lists
// with settings that ship on a recurring schedule.
func (c *CLI) templatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and manage load templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			store, err := project.LoadTemplates(c.templatesPath())
			if err != nil {
				return err
			}
			if len(store.Templates) == 0 {
				printInfo(out, "No templates saved")
				return nil
			}

			printTitle(out, "Templates")
			rows := make([][]string, 0, len(store.Templates))
			for _, t := range store.Templates {
				pieces := 0
				for _, it := range t.Items {
					pieces += it.Quantity
				}
				rows = append(rows, []string{t.ID, t.Name, fmt.Sprint(pieces), string(t.Settings.VehicleType), t.Description})
			}
			printTable(out, []string{"ID", "Name", "Pieces", "Vehicle", "Description"}, rows)
			return nil
		},
	}

	cmd.AddCommand(c.templatesSaveCommand())
	cmd.AddCommand(c.templatesUseCommand())
	cmd.AddCommand(c.templatesRemoveCommand())

	return cmd
}

func (c *CLI) templatesSaveCommand() *cobra.Command {
	var (
		settings    settingsFlags
		description string
	)

	cmd := &cobra.Command{
		Use:   "save [name] [file]",
		Short: "Save a load list as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			e, err := c.loadEnv()
			if err != nil {
				return err
			}
			proj, warnings, err := loadPlan(args[1], e)
			for _, w := range warnings {
				printWarning(out, "%s", w)
			}
			if err != nil {
				return err
			}
			if err := settings.apply(cmd, &proj.Settings, e.vehicles); err != nil {
				return err
			}

			store, err := project.LoadTemplates(c.templatesPath())
			if err != nil {
				return err
			}
			if existing := store.FindByName(args[0]); existing != nil {
				return fmt.Errorf("template %q already exists (id %s)", args[0], existing.ID)
			}

			t := model.NewLoadTemplate(args[0], description, proj.Items, proj.Settings)
			store.Add(t)
			if err := project.SaveTemplates(c.templatesPath(), store); err != nil {
				return err
			}

			printSuccess(out, "Saved template %s (id %s)", t.Name, t.ID)
			printFile(out, c.templatesPath())
			return nil
		},
	}

	settings.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "template description")

	return cmd
}

func (c *CLI) templatesUseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "use [name-or-id]",
		Short: "Create a plan file from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(c.templatesPath())
			if err != nil {
				return err
			}
			t := findTemplate(&store, args[0])
			if t == nil {
				return fmt.Errorf("no template %q", args[0])
			}

			path := output
			if path == "" {
				path = t.Name + project.FileExtension
			}
			if err := project.SaveProject(path, t.ToProject(t.Name)); err != nil {
				return fmt.Errorf("write plan %s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Created plan from template %s", t.Name)
			printFile(out, path)
			printDetail(out, "Next: %s calculate %s", appName, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "plan file (default: <name>"+project.FileExtension+")")

	return cmd
}

func (c *CLI) templatesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name-or-id]",
		Short: "Remove a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(c.templatesPath())
			if err != nil {
				return err
			}
			t := findTemplate(&store, args[0])
			if t == nil {
				return fmt.Errorf("no template %q", args[0])
			}
			name := t.Name
			store.Remove(t.ID)

			if err := project.SaveTemplates(c.templatesPath(), store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed template %s", name)
			return nil
		},
	}
}

// findTemplate looks a template up by ID first, then by name.
func findTemplate(store *model.TemplateStore, ref string) *model.LoadTemplate {
	if t := store.FindByID(ref); t != nil {
		return t
	}
	return store.FindByName(ref)
}
