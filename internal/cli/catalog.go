package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/project"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the beam catalog",
		Long: `List the beam catalog: the built-in W profiles with the custom catalog
(YAML) merged over them. Use --export to write the merged catalog as a
starting point for a custom one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			e, err := c.loadEnv()
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := project.SaveCatalog(exportPath, e.catalog); err != nil {
					return fmt.Errorf("export catalog: %w", err)
				}
				printSuccess(out, "Exported %d beams", len(e.catalog.Beams))
				printFile(out, exportPath)
				return nil
			}

			printTitle(out, "Beam catalog")
			rows := make([][]string, 0, len(e.catalog.Beams))
			for _, b := range e.catalog.Beams {
				rows = append(rows, []string{
					b.ID,
					b.Bitola,
					fmt.Sprintf("%.1f", b.Width),
					fmt.Sprintf("%.1f", b.Height),
					fmt.Sprintf("%.4f", b.Weight12m),
				})
			}
			printTable(out, []string{"ID", "Profile", "Width", "Height", "t/12m"}, rows)
			printDetail(out, "Custom catalog: %s", c.catalogPath(e.config))
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write the merged catalog to a YAML file")

	return cmd
}
