package cli

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loading engine over HTTP",
		Long: `Serve the loading engine over HTTP.

Routes: GET /api/health, /api/catalog, /api/vehicles and
POST /api/calculate, /api/compare, /api/chart. Requests use the configured
defaults unless they carry settings or a vehicle type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && e.config.ServerAddr != "" {
				addr = e.config.ServerAddr
			}

			if c.Logger.GetLevel() > log.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(e.catalog, e.vehicles, e.defaultSettings(), c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
