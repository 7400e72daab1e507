package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/cog-motif-finder/api"
	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/internal/engine"
)

func newServeCmd() *cobra.Command {
	var (
		configFile string
		port       string
		maxWorkers int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over HTTP",
		Example: `  cogmotif serve --port 9000
  cogmotif serve --config server.yaml --max-workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}

			eng := engine.NewEngine(engine.Options{MaxWorkers: maxWorkers})
			defer eng.Stop()

			router := gin.Default()
			api.SetupRoutes(router, eng, base)

			log.Printf("Reading annotations from %v, writing reports to %s", base.InputFiles(), base.OutputDir)
			log.Printf("Starting server on port %s...", port)
			return router.Run(":" + port)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Settings file (YAML, JSON or TOML)")
	flags.StringVar(&port, "port", "8080", "Port to run the server on")
	flags.IntVar(&maxWorkers, "max-workers", engine.DefaultMaxWorkers, "Maximum concurrent background analyses")
	addLocationFlags(flags)
	return cmd
}
