package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gcbaptista/cog-motif-finder/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cogmotif",
		Short: "cogmotif - conserved COG neighborhood finder",
		Long: `cogmotif scans plasmid and bacterial genome annotations for runs of adjacent
COG markers that contain a target marker, keeps the runs found in enough distinct
genomes, and suggests the target's functional category from the activities of
its neighbors.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("cogmotif version {{.Version}}\n")

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newFiltersCmd())
	return root
}

// addLocationFlags registers the input and output location flags shared by run
// and serve. Their names match the config keys with '-' for '_'.
func addLocationFlags(flags *pflag.FlagSet) {
	flags.String("plasmid-file", config.DefaultPlasmidFile, "Plasmid genome annotation file")
	flags.String("bacteria-file", config.DefaultBacteriaFile, "Bacterial genome annotation file")
	flags.String("taxonomy-file", config.DefaultTaxonomyFile, "Taxonomy reference table (comma separated)")
	flags.String("habitat-file", config.DefaultHabitatFile, "Habitat reference table (semicolon separated)")
	flags.String("activity-file", config.DefaultActivityFile, "Fixed-width COG activity table")
	flags.String("output-dir", config.DefaultOutputDir, "Directory the reports are written to")
}
