package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/internal/engine"
	"github.com/gcbaptista/cog-motif-finder/internal/prompt"
)

type runOptions struct {
	configFile     string
	taxaFilters    []string
	habitatFilters []string
	interactive    bool
	format         string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Find conserved motifs around a target COG and rank its likely activities",
		Long: `Run one analysis and write two reports into the output directory:
  final_cogs_output_length{d}.json                motifs grouped by genome count
  final_suspected_{cogx}_activities_output.json   top activities of adjacent markers

Missing parameters are asked for interactively when stdin is a terminal.`,
		Example: `  cogmotif run -q 2 -d 3 -x COG0001
  cogmotif run -q 2 -d 3 -x COG0001 --taxa-filter Phylum=Proteobacteria --habitat-filter Habitat=soil
  cogmotif run --config run.yaml --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntP("min-genomes", "q", 0, "Minimum number of distinct genomes a motif must occur in")
	flags.IntP("motif-length", "d", 0, "Number of adjacent markers per motif")
	flags.StringP("target-marker", "x", "", "Marker every motif must contain, e.g. COG0001")
	flags.Bool("strict", false, "Fail on malformed annotation lines instead of skipping them")
	flags.Int("top-activities", config.DefaultTopActivities, "Number of ranked activities to report")
	addLocationFlags(flags)

	flags.StringVar(&opts.configFile, "config", "", "Settings file (YAML, JSON or TOML)")
	flags.StringArrayVar(&opts.taxaFilters, "taxa-filter", nil, "Taxonomy filter as Field=value (repeatable)")
	flags.StringArrayVar(&opts.habitatFilters, "habitat-filter", nil, "Habitat filter as Field=value (repeatable)")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Ask for parameters and filters interactively")
	flags.StringVar(&opts.format, "format", string(FormatHuman), "Summary format (human, json, yaml)")
	return cmd
}

func runAnalysis(cmd *cobra.Command, opts *runOptions) error {
	settings, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	for _, raw := range opts.taxaFilters {
		spec, err := config.ParseFilterSpec(raw)
		if err != nil {
			return err
		}
		settings.TaxonomyFilters = append(settings.TaxonomyFilters, spec)
	}
	for _, raw := range opts.habitatFilters {
		spec, err := config.ParseFilterSpec(raw)
		if err != nil {
			return err
		}
		settings.HabitatFilters = append(settings.HabitatFilters, spec)
	}

	if opts.interactive || (missingParameters(settings) && stdinIsTerminal()) {
		builder := prompt.NewBuilder(cmd.InOrStdin(), cmd.OutOrStdout())
		if err := builder.Complete(&settings); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), "\n\n\n")
	}

	eng := engine.NewEngine(engine.Options{MaxWorkers: 1})
	defer eng.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := eng.Run(ctx, settings)
	if err != nil {
		return err
	}

	out, err := FormatReport(report, OutputFormat(opts.format))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func missingParameters(s config.RunSettings) bool {
	return s.MinGenomes < 1 || s.MotifLength < 1 || s.TargetMarker == ""
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
