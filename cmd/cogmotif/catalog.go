package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/services"
)

func newCatalogCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the activity codes and their descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := FormatCatalog(model.DefaultActivityCatalog(), OutputFormat(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(FormatHuman), "Output format (human, json, yaml)")
	return cmd
}

func newFiltersCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the taxonomy and habitat filter fields",
		Long: `List the filter fields accepted by --taxa-filter and --habitat-filter.
A field may be given by number or by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := FormatFilters(services.FilterCatalogFromModel(), OutputFormat(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(FormatHuman), "Output format (human, json, yaml)")
	return cmd
}
