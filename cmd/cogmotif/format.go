package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/services"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

func checkFormat(format OutputFormat) error {
	if format != FormatJSON && format != FormatYAML && format != FormatHuman {
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML using the same field names as JSON
func formatYAML(resp interface{}) (string, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return "", fmt.Errorf("failed to decode JSON: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// FormatReport renders the run summary printed after an analysis.
func FormatReport(report *model.AnalysisReport, format OutputFormat) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	switch format {
	case FormatJSON:
		return formatJSON(report)
	case FormatYAML:
		return formatYAML(report)
	}

	var b strings.Builder
	b.WriteString("Result Summary: after going through the adjacent cogs we suspect that those might be the cog's activities\n\n")
	for _, r := range report.Activities.Top {
		fmt.Fprintf(&b, "The number %d most common activity found is: %s\nwith %.1f %% hits\n\n",
			r.Rank, r.Description, r.Percentage)
	}

	s := report.Stats
	fmt.Fprintf(&b, "Scanned %d lines in %d files: %d malformed, %d shorter than %d, %d rejected by filters\n",
		s.LinesRead, s.FilesScanned, s.MalformedLines, s.ShortLines, report.MotifLength, s.RejectedLines)
	retained := 0
	for _, g := range report.Occurrences {
		retained += len(g.Motifs)
	}
	fmt.Fprintf(&b, "%d distinct motifs with %s, %d found in at least %d genomes\n",
		s.DistinctMotifs, report.TargetMarker, retained, report.MinGenomes)
	for _, path := range report.OutputFiles {
		fmt.Fprintf(&b, "Wrote %s\n", path)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// FormatCatalog renders the activity catalog.
func FormatCatalog(catalog model.ActivityCatalog, format OutputFormat) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	switch format {
	case FormatJSON:
		return formatJSON(catalog)
	case FormatYAML:
		return formatYAML(catalog)
	}

	var b strings.Builder
	for _, code := range catalog.Codes() {
		fmt.Fprintf(&b, "%s  %s\n", code, catalog[code])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// FormatFilters renders the filter field menus.
func FormatFilters(catalog services.FilterCatalog, format OutputFormat) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	switch format {
	case FormatJSON:
		return formatJSON(catalog)
	case FormatYAML:
		return formatYAML(catalog)
	}

	var b strings.Builder
	b.WriteString("Taxonomy filters (--taxa-filter):\n")
	for _, f := range catalog.Taxonomy {
		fmt.Fprintf(&b, "  %d: %s\n", f.Number, f.Name)
	}
	b.WriteString("\nHabitat filters (--habitat-filter):\n")
	for _, f := range catalog.Habitat {
		suffix := ""
		if f.Numeric {
			suffix = " (integer)"
		}
		fmt.Fprintf(&b, "  %d: %s%s\n", f.Number, f.Name, suffix)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
