// Package config provides the settings of a motif-discovery run.
// It defines input locations, motif parameters, filter criteria and output options.
package config

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// Default input and output locations, relative to the working directory.
const (
	DefaultPlasmidFile   = "cog_words_plasmid.txt"
	DefaultBacteriaFile  = "cog_words_bac.txt"
	DefaultTaxonomyFile  = "taxa.txt"
	DefaultHabitatFile   = "bactTaxa_Habitat.txt"
	DefaultActivityFile  = "COG_INFO_TABLE.txt"
	DefaultOutputDir     = "."
	DefaultTopActivities = 3
)

// FilterSpec is a filter criterion as written by a user: a field selector (menu
// number or name) and the expected value.
type FilterSpec struct {
	Field string `json:"field" mapstructure:"field"` // e.g. "Phylum" or "1"
	Value string `json:"value" mapstructure:"value"` // e.g. "Proteobacteria"
}

func (f FilterSpec) String() string { return f.Field + "=" + f.Value }

// ParseFilterSpec parses the "Field=value" form used on the command line.
func ParseFilterSpec(s string) (FilterSpec, error) {
	field, value, found := strings.Cut(s, "=")
	if !found || strings.TrimSpace(field) == "" {
		return FilterSpec{}, errors.NewValidationError("filter", fmt.Sprintf("'%s' is not in Field=value form", s))
	}
	return FilterSpec{Field: strings.TrimSpace(field), Value: value}, nil
}

// RunSettings contains every option of a single analysis run.
type RunSettings struct {
	MinGenomes   int    `json:"min_genomes" mapstructure:"min_genomes"`     // q: minimum number of distinct genomes a motif must occur in
	MotifLength  int    `json:"motif_length" mapstructure:"motif_length"`   // d: number of markers per motif
	TargetMarker string `json:"target_marker" mapstructure:"target_marker"` // cogx: marker every motif must contain

	PlasmidFile  string `json:"plasmid_file" mapstructure:"plasmid_file"`
	BacteriaFile string `json:"bacteria_file" mapstructure:"bacteria_file"`
	TaxonomyFile string `json:"taxonomy_file" mapstructure:"taxonomy_file"`
	HabitatFile  string `json:"habitat_file" mapstructure:"habitat_file"`
	ActivityFile string `json:"activity_file" mapstructure:"activity_file"`
	OutputDir    string `json:"output_dir" mapstructure:"output_dir"`

	Strict        bool `json:"strict" mapstructure:"strict"`                 // malformed annotation lines abort the run
	TopActivities int  `json:"top_activities" mapstructure:"top_activities"` // number of ranked activities reported

	TaxonomyFilters []FilterSpec `json:"taxonomy_filters" mapstructure:"taxonomy_filters"`
	HabitatFilters  []FilterSpec `json:"habitat_filters" mapstructure:"habitat_filters"`
}

// ApplyDefaults fills unset locations and options with their defaults.
func (s *RunSettings) ApplyDefaults() {
	if s.PlasmidFile == "" {
		s.PlasmidFile = DefaultPlasmidFile
	}
	if s.BacteriaFile == "" {
		s.BacteriaFile = DefaultBacteriaFile
	}
	if s.TaxonomyFile == "" {
		s.TaxonomyFile = DefaultTaxonomyFile
	}
	if s.HabitatFile == "" {
		s.HabitatFile = DefaultHabitatFile
	}
	if s.ActivityFile == "" {
		s.ActivityFile = DefaultActivityFile
	}
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir
	}
	if s.TopActivities <= 0 {
		s.TopActivities = DefaultTopActivities
	}

	// Initialize empty slices if nil so settings serialize as [] rather than null
	if s.TaxonomyFilters == nil {
		s.TaxonomyFilters = []FilterSpec{}
	}
	if s.HabitatFilters == nil {
		s.HabitatFilters = []FilterSpec{}
	}
}

// Validate returns a message for every problem found; an empty slice means the
// settings are usable.
func (s *RunSettings) Validate() []string {
	var problems []string

	if s.MinGenomes < 1 {
		problems = append(problems, fmt.Sprintf("min_genomes must be at least 1, got %d", s.MinGenomes))
	}
	if s.MotifLength < 1 {
		problems = append(problems, fmt.Sprintf("motif_length must be at least 1, got %d", s.MotifLength))
	}
	switch strings.TrimSpace(s.TargetMarker) {
	case "":
		problems = append(problems, "target_marker is required")
	case model.UnknownMarker:
		problems = append(problems, "target_marker cannot be the unknown marker '"+model.UnknownMarker+"'")
	}
	if strings.TrimSpace(s.PlasmidFile) == "" && strings.TrimSpace(s.BacteriaFile) == "" {
		problems = append(problems, "at least one of plasmid_file or bacteria_file is required")
	}

	if _, err := s.TaxonomyCriteria(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := s.HabitatCriteria(); err != nil {
		problems = append(problems, err.Error())
	}

	return problems
}

// Err folds the result of Validate into a single error, or nil.
func (s *RunSettings) Err() error {
	problems := s.Validate()
	if len(problems) == 0 {
		return nil
	}
	return errors.NewValidationError("", strings.Join(problems, "; "))
}

// InputFiles returns the annotation files to scan, plasmid first.
func (s *RunSettings) InputFiles() []string {
	files := make([]string, 0, 2)
	for _, f := range []string{s.PlasmidFile, s.BacteriaFile} {
		if strings.TrimSpace(f) != "" {
			files = append(files, f)
		}
	}
	return files
}

// TaxonomyCriteria resolves the taxonomy filter specs. A field may be chosen only once.
func (s *RunSettings) TaxonomyCriteria() ([]model.TaxonomyCriterion, error) {
	criteria := make([]model.TaxonomyCriterion, 0, len(s.TaxonomyFilters))
	seen := make(map[model.TaxonomyField]bool)
	for _, spec := range s.TaxonomyFilters {
		field, err := model.ParseTaxonomyField(spec.Field)
		if err != nil {
			return nil, err
		}
		if seen[field] {
			return nil, errors.NewDuplicateFilterError(string(model.CategoryTaxonomy), field.String())
		}
		seen[field] = true

		c, err := model.NewTaxonomyCriterion(field, spec.Value)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

// HabitatCriteria resolves the habitat filter specs. A field may be chosen only once.
func (s *RunSettings) HabitatCriteria() ([]model.HabitatCriterion, error) {
	criteria := make([]model.HabitatCriterion, 0, len(s.HabitatFilters))
	seen := make(map[model.HabitatField]bool)
	for _, spec := range s.HabitatFilters {
		field, err := model.ParseHabitatField(spec.Field)
		if err != nil {
			return nil, err
		}
		if seen[field] {
			return nil, errors.NewDuplicateFilterError(string(model.CategoryHabitat), field.String())
		}
		seen[field] = true

		c, err := model.NewHabitatCriterion(field, spec.Value)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

// OccurrenceReportName is the file name of the motif-occurrence report.
func (s *RunSettings) OccurrenceReportName() string {
	return fmt.Sprintf("final_cogs_output_length%d.json", s.MotifLength)
}

// ActivityReportName is the file name of the activity-summary report.
func (s *RunSettings) ActivityReportName() string {
	return fmt.Sprintf("final_suspected_%s_activities_output.json", s.TargetMarker)
}
