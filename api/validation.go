// Package api provides the HTTP surface of the motif finder.
package api

import (
	"strings"

	"github.com/gcbaptista/cog-motif-finder/config"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateJobID validates a job ID path parameter
func ValidateJobID(jobID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if jobID == "" {
		result.AddError("jobId", "Job ID is required")
		return result
	}

	if strings.TrimSpace(jobID) != jobID {
		result.AddError("jobId", "Job ID cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateRunSettings reports every problem in settings, attributed to the
// request field it came from.
func ValidateRunSettings(settings *config.RunSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	var taxonomyProblem, habitatProblem string
	if _, err := settings.TaxonomyCriteria(); err != nil {
		taxonomyProblem = err.Error()
	}
	if _, err := settings.HabitatCriteria(); err != nil {
		habitatProblem = err.Error()
	}

	for _, problem := range settings.Validate() {
		switch problem {
		case taxonomyProblem:
			result.AddError("taxonomy_filters", problem)
		case habitatProblem:
			result.AddError("habitat_filters", problem)
		default:
			result.AddError(fieldOf(problem), problem)
		}
	}
	return result
}

var settingFields = []string{"min_genomes", "motif_length", "target_marker"}

func fieldOf(problem string) string {
	for _, f := range settingFields {
		if strings.HasPrefix(problem, f) {
			return f
		}
	}
	return "input_files"
}
