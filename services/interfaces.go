package services

import (
	"context"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/internal/jobs"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// FilterFieldInfo describes one selectable filter column.
type FilterFieldInfo struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Numeric bool   `json:"numeric,omitempty"`
}

// FilterCatalog lists the filter fields of both categories in menu order.
type FilterCatalog struct {
	Taxonomy []FilterFieldInfo `json:"taxonomy"`
	Habitat  []FilterFieldInfo `json:"habitat"`
}

// Analyzer runs motif analyses
type Analyzer interface {
	// Analyze computes the report without touching the output directory.
	Analyze(ctx context.Context, settings config.RunSettings) (*model.AnalysisReport, error)
	// Run computes the report and writes both report files, or neither.
	Run(ctx context.Context, settings config.RunSettings) (*model.AnalysisReport, error)
}

// AsyncAnalyzer extends Analyzer with background execution
type AsyncAnalyzer interface {
	Analyzer
	RunAsync(settings config.RunSettings) (string, error) // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
	CancelJob(jobID string) error
	GetMetrics() jobs.JobMetricsData
	GetJobSuccessRate() float64
	GetCurrentWorkload() int64
}

// Catalog exposes static reference information
type Catalog interface {
	ActivityCatalog() model.ActivityCatalog
	FilterCatalog() FilterCatalog
}

// AnalysisService is everything the HTTP API needs from an engine
type AnalysisService interface {
	AsyncAnalyzer
	JobManager
	Catalog
}

// FilterCatalogFromModel builds the catalog of filter fields.
func FilterCatalogFromModel() FilterCatalog {
	var c FilterCatalog
	for _, f := range model.TaxonomyFields() {
		c.Taxonomy = append(c.Taxonomy, FilterFieldInfo{Number: f.Index(), Name: f.String()})
	}
	for _, f := range model.HabitatFields() {
		c.Habitat = append(c.Habitat, FilterFieldInfo{Number: f.Index(), Name: f.String(), Numeric: f.Numeric()})
	}
	return c
}
