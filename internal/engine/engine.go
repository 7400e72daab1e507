// Package engine runs motif analyses: it loads reference tables, scans annotation
// files, ranks the activities adjacent to the target marker and writes reports.
package engine

import (
	"log"

	"github.com/gcbaptista/cog-motif-finder/internal/jobs"
	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/services"
)

// DefaultMaxWorkers bounds concurrent background analyses.
const DefaultMaxWorkers = 2

// Options configures an Engine.
type Options struct {
	MaxWorkers int                   // concurrent background analyses; <= 0 selects DefaultMaxWorkers
	Catalog    model.ActivityCatalog // activity descriptions; nil selects the default catalog
}

// Engine runs analyses synchronously or as background jobs.
// It implements services.AsyncAnalyzer, services.JobManager and services.Catalog.
type Engine struct {
	catalog    model.ActivityCatalog
	references *referenceCache
	jobManager *jobs.Manager
}

var (
	_ services.AsyncAnalyzer = (*Engine)(nil)
	_ services.JobManager    = (*Engine)(nil)
	_ services.Catalog       = (*Engine)(nil)
)

// NewEngine creates an engine and starts its job manager.
func NewEngine(opts Options) *Engine {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = DefaultMaxWorkers
	}
	if opts.Catalog == nil {
		opts.Catalog = model.DefaultActivityCatalog()
	}

	e := &Engine{
		catalog:    opts.Catalog,
		references: newReferenceCache(),
		jobManager: jobs.NewManager(opts.MaxWorkers),
	}
	e.jobManager.Start()
	log.Printf("Engine ready with %d activity categories", len(e.catalog))
	return e
}

// Stop cancels background analyses and waits for them to return.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

// ActivityCatalog returns the activity descriptions used in reports.
func (e *Engine) ActivityCatalog() model.ActivityCatalog {
	catalog := make(model.ActivityCatalog, len(e.catalog))
	for code, desc := range e.catalog {
		catalog[code] = desc
	}
	return catalog
}

// FilterCatalog returns the selectable filter fields.
func (e *Engine) FilterCatalog() services.FilterCatalog {
	return services.FilterCatalogFromModel()
}

// GetJob retrieves a background analysis by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns background analyses, optionally filtered by status.
func (e *Engine) ListJobs(status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(status)
}

// CancelJob stops a pending or running analysis.
func (e *Engine) CancelJob(jobID string) error {
	return e.jobManager.CancelJob(jobID)
}

// GetMetrics returns job performance metrics.
func (e *Engine) GetMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the share of finished jobs that succeeded.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of pending or running analyses.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
