package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// RunAsync validates settings and starts a background run. The returned job ID
// can be polled; the job carries the report once it completes.
func (e *Engine) RunAsync(settings config.RunSettings) (string, error) {
	settings.ApplyDefaults()
	if err := settings.Err(); err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(settings.TargetMarker, map[string]string{
		"operation":    "analysis",
		"min_genomes":  strconv.Itoa(settings.MinGenomes),
		"motif_length": strconv.Itoa(settings.MotifLength),
		"output_dir":   settings.OutputDir,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) (*model.AnalysisReport, error) {
		return e.run(ctx, settings, func(current, total int, message string) {
			e.jobManager.UpdateJobProgress(jobID, current, total, message)
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to start analysis job: %w", err)
	}

	return jobID, nil
}
