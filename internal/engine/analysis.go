package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/index"
	"github.com/gcbaptista/cog-motif-finder/internal/filtering"
	"github.com/gcbaptista/cog-motif-finder/internal/persistence"
	"github.com/gcbaptista/cog-motif-finder/internal/ranking"
	"github.com/gcbaptista/cog-motif-finder/internal/scanning"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// ProgressFunc receives the step reached out of total with a short message.
type ProgressFunc func(current, total int, message string)

func noProgress(int, int, string) {}

// Analyze computes the report for settings without writing any file.
func (e *Engine) Analyze(ctx context.Context, settings config.RunSettings) (*model.AnalysisReport, error) {
	return e.analyze(ctx, settings, noProgress)
}

// Run computes the report and writes the occurrence and activity reports into
// the output directory. Either both files are written or neither is.
func (e *Engine) Run(ctx context.Context, settings config.RunSettings) (*model.AnalysisReport, error) {
	return e.run(ctx, settings, noProgress)
}

func (e *Engine) run(ctx context.Context, settings config.RunSettings, progress ProgressFunc) (*model.AnalysisReport, error) {
	settings.ApplyDefaults()
	report, err := e.analyze(ctx, settings, progress)
	if err != nil {
		return nil, err
	}

	files, err := RenderReports(settings, report)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	written, err := persistence.WriteReports(settings.OutputDir, files)
	if err != nil {
		return nil, fmt.Errorf("failed to write reports: %w", err)
	}
	report.OutputFiles = written
	for _, path := range written {
		log.Printf("Wrote %s", path)
	}
	return report, nil
}

// RenderReports renders both report files of a run in memory.
func RenderReports(settings config.RunSettings, report *model.AnalysisReport) ([]persistence.ReportFile, error) {
	occurrences, err := persistence.RenderOccurrenceReport(report.Occurrences)
	if err != nil {
		return nil, fmt.Errorf("failed to render occurrence report: %w", err)
	}
	activities, err := persistence.RenderActivityReport(report.Activities)
	if err != nil {
		return nil, fmt.Errorf("failed to render activity report: %w", err)
	}
	return []persistence.ReportFile{
		{Name: settings.OccurrenceReportName(), Content: occurrences},
		{Name: settings.ActivityReportName(), Content: activities},
	}, nil
}

func (e *Engine) analyze(ctx context.Context, settings config.RunSettings, progress ProgressFunc) (*model.AnalysisReport, error) {
	startTime := time.Now()
	settings.ApplyDefaults()
	if err := settings.Err(); err != nil {
		return nil, err
	}

	criteria, err := criteriaFrom(settings)
	if err != nil {
		return nil, err
	}

	files := settings.InputFiles()
	steps := len(files) + 2

	progress(0, steps, "Loading reference tables")
	refs, err := e.loadReferences(settings.TaxonomyFile, settings.HabitatFile, settings.ActivityFile, criteria)
	if err != nil {
		return nil, err
	}

	var evaluator *filtering.Evaluator
	if !criteria.Empty() {
		evaluator, err = filtering.NewEvaluator(criteria, refs.taxonomy, refs.habitat)
		if err != nil {
			return nil, err
		}
	}

	progress(1, steps, fmt.Sprintf("Scanning %d annotation files", len(files)))
	opts := scanning.Options{
		MotifLength:  settings.MotifLength,
		TargetMarker: settings.TargetMarker,
		Strict:       settings.Strict,
	}
	occurrences, stats, err := scanFiles(ctx, opts, evaluator, files, func(done int) {
		progress(1+done, steps, fmt.Sprintf("Scanned %d of %d annotation files", done, len(files)))
	})
	if err != nil {
		return nil, err
	}

	buckets := index.BuildBuckets(occurrences, settings.MinGenomes)
	ranker := ranking.NewRanker(refs.activity, e.catalog, settings.TopActivities)
	summary, err := ranker.Rank(settings.MotifLength, settings.TargetMarker, buckets)
	if err != nil {
		return nil, err
	}
	progress(steps, steps, "Ranked adjacent activities")

	report := &model.AnalysisReport{
		RunID:        uuid.New().String(),
		MotifLength:  settings.MotifLength,
		MinGenomes:   settings.MinGenomes,
		TargetMarker: settings.TargetMarker,
		Occurrences:  buckets.Groups(),
		Activities:   summary,
		Stats:        stats,
	}
	log.Printf("Analysis %s for %s finished in %v: %d lines, %d distinct motifs, %d retained",
		report.RunID, settings.TargetMarker, time.Since(startTime), stats.LinesRead, stats.DistinctMotifs, buckets.Len())
	return report, nil
}

func criteriaFrom(settings config.RunSettings) (filtering.Criteria, error) {
	taxonomy, err := settings.TaxonomyCriteria()
	if err != nil {
		return filtering.Criteria{}, err
	}
	habitat, err := settings.HabitatCriteria()
	if err != nil {
		return filtering.Criteria{}, err
	}
	return filtering.Criteria{Taxonomy: taxonomy, Habitat: habitat}, nil
}

// scanFiles scans each file with its own scanner, concurrently, and merges the
// per-file indexes in file order so discovery order matches a sequential scan.
func scanFiles(ctx context.Context, opts scanning.Options, evaluator *filtering.Evaluator, files []string, scanned func(done int)) (*index.OccurrenceIndex, model.ScanStats, error) {
	scanners := make([]*scanning.Scanner, len(files))
	for i := range files {
		s, err := scanning.NewScanner(opts, evaluator)
		if err != nil {
			return nil, model.ScanStats{}, err
		}
		scanners[i] = s
	}

	var mu sync.Mutex
	done := 0
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := scanners[i].ScanFile(path); err != nil {
				return err
			}
			mu.Lock()
			done++
			scanned(done)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, model.ScanStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, model.ScanStats{}, err
	}

	merged := index.NewOccurrenceIndex()
	var stats model.ScanStats
	for _, s := range scanners {
		merged.Merge(s.Index())
		stats = addStats(stats, s.Stats())
	}
	stats.DistinctMotifs = merged.Len()
	return merged, stats, nil
}

func addStats(a, b model.ScanStats) model.ScanStats {
	return model.ScanStats{
		FilesScanned:    a.FilesScanned + b.FilesScanned,
		LinesRead:       a.LinesRead + b.LinesRead,
		MalformedLines:  a.MalformedLines + b.MalformedLines,
		ShortLines:      a.ShortLines + b.ShortLines,
		RejectedLines:   a.RejectedLines + b.RejectedLines,
		AcceptedWindows: a.AcceptedWindows + b.AcceptedWindows,
	}
}
