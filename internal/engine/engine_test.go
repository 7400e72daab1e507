package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	testutil "github.com/gcbaptista/cog-motif-finder/internal/testing"
	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/store"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng := NewEngine(Options{MaxWorkers: 2})
	t.Cleanup(eng.Stop)
	return eng
}

func percentages(summary model.ActivitySummary) map[string]float64 {
	out := make(map[string]float64, len(summary.Top))
	for _, r := range summary.Top {
		out[r.Code] = r.Percentage
	}
	return out
}

func codes(summary model.ActivitySummary) []string {
	out := make([]string, len(summary.Top))
	for i, r := range summary.Top {
		out[i] = r.Code
	}
	return out
}

func TestAnalyze_SingleGenomeThreshold(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	report, err := eng.Analyze(context.Background(), fixture.Settings(1))
	require.NoError(t, err)

	assert.Equal(t, testutil.ExpectedOccurrences(1), report.Occurrences)
	assert.Equal(t, 10, report.Activities.TotalMarkers)
	assert.Equal(t, []string{"E", "H", "K"}, codes(report.Activities))
	assert.Equal(t, map[string]float64{"E": 50, "H": 40, "K": 10}, percentages(report.Activities))
	assert.Equal(t, "METABOLISM Amino acid transport and metabolism", report.Activities.Top[0].Description)

	assert.Equal(t, model.ScanStats{
		FilesScanned:    2,
		LinesRead:       4,
		AcceptedWindows: 5,
		DistinctMotifs:  3,
	}, report.Stats)
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, report.OutputFiles)
	assert.Empty(t, fixture.OutputEntries(t), "Analyze must not write reports")
}

func TestAnalyze_ThresholdDropsRareMotifs(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	report, err := eng.Analyze(context.Background(), fixture.Settings(2))
	require.NoError(t, err)

	assert.Equal(t, testutil.ExpectedOccurrences(2), report.Occurrences)
	assert.Equal(t, 6, report.Activities.TotalMarkers)
	assert.Equal(t, []string{"E", "H"}, codes(report.Activities), "ties keep first-seen order")
	assert.Equal(t, map[string]float64{"E": 50, "H": 50}, percentages(report.Activities))
}

func TestAnalyze_TaxonomyFilter(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	settings := fixture.Settings(2)
	settings.TaxonomyFilters = []config.FilterSpec{{Field: "Phylum", Value: "proteobacteria"}}

	report, err := eng.Analyze(context.Background(), settings)
	require.NoError(t, err)

	assert.Equal(t, []model.OccurrenceGroup{{Count: 2, Motifs: []string{"COG0002 COG0001 COG0003"}}}, report.Occurrences)
	assert.Equal(t, 1, report.Stats.RejectedLines)
	assert.Equal(t, 4, report.Activities.TotalMarkers)
}

func TestAnalyze_HabitatFilter(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	settings := fixture.Settings(1)
	settings.HabitatFilters = []config.FilterSpec{{Field: "Habitat", Value: "SOIL"}}

	report, err := eng.Analyze(context.Background(), settings)
	require.NoError(t, err)

	assert.Equal(t, []model.OccurrenceGroup{
		{Count: 1, Motifs: []string{"COG0002 COG0001 COG0003", "COG0001 COG0003 COG0004"}},
	}, report.Occurrences)
	assert.Equal(t, 2, report.Stats.RejectedLines)
}

func TestAnalyze_FilterTablesLoadedOnlyWhenNeeded(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)
	require.NoError(t, os.Remove(fixture.TaxonomyFile))
	require.NoError(t, os.Remove(fixture.HabitatFile))

	_, err := eng.Analyze(context.Background(), fixture.Settings(1))
	require.NoError(t, err)

	settings := fixture.Settings(1)
	settings.TaxonomyFilters = []config.FilterSpec{{Field: "Genus", Value: "Escherichia"}}
	_, err = eng.Analyze(context.Background(), settings)
	assert.ErrorIs(t, err, errors.ErrReferenceUnavailable)
}

func TestAnalyze_Errors(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name     string
		mutate   func(f *testutil.Fixture, s *config.RunSettings)
		expected error
	}{
		{
			name:     "no motif reaches the threshold",
			mutate:   func(f *testutil.Fixture, s *config.RunSettings) { s.MinGenomes = 4 },
			expected: errors.ErrNoQualifyingMotifs,
		},
		{
			name:     "target never occurs",
			mutate:   func(f *testutil.Fixture, s *config.RunSettings) { s.TargetMarker = "COG9999" },
			expected: errors.ErrNoQualifyingMotifs,
		},
		{
			name: "missing activity table",
			mutate: func(f *testutil.Fixture, s *config.RunSettings) {
				s.ActivityFile = filepath.Join(f.Dir, "absent.txt")
			},
			expected: errors.ErrReferenceUnavailable,
		},
		{
			name: "missing annotation file",
			mutate: func(f *testutil.Fixture, s *config.RunSettings) {
				s.BacteriaFile = filepath.Join(f.Dir, "absent.txt")
			},
			expected: os.ErrNotExist,
		},
		{
			name:     "invalid settings",
			mutate:   func(f *testutil.Fixture, s *config.RunSettings) { s.MotifLength = 0 },
			expected: errors.ErrInvalidInput,
		},
		{
			name: "duplicate filter",
			mutate: func(f *testutil.Fixture, s *config.RunSettings) {
				s.HabitatFilters = []config.FilterSpec{{Field: "Genus", Value: "a"}, {Field: "5", Value: "b"}}
			},
			expected: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := testutil.NewFixture(t)
			settings := fixture.Settings(1)
			tt.mutate(fixture, &settings)

			_, err := eng.Run(context.Background(), settings)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, fixture.OutputEntries(t), "a failed run writes no report")
		})
	}
}

func TestAnalyze_MalformedLines(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)
	testutil.WriteFile(t, fixture.BacteriaFile, testutil.BacteriaContent+"no genome number\tCOG0001\tCOG0002\tCOG0003\t\n")

	report, err := eng.Analyze(context.Background(), fixture.Settings(1))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stats.MalformedLines)
	assert.Equal(t, testutil.ExpectedOccurrences(1), report.Occurrences)

	strict := fixture.Settings(1)
	strict.Strict = true
	_, err = eng.Run(context.Background(), strict)
	assert.ErrorIs(t, err, errors.ErrMalformedLine)
	assert.Empty(t, fixture.OutputEntries(t))
}

func TestAnalyze_Cancelled(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Run(ctx, fixture.Settings(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fixture.OutputEntries(t))
}

func TestRun_WritesReports(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	report, err := eng.Run(context.Background(), fixture.Settings(1))
	require.NoError(t, err)

	occurrencePath := filepath.Join(fixture.OutputDir, "final_cogs_output_length3.json")
	activityPath := filepath.Join(fixture.OutputDir, "final_suspected_COG0001_activities_output.json")
	assert.Equal(t, []string{occurrencePath, activityPath}, report.OutputFiles)

	occurrences, err := os.ReadFile(occurrencePath)
	require.NoError(t, err)
	assert.Equal(t, `{
    "3": [
        "COG0002 COG0001 COG0003"
    ],
    "1": [
        "COG0001 COG0003 COG0004",
        "COG0005 COG0002 COG0001"
    ],
    "Key defines dmer occurences in different genomes": "Value is the dmer"
}`, string(occurrences))

	activities, err := os.ReadFile(activityPath)
	require.NoError(t, err)
	assert.Equal(t, `{
    "METABOLISM Amino acid transport and metabolism": "50.0%",
    "METABOLISM Coenzyme transport and metabolism": "40.0%",
    "INFORMATION STORAGE AND PROCESSING Transcription": "10.0%"
}`, string(activities))
}

func TestRun_Deterministic(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	first := fixture.Settings(1)
	first.OutputDir = filepath.Join(fixture.Dir, "first")
	second := fixture.Settings(1)
	second.OutputDir = filepath.Join(fixture.Dir, "second")

	_, err := eng.Run(context.Background(), first)
	require.NoError(t, err)
	_, err = eng.Run(context.Background(), second)
	require.NoError(t, err)

	for _, name := range []string{first.OccurrenceReportName(), first.ActivityReportName()} {
		a, err := os.ReadFile(filepath.Join(first.OutputDir, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second.OutputDir, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, "%s differs between identical runs", name)
	}
}

func TestRunAsync(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	jobID, err := eng.RunAsync(fixture.Settings(2))
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	job := testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, testutil.FixtureTarget)
	assert.Equal(t, testutil.ExpectedOccurrences(2), job.Result.Occurrences)
	assert.Len(t, job.Result.OutputFiles, 2)
	require.NotNil(t, job.Progress)
	assert.Equal(t, job.Progress.Total, job.Progress.Current)
	assert.Equal(t, "2", job.Metadata["min_genomes"])

	assert.Len(t, eng.ListJobs(nil), 1)
	assert.Equal(t, int64(1), eng.GetMetrics().JobsCompleted)
}

func TestRunAsync_Failure(t *testing.T) {
	eng := newTestEngine(t)
	fixture := testutil.NewFixture(t)

	settings := fixture.Settings(1)
	settings.MotifLength = 0
	_, err := eng.RunAsync(settings)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	jobID, err := eng.RunAsync(fixture.Settings(9))
	require.NoError(t, err)
	job := testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "no qualifying motifs")
	assert.Empty(t, fixture.OutputEntries(t))
}

func TestReferenceCache(t *testing.T) {
	fixture := testutil.NewFixture(t)
	cache := newReferenceCache()
	loads := 0
	loader := func(p string) (interface{}, error) {
		loads++
		return store.LoadActivityTable(p)
	}

	first, err := cache.load("activity", fixture.ActivityFile, loader)
	require.NoError(t, err)
	second, err := cache.load("activity", fixture.ActivityFile, loader)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, loads)

	testutil.WriteFile(t, fixture.ActivityFile, "COG0002 C Replaced\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(fixture.ActivityFile, later, later))

	third, err := cache.load("activity", fixture.ActivityFile, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
	code, ok := third.(*store.ActivityTable).Lookup("COG0002")
	require.True(t, ok)
	assert.Equal(t, "C", code)

	_, err = cache.load("activity", filepath.Join(fixture.Dir, "absent.txt"), loader)
	assert.ErrorIs(t, err, errors.ErrReferenceUnavailable)
}

func TestCatalogs(t *testing.T) {
	eng := newTestEngine(t)

	catalog := eng.ActivityCatalog()
	assert.Len(t, catalog, 20)
	catalog["E"] = "changed"
	assert.NotEqual(t, "changed", eng.ActivityCatalog()["E"])

	filters := eng.FilterCatalog()
	assert.Len(t, filters.Taxonomy, 8)
	assert.Len(t, filters.Habitat, 10)
	assert.Equal(t, "Order", filters.Taxonomy[7].Name)
	assert.Equal(t, 8, filters.Taxonomy[7].Number)
	assert.True(t, filters.Habitat[8].Numeric)
}
