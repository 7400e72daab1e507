// Package testing provides fixtures and helpers for testing motif analyses.
package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/services"
)

// FixtureTarget is the target marker the fixture dataset is built around.
const FixtureTarget = "COG0001"

// FixtureMotifLength is the motif length the fixture expectations assume.
const FixtureMotifLength = 3

// Fixture contents. With d=3 and target COG0001 they yield three distinct motifs:
// "COG0002 COG0001 COG0003" in three genomes, and two single-genome motifs.
// Genome 000004 contributes nothing because every window holds an unknown marker.
const (
	PlasmidContent = ">plasmid_000001#NC_1#plasmid#Escherichia coli#562\tCOG0002\tCOG0001\tCOG0003\t\n" +
		">plasmid_000002#NC_2#plasmid#Bacillus subtilis#1423\tCOG0002\tCOG0001\tCOG0003\tCOG0004\t\n"

	BacteriaContent = ">bacteria_000003#NC_3#chr#Escherichia coli#562\tCOG0005\tCOG0002\tCOG0001\tCOG0003\t\n" +
		">bacteria_000004#NC_4#chr#Vibrio cholerae#666\tX\tCOG0001\tCOG0004\t\n"

	TaxonomyContent = "kingdom,phylum,class,genus,species,bacteria,strain,bacgroup,order\n" +
		"Bacteria,Proteobacteria,Gammaproteobacteria,Escherichia,Coli,Escherichia coli,562,Enteric,Enterobacterales\n" +
		"Bacteria,Firmicutes,Bacilli,Bacillus,Subtilis,Bacillus subtilis,1423,Gram positive,Bacillales\n"

	HabitatContent = "node;bacteria;kingdom;phylum;class;genus;species;bacgroup;rank;taxid;habitat\n" +
		"11;Escherichia coli;Bacteria;Proteobacteria;Gammaproteobacteria;Escherichia;Coli;Enteric;species;562;Host\n" +
		"12;Bacillus subtilis;Bacteria;Firmicutes;Bacilli;Bacillus;Subtilis;Gram positive;species;1423;Soil\n"

	ActivityContent = "COG0002 E Amino acid permease\n" +
		"COG0003 H Coenzyme synthase\n" +
		"COG0004 K Transcriptional regulator\n" +
		"COG0005 E Aminotransferase\n" +
		"COG0004 L Later duplicate ignored\n"
)

// Fixture is a directory holding a complete, small input dataset.
type Fixture struct {
	Dir          string
	PlasmidFile  string
	BacteriaFile string
	TaxonomyFile string
	HabitatFile  string
	ActivityFile string
	OutputDir    string
}

// NewFixture writes the fixture dataset into a fresh temporary directory.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	dir := t.TempDir()
	f := &Fixture{
		Dir:          dir,
		PlasmidFile:  filepath.Join(dir, config.DefaultPlasmidFile),
		BacteriaFile: filepath.Join(dir, config.DefaultBacteriaFile),
		TaxonomyFile: filepath.Join(dir, config.DefaultTaxonomyFile),
		HabitatFile:  filepath.Join(dir, config.DefaultHabitatFile),
		ActivityFile: filepath.Join(dir, config.DefaultActivityFile),
		OutputDir:    filepath.Join(dir, "out"),
	}
	WriteFile(t, f.PlasmidFile, PlasmidContent)
	WriteFile(t, f.BacteriaFile, BacteriaContent)
	WriteFile(t, f.TaxonomyFile, TaxonomyContent)
	WriteFile(t, f.HabitatFile, HabitatContent)
	WriteFile(t, f.ActivityFile, ActivityContent)
	return f
}

// Settings returns run settings pointing at the fixture with the given threshold.
func (f *Fixture) Settings(minGenomes int) config.RunSettings {
	s := config.RunSettings{
		MinGenomes:   minGenomes,
		MotifLength:  FixtureMotifLength,
		TargetMarker: FixtureTarget,
		PlasmidFile:  f.PlasmidFile,
		BacteriaFile: f.BacteriaFile,
		TaxonomyFile: f.TaxonomyFile,
		HabitatFile:  f.HabitatFile,
		ActivityFile: f.ActivityFile,
		OutputDir:    f.OutputDir,
	}
	s.ApplyDefaults()
	return s
}

// OutputEntries returns the names of the files in the output directory, or nil
// when it does not exist.
func (f *Fixture) OutputEntries(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.OutputDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write fixture %s", path)
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJob polls a job until it leaves the pending and running states or the
// timeout expires.
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
				if opts.LogProgress && job.CompletedAt != nil {
					t.Logf("Job %s finished as %s in %v", jobID, job.Status, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully with a report
func AssertJobCompleted(t *testing.T, job *model.Job, expectedTarget string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, Describe(job))
	assert.Equal(t, model.JobTypeAnalysis, job.Type, "Job type should match")
	assert.Equal(t, expectedTarget, job.TargetMarker, "Job target marker should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
	assert.NotNil(t, job.Result, "Job should carry its report")
}

// ExpectedOccurrences returns the fixture occurrence groups for a threshold
// without filters.
func ExpectedOccurrences(minGenomes int) []model.OccurrenceGroup {
	all := []model.OccurrenceGroup{
		{Count: 3, Motifs: []string{"COG0002 COG0001 COG0003"}},
		{Count: 1, Motifs: []string{"COG0001 COG0003 COG0004", "COG0005 COG0002 COG0001"}},
	}
	var groups []model.OccurrenceGroup
	for _, g := range all {
		if g.Count >= minGenomes {
			groups = append(groups, g)
		}
	}
	return groups
}

// Describe formats a job for failure messages.
func Describe(job *model.Job) string {
	return fmt.Sprintf("job %s (%s): %s", job.ID, job.Status, job.Error)
}
