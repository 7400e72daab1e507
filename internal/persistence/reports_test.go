package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/cog-motif-finder/model"
)

func TestRenderOccurrenceReport(t *testing.T) {
	groups := []model.OccurrenceGroup{
		{Count: 3, Motifs: []string{"COG0002 COG0001 COG0003"}},
		{Count: 1, Motifs: []string{"COG0001 COG0003 COG0004", "COG0005 COG0002 COG0001"}},
	}

	out, err := RenderOccurrenceReport(groups)
	require.NoError(t, err)

	expected := `{
    "3": [
        "COG0002 COG0001 COG0003"
    ],
    "1": [
        "COG0001 COG0003 COG0004",
        "COG0005 COG0002 COG0001"
    ],
    "Key defines dmer occurences in different genomes": "Value is the dmer"
}`
	assert.Equal(t, expected, string(out))
}

func TestRenderOccurrenceReport_Empty(t *testing.T) {
	out, err := RenderOccurrenceReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \""+OccurrenceLegendKey+"\": \""+OccurrenceLegendValue+"\"\n}", string(out))
}

func TestRenderActivityReport(t *testing.T) {
	summary := model.ActivitySummary{
		TargetMarker: "COG0001",
		TotalMarkers: 10,
		Top: []model.ActivityRank{
			{Rank: 0, Code: "E", Description: "METABOLISM Amino acid transport and metabolism", Weight: 5, Percentage: 50},
			{Rank: 1, Code: "H", Description: "METABOLISM Coenzyme transport and metabolism", Weight: 4, Percentage: 40},
			{Rank: 2, Code: "K", Description: "INFORMATION STORAGE AND PROCESSING Transcription", Weight: 1, Percentage: 10},
		},
	}

	out, err := RenderActivityReport(summary)
	require.NoError(t, err)

	expected := `{
    "METABOLISM Amino acid transport and metabolism": "50.0%",
    "METABOLISM Coenzyme transport and metabolism": "40.0%",
    "INFORMATION STORAGE AND PROCESSING Transcription": "10.0%"
}`
	assert.Equal(t, expected, string(out))

	empty, err := RenderActivityReport(model.ActivitySummary{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}

func TestWriteReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files := []ReportFile{
		{Name: "a.json", Content: []byte(`{"a": 1}`)},
		{Name: "b.json", Content: []byte(`{"b": 2}`)},
	}

	written, err := WriteReports(dir, files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, written)

	content, err := os.ReadFile(filepath.Join(dir, "b.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"b": 2}`, string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestWriteReports_NoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	files := []ReportFile{
		{Name: "good.json", Content: []byte(`{}`)},
		{Name: filepath.Join("missing", "bad.json"), Content: []byte(`{}`)},
	}

	_, err := WriteReports(dir, files)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
