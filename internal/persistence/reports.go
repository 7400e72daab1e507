// Package persistence renders analysis reports and writes them to disk.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gcbaptista/cog-motif-finder/internal/ranking"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// OccurrenceLegendKey and OccurrenceLegendValue form the explanatory entry
// appended to every occurrence report.
const (
	OccurrenceLegendKey   = "Key defines dmer occurences in different genomes"
	OccurrenceLegendValue = "Value is the dmer"
)

const reportIndent = "    "

// ReportFile is a rendered report waiting to be written.
type ReportFile struct {
	Name    string
	Content []byte
}

// RenderOccurrenceReport renders the groups as a JSON object keyed by genome
// count, highest first, followed by the legend entry.
func RenderOccurrenceReport(groups []model.OccurrenceGroup) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, g := range groups {
		motifs := g.Motifs
		if motifs == nil {
			motifs = []string{}
		}
		if err := writeEntry(&buf, strconv.Itoa(g.Count), motifs); err != nil {
			return nil, err
		}
	}
	if err := writeEntry(&buf, OccurrenceLegendKey, OccurrenceLegendValue); err != nil {
		return nil, err
	}
	buf.Truncate(buf.Len() - 1) // trailing comma
	buf.WriteByte('}')
	return indent(buf.Bytes())
}

// RenderActivityReport renders the ranked activities as a JSON object mapping
// each description to its percentage, in rank order.
func RenderActivityReport(summary model.ActivitySummary) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, r := range summary.Top {
		if err := writeEntry(&buf, r.Description, ranking.FormatPercentage(r.Percentage)); err != nil {
			return nil, err
		}
	}
	if len(summary.Top) > 0 {
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return indent(buf.Bytes())
}

func writeEntry(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	buf.WriteByte(',')
	return nil
}

func indent(compact []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", reportIndent); err != nil {
		return nil, fmt.Errorf("failed to indent report: %w", err)
	}
	return out.Bytes(), nil
}

// WriteReports writes every file into dir, or none of them. Each report is staged
// in a temporary file that is renamed into place only once all are staged.
func WriteReports(dir string, files []ReportFile) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(dir, f)
		if err != nil {
			cleanup()
			return nil, err
		}
		staged = append(staged, tmp)
	}

	written := make([]string, 0, len(files))
	for i, f := range files {
		target := filepath.Join(dir, f.Name)
		if err := os.Rename(staged[i], target); err != nil {
			cleanup()
			for _, done := range written {
				_ = os.Remove(done)
			}
			return nil, fmt.Errorf("failed to move report into place %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}

func stage(dir string, f ReportFile) (string, error) {
	file, err := os.CreateTemp(dir, "."+f.Name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file for %s: %w", f.Name, err)
	}
	name := file.Name()
	if _, err := file.Write(f.Content); err != nil {
		_ = file.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to write %s: %w", f.Name, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to close %s: %w", f.Name, err)
	}
	return name, nil
}
