package store

import (
	"log"
	"strconv"
	"strings"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/internal/textio"
	"github.com/gcbaptista/cog-motif-finder/internal/tokenizer"
)

const (
	// TaxonomySeparator separates fields of the taxonomy table.
	TaxonomySeparator = ","
	// HabitatSeparator separates fields of the habitat table.
	HabitatSeparator = ";"

	taxonomyKeyColumn = 6 // numeric strain id
	habitatKeyColumn  = 1 // bacteria name
)

// Row is one delimited reference-table record.
type Row []string

// Field returns the field at index i, or false when the row is too short.
func (r Row) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// TaxonomyTable indexes taxonomy rows by strain id. When a strain id appears on
// several rows only the first is kept, matching a first-match linear scan.
type TaxonomyTable struct {
	Path    string
	rows    map[int]Row
	Skipped int // rows without a usable strain id
}

// LoadTaxonomyTable reads a comma-separated taxonomy file, skipping its header row.
func LoadTaxonomyTable(path string) (*TaxonomyTable, error) {
	rows, err := readRows("taxonomy", path, TaxonomySeparator)
	if err != nil {
		return nil, err
	}

	table := &TaxonomyTable{Path: path, rows: make(map[int]Row, len(rows))}
	duplicates := 0
	for i, row := range rows {
		keyField, ok := row.Field(taxonomyKeyColumn)
		if !ok {
			log.Printf("Warning: taxonomy row %d in %s has %d fields, strain id expected in field %d. Skipping row.", i+2, path, len(row), taxonomyKeyColumn)
			table.Skipped++
			continue
		}
		strainID, err := strconv.Atoi(strings.TrimSpace(keyField))
		if err != nil {
			log.Printf("Warning: taxonomy row %d in %s has non-numeric strain id '%s'. Skipping row.", i+2, path, keyField)
			table.Skipped++
			continue
		}
		if _, exists := table.rows[strainID]; exists {
			duplicates++
			continue
		}
		table.rows[strainID] = row
	}
	if duplicates > 0 {
		log.Printf("Warning: %d duplicate strain ids in %s; the first row of each was kept", duplicates, path)
	}
	return table, nil
}

// Lookup returns the taxonomy row for strainID.
func (t *TaxonomyTable) Lookup(strainID int) (Row, bool) {
	row, ok := t.rows[strainID]
	return row, ok
}

// Len returns the number of indexed strain ids.
func (t *TaxonomyTable) Len() int { return len(t.rows) }

// HabitatTable indexes habitat rows by bacteria name, first row per name wins.
type HabitatTable struct {
	Path    string
	rows    map[string]Row
	Skipped int
}

// LoadHabitatTable reads a semicolon-separated habitat file, skipping its header row.
func LoadHabitatTable(path string) (*HabitatTable, error) {
	rows, err := readRows("habitat", path, HabitatSeparator)
	if err != nil {
		return nil, err
	}

	table := &HabitatTable{Path: path, rows: make(map[string]Row, len(rows))}
	duplicates := 0
	for i, row := range rows {
		name, ok := row.Field(habitatKeyColumn)
		if !ok {
			log.Printf("Warning: habitat row %d in %s has no bacteria name field. Skipping row.", i+2, path)
			table.Skipped++
			continue
		}
		if _, exists := table.rows[name]; exists {
			duplicates++
			continue
		}
		table.rows[name] = row
	}
	if duplicates > 0 {
		log.Printf("Warning: %d duplicate bacteria names in %s; the first row of each was kept", duplicates, path)
	}
	return table, nil
}

// Lookup returns the habitat row for bacteriaName.
func (t *HabitatTable) Lookup(bacteriaName string) (Row, bool) {
	row, ok := t.rows[bacteriaName]
	return row, ok
}

// Len returns the number of indexed bacteria names.
func (t *HabitatTable) Len() int { return len(t.rows) }

// readRows loads a delimited file eagerly and returns every row after the header.
// Blank lines are ignored.
func readRows(table, path, separator string) ([]Row, error) {
	data, err := textio.ReadFile(path)
	if err != nil {
		return nil, errors.NewReferenceFileError(table, path, err)
	}

	lines := tokenizer.Lines(string(data))
	if len(lines) == 0 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, Row(strings.Split(line, separator)))
	}
	return rows, nil
}
