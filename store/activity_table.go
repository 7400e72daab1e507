package store

import (
	"strings"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/internal/textio"
	"github.com/gcbaptista/cog-motif-finder/internal/tokenizer"
)

// Fixed-width layout of an activity table line: characters 3-6 hold the 4-character
// marker code and character 8 holds the activity code.
const (
	codeStart     = 3
	codeEnd       = 7
	activityStart = 8
	activityEnd   = 9

	markerPrefix = "COG"
)

// ActivityTable maps 4-character marker codes to single-character activity codes.
type ActivityTable struct {
	Path  string
	codes map[string]string
}

// LoadActivityTable reads a fixed-width activity reference table.
func LoadActivityTable(path string) (*ActivityTable, error) {
	data, err := textio.ReadFile(path)
	if err != nil {
		return nil, errors.NewReferenceFileError("activity", path, err)
	}
	table := ParseActivityTable(string(data))
	table.Path = path
	return table, nil
}

// ParseActivityTable indexes fixed-width table content. Only the first line for a
// given code contributes; later lines with the same code are ignored.
func ParseActivityTable(content string) *ActivityTable {
	table := &ActivityTable{codes: make(map[string]string)}
	for _, line := range tokenizer.Lines(content) {
		if len(line) < activityEnd {
			continue
		}
		code := line[codeStart:codeEnd]
		activity := line[activityStart:activityEnd]
		if strings.TrimSpace(activity) == "" {
			continue
		}
		if _, exists := table.codes[code]; !exists {
			table.codes[code] = activity
		}
	}
	return table
}

// Lookup returns the activity code of a marker.
func (t *ActivityTable) Lookup(marker string) (string, bool) {
	activity, ok := t.codes[MarkerCode(marker)]
	return activity, ok
}

// Len returns the number of indexed marker codes.
func (t *ActivityTable) Len() int { return len(t.codes) }

// MarkerCode reduces a marker token to the 4-character code used by the table:
// "COG0001" becomes "0001", anything else is returned unchanged.
func MarkerCode(marker string) string {
	if len(marker) == len(markerPrefix)+codeEnd-codeStart && strings.HasPrefix(marker, markerPrefix) {
		return marker[len(markerPrefix):]
	}
	return marker
}
