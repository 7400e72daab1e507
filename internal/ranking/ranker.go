package ranking

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gcbaptista/cog-motif-finder/index"
	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// DefaultTopN is the number of activities reported.
const DefaultTopN = 3

// ActivityLookup resolves a marker to its single-character activity code.
type ActivityLookup interface {
	Lookup(marker string) (string, bool)
}

// Tally accumulates occurrence-weighted hits per activity code, remembering the
// order codes were first seen so ties rank deterministically.
type Tally struct {
	weights map[string]int
	order   []string
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{weights: make(map[string]int)}
}

// Add increases the weight of code by weight.
func (t *Tally) Add(code string, weight int) {
	if _, seen := t.weights[code]; !seen {
		t.order = append(t.order, code)
	}
	t.weights[code] += weight
}

// Weight returns the accumulated weight of code.
func (t *Tally) Weight(code string) int { return t.weights[code] }

// Ranked returns the codes by weight descending, first-seen order breaking ties.
func (t *Tally) Ranked() []string {
	codes := make([]string, len(t.order))
	copy(codes, t.order)
	sort.SliceStable(codes, func(i, j int) bool {
		return t.weights[codes[i]] > t.weights[codes[j]]
	})
	return codes
}

// Ranker infers the likely functional category of a target marker from the
// activities of the markers it co-occurs with.
type Ranker struct {
	table   ActivityLookup
	catalog model.ActivityCatalog
	topN    int
}

// NewRanker creates a ranker. topN <= 0 selects DefaultTopN.
func NewRanker(table ActivityLookup, catalog model.ActivityCatalog, topN int) *Ranker {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if catalog == nil {
		catalog = model.DefaultActivityCatalog()
	}
	return &Ranker{table: table, catalog: catalog, topN: topN}
}

// TotalMarkers returns the occurrence-weighted number of adjacent markers:
// the sum over buckets of count * motifs in bucket * (motifLength - 1).
func TotalMarkers(motifLength int, buckets *index.OccurrenceBuckets) int {
	total := 0
	for _, count := range buckets.Counts() {
		total += count * len(buckets.Motifs(count)) * (motifLength - 1)
	}
	return total
}

// Rank tallies the activity codes of every non-target marker of every retained
// motif, each weighted by the motif's occurrence count, and reports the top
// activities as a share of TotalMarkers. It fails with ErrNoQualifyingMotifs when
// there is nothing to divide by.
func (r *Ranker) Rank(motifLength int, target string, buckets *index.OccurrenceBuckets) (model.ActivitySummary, error) {
	total := TotalMarkers(motifLength, buckets)
	if total == 0 {
		return model.ActivitySummary{}, fmt.Errorf("ranking activities for %s: %w", target, errors.ErrNoQualifyingMotifs)
	}

	// Buckets are walked in discovery order so that equal weights rank by the
	// order their codes were first met.
	tally := NewTally()
	for _, count := range buckets.DiscoveryCounts() {
		for _, motif := range buckets.Motifs(count) {
			for _, marker := range motif.Markers() {
				if marker == target {
					continue
				}
				if code, ok := r.table.Lookup(marker); ok {
					tally.Add(code, count)
				}
			}
		}
	}

	ranked := tally.Ranked()
	if len(ranked) > r.topN {
		ranked = ranked[:r.topN]
	}

	top := make([]model.ActivityRank, len(ranked))
	for i, code := range ranked {
		weight := tally.Weight(code)
		top[i] = model.ActivityRank{
			Rank:        i,
			Code:        code,
			Description: r.catalog.Describe(code),
			Weight:      weight,
			Percentage:  Percentage(weight, total),
		}
	}

	return model.ActivitySummary{
		TargetMarker: target,
		TotalMarkers: total,
		Top:          top,
	}, nil
}

// Percentage returns part/total*100 rounded to one decimal place. The exact
// binary value is rounded, so 1/80 (stored just below 1.25) gives 1.2.
func Percentage(part, total int) float64 {
	p := float64(part) / float64(total) * 100
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(p, 'f', 1, 64), 64)
	return rounded
}

// FormatPercentage renders a percentage the way the activity report stores it ("33.3%").
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}
