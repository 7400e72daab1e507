package index

import (
	"sort"

	"github.com/gcbaptista/cog-motif-finder/model"
)

// OccurrenceBuckets groups retained motifs by distinct-genome count.
type OccurrenceBuckets struct {
	byCount   map[int][]model.Motif
	firstSeen []int // counts in the order their first motif was discovered
}

// BuildBuckets inverts the index, keeping only motifs found in at least minGenomes
// genomes. Within a bucket motifs keep their discovery order.
func BuildBuckets(ix *OccurrenceIndex, minGenomes int) *OccurrenceBuckets {
	b := &OccurrenceBuckets{byCount: make(map[int][]model.Motif)}
	for _, motif := range ix.order {
		count := len(ix.genomes[motif])
		if count < minGenomes {
			continue
		}
		if _, ok := b.byCount[count]; !ok {
			b.firstSeen = append(b.firstSeen, count)
		}
		b.byCount[count] = append(b.byCount[count], motif)
	}
	return b
}

// Counts returns the occurrence counts present, highest first.
func (b *OccurrenceBuckets) Counts() []int {
	counts := make([]int, 0, len(b.byCount))
	for count := range b.byCount {
		counts = append(counts, count)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	return counts
}

// DiscoveryCounts returns the occurrence counts in the order the first motif of
// each count was discovered.
func (b *OccurrenceBuckets) DiscoveryCounts() []int {
	return append([]int(nil), b.firstSeen...)
}

// Motifs returns the motifs sharing count.
func (b *OccurrenceBuckets) Motifs(count int) []model.Motif {
	return b.byCount[count]
}

// Empty reports whether no motif met the threshold.
func (b *OccurrenceBuckets) Empty() bool { return len(b.byCount) == 0 }

// Len returns the total number of retained motifs.
func (b *OccurrenceBuckets) Len() int {
	n := 0
	for _, motifs := range b.byCount {
		n += len(motifs)
	}
	return n
}

// Groups renders the buckets in count-descending order.
func (b *OccurrenceBuckets) Groups() []model.OccurrenceGroup {
	groups := make([]model.OccurrenceGroup, 0, len(b.byCount))
	for _, count := range b.Counts() {
		motifs := b.byCount[count]
		names := make([]string, len(motifs))
		for i, m := range motifs {
			names[i] = string(m)
		}
		groups = append(groups, model.OccurrenceGroup{Count: count, Motifs: names})
	}
	return groups
}
