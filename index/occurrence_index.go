package index

import (
	"github.com/gcbaptista/cog-motif-finder/model"
)

// GenomeSet is the set of distinct genome ids a motif was found in.
type GenomeSet map[string]struct{}

// OccurrenceIndex maps each discovered motif to the genomes containing it.
// Motifs remember the order in which they were first discovered so that
// everything derived from the index is deterministic.
type OccurrenceIndex struct {
	genomes map[model.Motif]GenomeSet
	order   []model.Motif
}

// NewOccurrenceIndex creates an empty index.
func NewOccurrenceIndex() *OccurrenceIndex {
	return &OccurrenceIndex{
		genomes: make(map[model.Motif]GenomeSet),
		order:   make([]model.Motif, 0),
	}
}

// Add records that motif occurs in genomeID. Adding the same pair twice has no effect.
func (ix *OccurrenceIndex) Add(motif model.Motif, genomeID string) {
	set, exists := ix.genomes[motif]
	if !exists {
		set = make(GenomeSet)
		ix.genomes[motif] = set
		ix.order = append(ix.order, motif)
	}
	set[genomeID] = struct{}{}
}

// Count returns the number of distinct genomes containing motif.
func (ix *OccurrenceIndex) Count(motif model.Motif) int {
	return len(ix.genomes[motif])
}

// Contains reports whether motif has been recorded for genomeID.
func (ix *OccurrenceIndex) Contains(motif model.Motif, genomeID string) bool {
	_, ok := ix.genomes[motif][genomeID]
	return ok
}

// Len returns the number of distinct motifs.
func (ix *OccurrenceIndex) Len() int { return len(ix.order) }

// Motifs returns every motif in discovery order.
func (ix *OccurrenceIndex) Motifs() []model.Motif {
	out := make([]model.Motif, len(ix.order))
	copy(out, ix.order)
	return out
}

// Merge unions other into ix. Motifs new to ix are appended in other's discovery order.
func (ix *OccurrenceIndex) Merge(other *OccurrenceIndex) {
	for _, motif := range other.order {
		for genomeID := range other.genomes[motif] {
			ix.Add(motif, genomeID)
		}
	}
}
