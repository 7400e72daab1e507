package model

import "strings"

// UnknownMarker is the placeholder token for an unannotated gene position.
const UnknownMarker = "X"

// GenomeIDLength is the width of the genome number that follows the first '_' of a line.
const GenomeIDLength = 6

// AnnotationLine is one genome's marker sequence from an annotation file.
type AnnotationLine struct {
	GenomeID   string   // fixed-width genome number
	Header     string   // first tab-separated field, carries the '#'-separated join keys
	Markers    []string // ordered marker tokens
	Source     string   // file the line was read from
	LineNumber int      // 1-based
}

// Motif is a window of exactly d markers joined by single spaces.
type Motif string

// NewMotif canonicalizes a window of markers into its key form.
func NewMotif(markers []string) Motif {
	return Motif(strings.Join(markers, " "))
}

// Markers splits the motif back into its tokens.
func (m Motif) Markers() []string {
	return strings.Fields(string(m))
}
