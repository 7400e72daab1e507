// Package annotation reads genome-annotation files and extracts the identifiers
// embedded in each line's header token.
package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/internal/textio"
	"github.com/gcbaptista/cog-motif-finder/internal/tokenizer"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// bacteriaNameSegment is the '#'-separated header segment holding the bacteria name.
const bacteriaNameSegment = 3

// ReadLines loads a whole annotation file into memory and splits it into lines.
func ReadLines(path string) ([]string, error) {
	data, err := textio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file %s: %w", path, err)
	}
	return tokenizer.Lines(string(data)), nil
}

// ParseLine parses one raw annotation line. The genome id is the GenomeIDLength
// characters after the first '_' of the line.
func ParseLine(source string, lineNumber int, raw string) (model.AnnotationLine, error) {
	underscore := strings.Index(raw, "_")
	if underscore < 0 {
		return model.AnnotationLine{}, errors.NewMalformedLineError(source, lineNumber, "missing '_' before genome number")
	}

	start := underscore + 1
	end := start + model.GenomeIDLength
	if end > len(raw) {
		return model.AnnotationLine{}, errors.NewMalformedLineError(source, lineNumber,
			fmt.Sprintf("genome number shorter than %d characters", model.GenomeIDLength))
	}
	genomeID := raw[start:end]
	if strings.ContainsAny(genomeID, "\t\r\n") {
		return model.AnnotationLine{}, errors.NewMalformedLineError(source, lineNumber,
			fmt.Sprintf("genome number shorter than %d characters", model.GenomeIDLength))
	}

	header, markers, ok := tokenizer.Split(raw)
	if !ok {
		return model.AnnotationLine{}, errors.NewMalformedLineError(source, lineNumber, "no tab-separated marker fields")
	}

	return model.AnnotationLine{
		GenomeID:   genomeID,
		Header:     header,
		Markers:    markers,
		Source:     source,
		LineNumber: lineNumber,
	}, nil
}

// StrainID returns the numeric strain id stored in the last '#' segment of the header.
func StrainID(line model.AnnotationLine) (int, error) {
	segments := tokenizer.HeaderSegments(line.Header)
	last := strings.TrimSpace(segments[len(segments)-1])
	id, err := strconv.Atoi(last)
	if err != nil {
		return 0, errors.NewMalformedLineError(line.Source, line.LineNumber,
			fmt.Sprintf("strain id '%s' is not an integer", last))
	}
	return id, nil
}

// BacteriaName returns the bacteria name stored in the fourth '#' segment of the header.
func BacteriaName(line model.AnnotationLine) (string, error) {
	segments := tokenizer.HeaderSegments(line.Header)
	if len(segments) <= bacteriaNameSegment {
		return "", errors.NewMalformedLineError(line.Source, line.LineNumber,
			fmt.Sprintf("header has %d '#' segments, bacteria name expected in segment %d", len(segments), bacteriaNameSegment))
	}
	return segments[bacteriaNameSegment], nil
}
