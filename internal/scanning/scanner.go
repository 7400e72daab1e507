package scanning

import (
	stderrors "errors"
	"fmt"
	"log"
	"strings"

	"github.com/gcbaptista/cog-motif-finder/index"
	"github.com/gcbaptista/cog-motif-finder/internal/annotation"
	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/internal/filtering"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// Options configures a scan.
type Options struct {
	MotifLength  int    // d
	TargetMarker string // cogx
	Strict       bool   // fail on malformed lines instead of skipping them
}

// Scanner slides a window of MotifLength markers over annotation lines and records
// the genomes each qualifying motif occurs in.
type Scanner struct {
	opts      Options
	evaluator *filtering.Evaluator
	index     *index.OccurrenceIndex
	stats     model.ScanStats
}

// NewScanner creates a scanner. A nil evaluator lets every line through.
func NewScanner(opts Options, evaluator *filtering.Evaluator) (*Scanner, error) {
	if opts.MotifLength < 1 {
		return nil, errors.NewValidationError("motif_length", "must be at least 1")
	}
	if opts.TargetMarker == "" || opts.TargetMarker == model.UnknownMarker {
		return nil, errors.NewValidationError("target_marker", "must be a known marker")
	}
	return &Scanner{
		opts:      opts,
		evaluator: evaluator,
		index:     index.NewOccurrenceIndex(),
	}, nil
}

// Index returns the occurrence index built so far.
func (s *Scanner) Index() *index.OccurrenceIndex { return s.index }

// Stats returns the scan counters so far.
func (s *Scanner) Stats() model.ScanStats {
	stats := s.stats
	stats.DistinctMotifs = s.index.Len()
	return stats
}

// ScanFile reads path into memory and scans every line.
func (s *Scanner) ScanFile(path string) error {
	lines, err := annotation.ReadLines(path)
	if err != nil {
		return err
	}
	if err := s.ScanLines(path, lines); err != nil {
		return err
	}
	s.stats.FilesScanned++
	return nil
}

// ScanLines scans raw lines from source. Blank lines are ignored. Malformed lines
// are logged and counted, or returned as an error in strict mode.
func (s *Scanner) ScanLines(source string, lines []string) error {
	for i, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		s.stats.LinesRead++

		line, err := annotation.ParseLine(source, i+1, raw)
		if err == nil {
			err = s.ScanLine(line)
		}
		if err != nil {
			if !stderrors.Is(err, errors.ErrMalformedLine) || s.opts.Strict {
				return err
			}
			log.Printf("Warning: %v. Skipping line.", err)
			s.stats.MalformedLines++
		}
	}
	return nil
}

// ScanLine records every qualifying window of line. A window qualifies when it
// holds the target marker and no unknown marker. The filters are checked at the
// first qualifying window; a rejected line contributes no motifs at all.
func (s *Scanner) ScanLine(line model.AnnotationLine) error {
	d := s.opts.MotifLength
	markers := line.Markers
	if len(markers) < d {
		s.stats.ShortLines++
		return nil
	}

	filtered := false
	for start := 0; start+d <= len(markers); start++ {
		window := markers[start : start+d]
		if !s.qualifies(window) {
			continue
		}

		if !filtered {
			filtered = true
			if s.evaluator != nil {
				decision, err := s.evaluator.Evaluate(line)
				if err != nil {
					return fmt.Errorf("evaluating filters: %w", err)
				}
				if !decision.Passed() {
					s.stats.RejectedLines++
					return nil
				}
			}
		}

		s.stats.AcceptedWindows++
		s.index.Add(model.NewMotif(window), line.GenomeID)
	}
	return nil
}

func (s *Scanner) qualifies(window []string) bool {
	hasTarget := false
	for _, marker := range window {
		if marker == model.UnknownMarker {
			return false
		}
		if marker == s.opts.TargetMarker {
			hasTarget = true
		}
	}
	return hasTarget
}
