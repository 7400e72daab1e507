package filtering

import (
	"fmt"

	"github.com/gcbaptista/cog-motif-finder/internal/annotation"
	"github.com/gcbaptista/cog-motif-finder/model"
	"github.com/gcbaptista/cog-motif-finder/store"
)

// Verdict is the outcome of evaluating one filter category against a line.
type Verdict int

const (
	// VerdictNoFilters means the category has no criteria configured.
	VerdictNoFilters Verdict = iota
	// VerdictPass means a reference row was found and satisfied every criterion.
	VerdictPass
	// VerdictInapplicable means no reference row matched the line's join key, so
	// the criteria were not evaluated.
	VerdictInapplicable
	// VerdictReject means a criterion failed.
	VerdictReject
)

func (v Verdict) String() string {
	switch v {
	case VerdictNoFilters:
		return "no_filters"
	case VerdictPass:
		return "pass"
	case VerdictInapplicable:
		return "inapplicable"
	case VerdictReject:
		return "reject"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Passed reports whether the verdict lets a line through.
func (v Verdict) Passed() bool { return v != VerdictReject }

// Criteria holds the filter lists of both categories.
type Criteria struct {
	Taxonomy []model.TaxonomyCriterion `json:"taxonomy"`
	Habitat  []model.HabitatCriterion  `json:"habitat"`
}

// Empty reports whether no filter of either category is configured.
func (c Criteria) Empty() bool { return len(c.Taxonomy) == 0 && len(c.Habitat) == 0 }

// TaxonomyLookup finds the taxonomy row of a strain id.
type TaxonomyLookup interface {
	Lookup(strainID int) (store.Row, bool)
}

// HabitatLookup finds the habitat row of a bacteria name.
type HabitatLookup interface {
	Lookup(bacteriaName string) (store.Row, bool)
}

// Decision is the combined result for both categories. Habitat is left at
// VerdictNoFilters when the taxonomy category already rejected the line.
type Decision struct {
	Taxonomy Verdict
	Habitat  Verdict
}

// Passed reports whether both categories let the line through.
func (d Decision) Passed() bool { return d.Taxonomy.Passed() && d.Habitat.Passed() }

// Evaluator decides whether an annotation line satisfies the configured filters.
type Evaluator struct {
	criteria Criteria
	taxonomy TaxonomyLookup
	habitat  HabitatLookup
}

// NewEvaluator creates an evaluator. A lookup may be nil only when its category
// has no criteria.
func NewEvaluator(criteria Criteria, taxonomy TaxonomyLookup, habitat HabitatLookup) (*Evaluator, error) {
	if len(criteria.Taxonomy) > 0 && taxonomy == nil {
		return nil, fmt.Errorf("taxonomy filters configured without a taxonomy table")
	}
	if len(criteria.Habitat) > 0 && habitat == nil {
		return nil, fmt.Errorf("habitat filters configured without a habitat table")
	}
	return &Evaluator{criteria: criteria, taxonomy: taxonomy, habitat: habitat}, nil
}

// Criteria returns the configured criteria.
func (e *Evaluator) Criteria() Criteria { return e.criteria }

// Evaluate checks the taxonomy category first and the habitat category only if
// taxonomy did not reject. An error means a join key could not be extracted from
// the line header.
func (e *Evaluator) Evaluate(line model.AnnotationLine) (Decision, error) {
	taxonomy, err := e.evaluateTaxonomy(line)
	if err != nil {
		return Decision{}, err
	}
	if taxonomy == VerdictReject {
		return Decision{Taxonomy: taxonomy, Habitat: VerdictNoFilters}, nil
	}

	habitat, err := e.evaluateHabitat(line)
	if err != nil {
		return Decision{}, err
	}
	return Decision{Taxonomy: taxonomy, Habitat: habitat}, nil
}

func (e *Evaluator) evaluateTaxonomy(line model.AnnotationLine) (Verdict, error) {
	if len(e.criteria.Taxonomy) == 0 {
		return VerdictNoFilters, nil
	}
	strainID, err := annotation.StrainID(line)
	if err != nil {
		return VerdictReject, err
	}
	row, found := e.taxonomy.Lookup(strainID)
	if !found {
		return VerdictInapplicable, nil
	}
	for _, c := range e.criteria.Taxonomy {
		if !matches(row, c) {
			return VerdictReject, nil
		}
	}
	return VerdictPass, nil
}

func (e *Evaluator) evaluateHabitat(line model.AnnotationLine) (Verdict, error) {
	if len(e.criteria.Habitat) == 0 {
		return VerdictNoFilters, nil
	}
	name, err := annotation.BacteriaName(line)
	if err != nil {
		return VerdictReject, err
	}
	row, found := e.habitat.Lookup(name)
	if !found {
		return VerdictInapplicable, nil
	}
	for _, c := range e.criteria.Habitat {
		if !matches(row, c) {
			return VerdictReject, nil
		}
	}
	return VerdictPass, nil
}

// matches treats a row too short to hold the criterion's column as a mismatch.
func matches(row store.Row, c model.Criterion) bool {
	cell, ok := row.Field(c.Column())
	if !ok {
		return false
	}
	return c.Matches(cell)
}
