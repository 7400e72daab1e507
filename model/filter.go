package model

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/internal/typoutil"
)

// FilterCategory names one of the two independent groups of filter criteria.
type FilterCategory string

const (
	CategoryTaxonomy FilterCategory = "taxonomy"
	CategoryHabitat  FilterCategory = "habitat"
)

// suggestionDistance bounds how far a mistyped field name may be from a known one
// before no suggestion is offered.
const suggestionDistance = 2

// TaxonomyField is a filterable column of the taxonomy table. Its value is the
// column index in a comma-separated taxonomy row.
type TaxonomyField int

const (
	TaxonomyKingdom  TaxonomyField = 0
	TaxonomyPhylum   TaxonomyField = 1
	TaxonomyClass    TaxonomyField = 2
	TaxonomyGenus    TaxonomyField = 3
	TaxonomySpecies  TaxonomyField = 4
	TaxonomyBacteria TaxonomyField = 5
	TaxonomyBacgroup TaxonomyField = 6
	TaxonomyOrder    TaxonomyField = 8
)

// TaxonomyFields lists every taxonomy filter field in menu order.
func TaxonomyFields() []TaxonomyField {
	return []TaxonomyField{
		TaxonomyKingdom, TaxonomyPhylum, TaxonomyClass, TaxonomyGenus,
		TaxonomySpecies, TaxonomyBacteria, TaxonomyBacgroup, TaxonomyOrder,
	}
}

func (f TaxonomyField) String() string {
	switch f {
	case TaxonomyKingdom:
		return "Kingdom"
	case TaxonomyPhylum:
		return "Phylum"
	case TaxonomyClass:
		return "Class"
	case TaxonomyGenus:
		return "Genus"
	case TaxonomySpecies:
		return "Species"
	case TaxonomyBacteria:
		return "Bacteria"
	case TaxonomyBacgroup:
		return "Bacgroup"
	case TaxonomyOrder:
		return "Order"
	default:
		return "TaxonomyField(" + strconv.Itoa(int(f)) + ")"
	}
}

// Index returns the column index of the field in a taxonomy row.
func (f TaxonomyField) Index() int { return int(f) }

// Valid reports whether f is one of the enumerated taxonomy fields.
func (f TaxonomyField) Valid() bool {
	for _, known := range TaxonomyFields() {
		if f == known {
			return true
		}
	}
	return false
}

// ParseTaxonomyField resolves a menu number ("1") or field name ("phylum").
func ParseTaxonomyField(selector string) (TaxonomyField, error) {
	fields := TaxonomyFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	idx, err := parseSelector(CategoryTaxonomy, selector, names, func(n int) (int, bool) {
		f := TaxonomyField(n)
		for i, known := range fields {
			if f == known {
				return i, true
			}
		}
		return 0, false
	})
	if err != nil {
		return 0, err
	}
	return fields[idx], nil
}

// HabitatField is a filterable column of the habitat table. Its value is the
// column index in a semicolon-separated habitat row.
type HabitatField int

const (
	HabitatNode     HabitatField = 0
	HabitatBacteria HabitatField = 1
	HabitatKingdom  HabitatField = 2
	HabitatPhylum   HabitatField = 3
	HabitatClass    HabitatField = 4
	HabitatGenus    HabitatField = 5
	HabitatSpecies  HabitatField = 6
	HabitatBacgroup HabitatField = 7
	HabitatTaxid    HabitatField = 9
	HabitatHabitat  HabitatField = 10
)

// HabitatFields lists every habitat filter field in menu order.
func HabitatFields() []HabitatField {
	return []HabitatField{
		HabitatNode, HabitatBacteria, HabitatKingdom, HabitatPhylum, HabitatClass,
		HabitatGenus, HabitatSpecies, HabitatBacgroup, HabitatTaxid, HabitatHabitat,
	}
}

func (f HabitatField) String() string {
	switch f {
	case HabitatNode:
		return "Node"
	case HabitatBacteria:
		return "Bacteria"
	case HabitatKingdom:
		return "Kingdom"
	case HabitatPhylum:
		return "Phylum"
	case HabitatClass:
		return "Class"
	case HabitatGenus:
		return "Genus"
	case HabitatSpecies:
		return "Species"
	case HabitatBacgroup:
		return "Bacgroup"
	case HabitatTaxid:
		return "Taxid"
	case HabitatHabitat:
		return "Habitat"
	default:
		return "HabitatField(" + strconv.Itoa(int(f)) + ")"
	}
}

// Index returns the column index of the field in a habitat row.
func (f HabitatField) Index() int { return int(f) }

// Numeric reports whether the column holds integers rather than names. Node and
// Taxid are the integer columns; column 8 (rank) is not selectable.
func (f HabitatField) Numeric() bool {
	return f == HabitatNode || f == HabitatTaxid
}

// Valid reports whether f is one of the enumerated habitat fields.
func (f HabitatField) Valid() bool {
	for _, known := range HabitatFields() {
		if f == known {
			return true
		}
	}
	return false
}

// ParseHabitatField resolves a menu number ("9") or field name ("taxid").
// "Pylum", the habitat menu's spelling of Phylum, is accepted too.
func ParseHabitatField(selector string) (HabitatField, error) {
	if strings.EqualFold(strings.TrimSpace(selector), "pylum") {
		return HabitatPhylum, nil
	}

	fields := HabitatFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	idx, err := parseSelector(CategoryHabitat, selector, names, func(n int) (int, bool) {
		f := HabitatField(n)
		for i, known := range fields {
			if f == known {
				return i, true
			}
		}
		return 0, false
	})
	if err != nil {
		return 0, err
	}
	return fields[idx], nil
}

// parseSelector maps a numeric or named selector to a position in names.
// byNumber translates a column number to a position.
func parseSelector(category FilterCategory, selector string, names []string, byNumber func(int) (int, bool)) (int, error) {
	trimmed := strings.TrimSpace(selector)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if pos, ok := byNumber(n); ok {
			return pos, nil
		}
		return 0, errors.NewInvalidFilterFieldError(string(category), trimmed, "")
	}

	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return i, nil
		}
	}

	suggestion, _ := typoutil.ClosestMatch(trimmed, names, suggestionDistance)
	return 0, errors.NewInvalidFilterFieldError(string(category), trimmed, suggestion)
}

// Criterion is a single equality constraint against one column of a reference row.
type Criterion interface {
	// Column is the index of the reference row field being compared.
	Column() int
	// Matches reports whether the reference cell satisfies the constraint.
	Matches(cell string) bool
	// String renders the constraint as "Field=value".
	String() string
}

// TaxonomyCriterion requires a taxonomy row field to equal Value.
type TaxonomyCriterion struct {
	Field TaxonomyField `json:"field"`
	Value string        `json:"value"`
}

// NewTaxonomyCriterion builds a criterion with the value normalized the way the
// interactive menu always normalized it ("proteobacteria" -> "Proteobacteria").
func NewTaxonomyCriterion(field TaxonomyField, value string) (TaxonomyCriterion, error) {
	if !field.Valid() {
		return TaxonomyCriterion{}, errors.NewInvalidFilterFieldError(string(CategoryTaxonomy), field.String(), "")
	}
	canonical := CanonicalFilterValue(value)
	if canonical == "" {
		return TaxonomyCriterion{}, errors.NewValidationError(field.String(), "filter value cannot be empty")
	}
	return TaxonomyCriterion{Field: field, Value: canonical}, nil
}

func (c TaxonomyCriterion) Column() int { return c.Field.Index() }

func (c TaxonomyCriterion) Matches(cell string) bool { return cell == c.Value }

func (c TaxonomyCriterion) String() string { return c.Field.String() + "=" + c.Value }

// HabitatCriterion requires a habitat row field to equal Value. Numeric fields
// compare as integers.
type HabitatCriterion struct {
	Field HabitatField `json:"field"`
	Value string       `json:"value"`
}

// NewHabitatCriterion builds a criterion, parsing numeric fields as integers and
// normalizing string fields like NewTaxonomyCriterion.
func NewHabitatCriterion(field HabitatField, value string) (HabitatCriterion, error) {
	if !field.Valid() {
		return HabitatCriterion{}, errors.NewInvalidFilterFieldError(string(CategoryHabitat), field.String(), "")
	}
	if field.Numeric() {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return HabitatCriterion{}, errors.NewValidationError(field.String(), "filter value must be an integer, got '"+value+"'")
		}
		return HabitatCriterion{Field: field, Value: strconv.Itoa(n)}, nil
	}
	canonical := CanonicalFilterValue(value)
	if canonical == "" {
		return HabitatCriterion{}, errors.NewValidationError(field.String(), "filter value cannot be empty")
	}
	return HabitatCriterion{Field: field, Value: canonical}, nil
}

func (c HabitatCriterion) Column() int { return c.Field.Index() }

func (c HabitatCriterion) Matches(cell string) bool {
	if !c.Field.Numeric() {
		return cell == c.Value
	}
	got, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return false
	}
	want, err := strconv.Atoi(c.Value)
	if err != nil {
		return false
	}
	return got == want
}

func (c HabitatCriterion) String() string { return c.Field.String() + "=" + c.Value }

// CanonicalFilterValue lower-cases value and upper-cases its first letter.
func CanonicalFilterValue(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return ""
	}
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
