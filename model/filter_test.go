package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/cog-motif-finder/internal/errors"
)

func TestParseTaxonomyField(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     TaxonomyField
		wantErr  bool
	}{
		{"menu number", "1", TaxonomyPhylum, false},
		{"order skips seven", "8", TaxonomyOrder, false},
		{"name any case", "gEnUs", TaxonomyGenus, false},
		{"padded name", "  Species ", TaxonomySpecies, false},
		{"unlisted number", "7", 0, true},
		{"unknown name", "Habitat", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaxonomyField(tt.selector)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTaxonomyField_Suggestion(t *testing.T) {
	_, err := ParseTaxonomyField("Phylm")

	var fieldErr *apperrors.InvalidFilterFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "Phylum", fieldErr.Suggestion)
	assert.Equal(t, "taxonomy", fieldErr.Category)
}

func TestParseHabitatField(t *testing.T) {
	tests := []struct {
		selector string
		want     HabitatField
	}{
		{"0", HabitatNode},
		{"10", HabitatHabitat},
		{"taxid", HabitatTaxid},
		{"Pylum", HabitatPhylum},
		{"phylum", HabitatPhylum},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got, err := ParseHabitatField(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseHabitatField("8")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFieldEnumerationsAreClosed(t *testing.T) {
	for _, f := range TaxonomyFields() {
		assert.True(t, f.Valid(), f.String())
		assert.Equal(t, int(f), f.Index())
	}
	for _, f := range HabitatFields() {
		assert.True(t, f.Valid(), f.String())
	}
	assert.False(t, TaxonomyField(7).Valid())
	assert.False(t, HabitatField(8).Valid())
	assert.Equal(t, "TaxonomyField(7)", TaxonomyField(7).String())
}

func TestCanonicalFilterValue(t *testing.T) {
	assert.Equal(t, "Proteobacteria", CanonicalFilterValue("proteoBACTERIA"))
	assert.Equal(t, "Soil", CanonicalFilterValue("  soil "))
	assert.Equal(t, "", CanonicalFilterValue("   "))
}

func TestTaxonomyCriterion(t *testing.T) {
	c, err := NewTaxonomyCriterion(TaxonomyPhylum, "firmicutes")
	require.NoError(t, err)

	assert.Equal(t, 1, c.Column())
	assert.Equal(t, "Phylum=Firmicutes", c.String())
	assert.True(t, c.Matches("Firmicutes"))
	assert.False(t, c.Matches("firmicutes"))

	_, err = NewTaxonomyCriterion(TaxonomyGenus, " ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = NewTaxonomyCriterion(TaxonomyField(7), "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestHabitatCriterion_Numeric(t *testing.T) {
	c, err := NewHabitatCriterion(HabitatTaxid, " 0562 ")
	require.NoError(t, err)

	assert.Equal(t, "562", c.Value)
	assert.True(t, c.Matches("562"))
	assert.True(t, c.Matches("00562"))
	assert.False(t, c.Matches("563"))
	assert.False(t, c.Matches("not-a-number"))

	_, err = NewHabitatCriterion(HabitatNode, "root")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestHabitatField_NumericColumns(t *testing.T) {
	var numeric []HabitatField
	for _, f := range HabitatFields() {
		if f.Numeric() {
			numeric = append(numeric, f)
		}
	}
	assert.Equal(t, []HabitatField{HabitatNode, HabitatTaxid}, numeric)
	assert.False(t, HabitatField(8).Valid(), "the rank column is not selectable")
}

func TestHabitatCriterion_String(t *testing.T) {
	c, err := NewHabitatCriterion(HabitatHabitat, "MARINE")
	require.NoError(t, err)

	assert.True(t, c.Matches("Marine"))
	assert.False(t, c.Matches("Soil"))
	assert.Equal(t, 10, c.Column())
}

func TestMotifRoundTrip(t *testing.T) {
	m := NewMotif([]string{"COG0002", "COG0001", "COG0003"})

	assert.Equal(t, Motif("COG0002 COG0001 COG0003"), m)
	assert.Equal(t, []string{"COG0002", "COG0001", "COG0003"}, m.Markers())
}

func TestActivityCatalog(t *testing.T) {
	catalog := DefaultActivityCatalog()

	assert.Equal(t, "INFORMATION STORAGE AND PROCESSING Transcription", catalog.Describe("K"))
	assert.Equal(t, "UNCATEGORIZED Activity code Y", catalog.Describe("Y"))
	codes := catalog.Codes()
	assert.Len(t, codes, 20)
	assert.Equal(t, "B", codes[0])
	assert.Equal(t, "Z", codes[len(codes)-1])
}
