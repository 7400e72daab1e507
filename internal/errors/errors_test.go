package errors

import (
	"errors"
	"os"
	"testing"
)

func TestValidationError(t *testing.T) {
	// Test with field
	err := NewValidationError("motif_length", "must be at least 1")

	expectedMsg := "validation error for field 'motif_length': must be at least 1"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", "must be at least 1")

	expectedMsg2 := "validation error: must be at least 1"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if errors.Is(err, ErrMalformedLine) {
		t.Error("Error should not match ErrMalformedLine")
	}
}

func TestInvalidFilterFieldError(t *testing.T) {
	err := NewInvalidFilterFieldError("taxonomy", "Phylm", "Phylum")

	expectedMsg := "unknown taxonomy filter field 'Phylm' (did you mean 'Phylum'?)"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	noSuggestion := NewInvalidFilterFieldError("habitat", "7", "")
	if noSuggestion.Error() != "unknown habitat filter field '7'" {
		t.Errorf("Unexpected message: %s", noSuggestion.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}

func TestDuplicateFilterError(t *testing.T) {
	err := NewDuplicateFilterError("habitat", "Genus")

	expectedMsg := "habitat filter 'Genus' has already been chosen"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}

func TestMalformedLineError(t *testing.T) {
	err := NewMalformedLineError("cog_words_bac.txt", 12, "missing '_' before genome number")

	expectedMsg := "malformed line 12 in 'cog_words_bac.txt': missing '_' before genome number"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	bare := NewMalformedLineError("", 0, "no tab-separated fields")
	if bare.Error() != "malformed line: no tab-separated fields" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}

	if !errors.Is(err, ErrMalformedLine) {
		t.Error("Expected error to match ErrMalformedLine sentinel")
	}
}

func TestReferenceFileError(t *testing.T) {
	err := NewReferenceFileError("taxonomy", "taxa.txt", os.ErrNotExist)

	if !errors.Is(err, ErrReferenceUnavailable) {
		t.Error("Expected error to match ErrReferenceUnavailable sentinel")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("Expected error to unwrap to os.ErrNotExist")
	}
}

func TestJobNotFoundError(t *testing.T) {
	jobID := "job-456"
	err := NewJobNotFoundError(jobID)

	expectedMsg := "job with ID 'job-456' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	originalErr := NewMalformedLineError("plasmid.txt", 3, "genome number shorter than 6 characters")
	wrappedErr := errors.Join(originalErr, errors.New("additional context"))

	if !errors.Is(wrappedErr, ErrMalformedLine) {
		t.Error("Expected wrapped error to still match ErrMalformedLine sentinel")
	}

	var lineErr *MalformedLineError
	if !errors.As(wrappedErr, &lineErr) {
		t.Fatal("Expected to be able to unwrap to MalformedLineError")
	}

	if lineErr.Line != 3 {
		t.Errorf("Expected line 3, got %d", lineErr.Line)
	}
}
