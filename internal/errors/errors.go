package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when configuration validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedLine is returned when an annotation line lacks an expected delimiter or field
	ErrMalformedLine = errors.New("malformed annotation line")

	// ErrReferenceUnavailable is returned when a required reference file cannot be read
	ErrReferenceUnavailable = errors.New("reference data unavailable")

	// ErrNoQualifyingMotifs is returned when no motif reaches the minimum occurrence threshold
	ErrNoQualifyingMotifs = errors.New("no qualifying motifs")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")
)

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidFilterFieldError is returned when a filter selector names no known field of its category.
type InvalidFilterFieldError struct {
	Category   string
	Selector   string
	Suggestion string
}

func (e *InvalidFilterFieldError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s filter field '%s' (did you mean '%s'?)", e.Category, e.Selector, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s filter field '%s'", e.Category, e.Selector)
}

func (e *InvalidFilterFieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidFilterFieldError creates a new InvalidFilterFieldError
func NewInvalidFilterFieldError(category, selector, suggestion string) *InvalidFilterFieldError {
	return &InvalidFilterFieldError{Category: category, Selector: selector, Suggestion: suggestion}
}

// DuplicateFilterError is returned when the same filter field is selected twice in one category.
type DuplicateFilterError struct {
	Category string
	Field    string
}

func (e *DuplicateFilterError) Error() string {
	return fmt.Sprintf("%s filter '%s' has already been chosen", e.Category, e.Field)
}

func (e *DuplicateFilterError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewDuplicateFilterError creates a new DuplicateFilterError
func NewDuplicateFilterError(category, field string) *DuplicateFilterError {
	return &DuplicateFilterError{Category: category, Field: field}
}

// MalformedLineError carries the location of a line that could not be parsed
type MalformedLineError struct {
	File   string
	Line   int
	Reason string
}

func (e *MalformedLineError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("malformed line %d in '%s': %s", e.Line, e.File, e.Reason)
	}
	return fmt.Sprintf("malformed line: %s", e.Reason)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// NewMalformedLineError creates a new MalformedLineError
func NewMalformedLineError(file string, line int, reason string) *MalformedLineError {
	return &MalformedLineError{File: file, Line: line, Reason: reason}
}

// ReferenceFileError represents a reference table that could not be opened
type ReferenceFileError struct {
	Table string
	Path  string
	Err   error
}

func (e *ReferenceFileError) Error() string {
	return fmt.Sprintf("%s reference file '%s' could not be read: %v", e.Table, e.Path, e.Err)
}

func (e *ReferenceFileError) Is(target error) bool {
	return target == ErrReferenceUnavailable
}

func (e *ReferenceFileError) Unwrap() error {
	return e.Err
}

// NewReferenceFileError creates a new ReferenceFileError
func NewReferenceFileError(table, path string, err error) *ReferenceFileError {
	return &ReferenceFileError{Table: table, Path: path, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}
