package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeJobNotFound        ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeJobNotFinished     ErrorCode = "JOB_NOT_FINISHED"
	ErrorCodeJobFinished        ErrorCode = "JOB_ALREADY_FINISHED"
	ErrorCodeMalformedInput     ErrorCode = "MALFORMED_INPUT"
	ErrorCodeNoQualifyingMotifs ErrorCode = "NO_QUALIFYING_MOTIFS"

	// Server Error Codes (5xx)
	ErrorCodeReferenceUnavailable ErrorCode = "REFERENCE_UNAVAILABLE"
	ErrorCodeInternalError        ErrorCode = "INTERNAL_ERROR"
	ErrorCodeJobExecutionFailed   ErrorCode = "JOB_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}

// SendAnalysisError maps an analysis failure onto a status code and error code
func SendAnalysisError(c *gin.Context, err error) {
	status, code := classifyError(err)
	if code == ErrorCodeInternalError {
		SendInternalError(c, "analysis", err)
		return
	}
	SendError(c, status, code, err.Error())
}

func classifyError(err error) (int, ErrorCode) {
	switch {
	case stderrors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest, ErrorCodeValidationFailed
	case stderrors.Is(err, errors.ErrMalformedLine):
		return http.StatusUnprocessableEntity, ErrorCodeMalformedInput
	case stderrors.Is(err, errors.ErrNoQualifyingMotifs):
		return http.StatusUnprocessableEntity, ErrorCodeNoQualifyingMotifs
	case stderrors.Is(err, errors.ErrReferenceUnavailable):
		return http.StatusServiceUnavailable, ErrorCodeReferenceUnavailable
	case stderrors.Is(err, errors.ErrJobNotFound):
		return http.StatusNotFound, ErrorCodeJobNotFound
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorCodeInternalError
	default:
		return http.StatusInternalServerError, ErrorCodeInternalError
	}
}
