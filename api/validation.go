// Package api provides the HTTP surface of the advising engine.
package api

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// Queries longer than this are almost certainly forwarded email threads,
// not questions; reject them before they reach the pipeline.
const maxQueryLength = 10000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateQueryText validates the free text of an advise request
func ValidateQueryText(text string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(text) == "" {
		result.AddError("text", "Query text is required")
		return result
	}

	if utf8.RuneCountInString(text) > maxQueryLength {
		result.AddError("text", "Query text exceeds the maximum supported length")
		return result
	}

	return result
}

// ValidateMetadata validates caller-supplied metadata fields
func ValidateMetadata(metadata map[string]string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for key := range metadata {
		if strings.TrimSpace(key) == "" {
			result.AddError("metadata", "Metadata keys cannot be empty or whitespace-only")
			return result
		}
	}

	return result
}

// ValidateEntryID validates a knowledge base entry ID parameter
func ValidateEntryID(entryID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if entryID == "" {
		result.AddError("entryId", "Entry ID is required")
		return result
	}

	if strings.TrimSpace(entryID) != entryID {
		result.AddError("entryId", "Entry ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	// Set defaults
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	// Validate limits
	if pageSize > 100 {
		pageSize = 100 // Maximum page size
	}

	return page, pageSize, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
