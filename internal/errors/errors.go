package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidEntry is returned when a knowledge base entry is malformed
	ErrInvalidEntry = errors.New("invalid knowledge base entry")

	// ErrInvalidDocument is returned when a reference document is malformed
	ErrInvalidDocument = errors.New("invalid reference document")

	// ErrEntryNotFound is returned when a knowledge base entry is not found
	ErrEntryNotFound = errors.New("knowledge base entry not found")

	// ErrComposerFailed is returned when a composer produces unusable output
	ErrComposerFailed = errors.New("composer failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidEntryError represents a malformed knowledge base entry with context.
// Malformed entries fail fast at load time: silently skipping one would
// reduce recall without any warning to the operator.
type InvalidEntryError struct {
	EntryID string
	Field   string
}

func (e *InvalidEntryError) Error() string {
	if e.EntryID != "" {
		return fmt.Sprintf("knowledge base entry '%s' is missing required field '%s'", e.EntryID, e.Field)
	}
	return fmt.Sprintf("knowledge base entry is missing required field '%s'", e.Field)
}

func (e *InvalidEntryError) Is(target error) bool {
	return target == ErrInvalidEntry
}

// NewInvalidEntryError creates a new InvalidEntryError
func NewInvalidEntryError(entryID, field string) *InvalidEntryError {
	return &InvalidEntryError{EntryID: entryID, Field: field}
}

// InvalidDocumentError represents a malformed reference document with context
type InvalidDocumentError struct {
	DocumentID string
	Field      string
}

func (e *InvalidDocumentError) Error() string {
	if e.DocumentID != "" {
		return fmt.Sprintf("reference document '%s' is missing required field '%s'", e.DocumentID, e.Field)
	}
	return fmt.Sprintf("reference document is missing required field '%s'", e.Field)
}

func (e *InvalidDocumentError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// NewInvalidDocumentError creates a new InvalidDocumentError
func NewInvalidDocumentError(documentID, field string) *InvalidDocumentError {
	return &InvalidDocumentError{DocumentID: documentID, Field: field}
}

// DuplicateIDError represents a duplicate id within a loaded collection
type DuplicateIDError struct {
	Collection string
	ID         string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id '%s' in %s", e.ID, e.Collection)
}

func (e *DuplicateIDError) Is(target error) bool {
	if e.Collection == "knowledge base" {
		return target == ErrInvalidEntry
	}
	return target == ErrInvalidDocument
}

// NewDuplicateIDError creates a new DuplicateIDError
func NewDuplicateIDError(collection, id string) *DuplicateIDError {
	return &DuplicateIDError{Collection: collection, ID: id}
}

// EntryNotFoundError represents a knowledge base entry lookup miss
type EntryNotFoundError struct {
	EntryID string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("knowledge base entry with ID '%s' not found", e.EntryID)
}

func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrEntryNotFound
}

// NewEntryNotFoundError creates a new EntryNotFoundError
func NewEntryNotFoundError(entryID string) *EntryNotFoundError {
	return &EntryNotFoundError{EntryID: entryID}
}

// ComposerError represents a composer whose returned structure could not be
// used, for example an external composer replying without a subject or body.
type ComposerError struct {
	Composer      string
	MissingFields []string
	Cause         error
}

func (e *ComposerError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("composer '%s' returned a structure missing required fields: %s",
			e.Composer, strings.Join(e.MissingFields, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("composer '%s' failed: %v", e.Composer, e.Cause)
	}
	return fmt.Sprintf("composer '%s' failed", e.Composer)
}

func (e *ComposerError) Is(target error) bool {
	return target == ErrComposerFailed
}

func (e *ComposerError) Unwrap() error {
	return e.Cause
}

// NewComposerError creates a new ComposerError for missing output fields
func NewComposerError(composer string, missingFields ...string) *ComposerError {
	return &ComposerError{Composer: composer, MissingFields: missingFields}
}

// WrapComposerError creates a new ComposerError wrapping an underlying cause
func WrapComposerError(composer string, cause error) *ComposerError {
	return &ComposerError{Composer: composer, Cause: cause}
}

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
