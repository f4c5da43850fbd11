package api

import (
	"strings"
	"testing"
)

func TestValidateQueryText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValid bool
	}{
		{
			name:      "normal question",
			text:      "How do I order my transcript?",
			wantValid: true,
		},
		{
			name:      "empty",
			text:      "",
			wantValid: false,
		},
		{
			name:      "whitespace only",
			text:      "   \n\t ",
			wantValid: false,
		},
		{
			name:      "at the length limit",
			text:      strings.Repeat("a", maxQueryLength),
			wantValid: true,
		},
		{
			name:      "over the length limit",
			text:      strings.Repeat("a", maxQueryLength+1),
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateQueryText(tt.text)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("ValidateQueryText(%q...) valid = %v, want %v", truncate(tt.text), !result.HasErrors(), tt.wantValid)
			}
		})
	}
}

func truncate(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name      string
		metadata  map[string]string
		wantValid bool
	}{
		{
			name:      "nil metadata",
			metadata:  nil,
			wantValid: true,
		},
		{
			name:      "normal fields",
			metadata:  map[string]string{"student_name": "Alex", "term": "Fall 2024"},
			wantValid: true,
		},
		{
			name:      "empty key",
			metadata:  map[string]string{"": "value"},
			wantValid: false,
		},
		{
			name:      "whitespace key",
			metadata:  map[string]string{"  ": "value"},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateMetadata(tt.metadata)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("ValidateMetadata(%v) valid = %v, want %v", tt.metadata, !result.HasErrors(), tt.wantValid)
			}
		})
	}
}

func TestValidateEntryID(t *testing.T) {
	tests := []struct {
		name      string
		entryID   string
		wantValid bool
	}{
		{
			name:      "normal id",
			entryID:   "transcript_request",
			wantValid: true,
		},
		{
			name:      "empty",
			entryID:   "",
			wantValid: false,
		},
		{
			name:      "surrounding whitespace",
			entryID:   " transcript_request ",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateEntryID(tt.entryID)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("ValidateEntryID(%q) valid = %v, want %v", tt.entryID, !result.HasErrors(), tt.wantValid)
			}
		})
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "defaults applied",
			page:         0,
			pageSize:     0,
			wantPage:     1,
			wantPageSize: 10,
		},
		{
			name:         "values preserved",
			page:         3,
			pageSize:     25,
			wantPage:     3,
			wantPageSize: 25,
		},
		{
			name:         "page size capped",
			page:         1,
			pageSize:     500,
			wantPage:     1,
			wantPageSize: 100,
		},
		{
			name:         "negative values reset",
			page:         -1,
			pageSize:     -5,
			wantPage:     1,
			wantPageSize: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize, result := ValidatePagination(tt.page, tt.pageSize)
			if result.HasErrors() {
				t.Fatalf("Expected no validation errors, got %v", result.Errors)
			}
			if page != tt.wantPage {
				t.Errorf("Expected page %d, got %d", tt.wantPage, page)
			}
			if pageSize != tt.wantPageSize {
				t.Errorf("Expected page size %d, got %d", tt.wantPageSize, pageSize)
			}
		})
	}
}
