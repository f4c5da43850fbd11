package metadata

import (
	"testing"

	"github.com/campusdesk/advising-engine/model"
)

func factsByKey(facts []model.MetadataFact, key string) []model.MetadataFact {
	var out []model.MetadataFact
	for _, fact := range facts {
		if fact.Key == key {
			out = append(out, fact)
		}
	}
	return out
}

func TestExtract(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name      string
		text      string
		wantKey   string
		wantValue string
	}{
		{
			name:      "academic term",
			text:      "I want to register for Fall 2024 classes.",
			wantKey:   "term",
			wantValue: "Fall 2024",
		},
		{
			name:      "term is case insensitive",
			text:      "planning for SPRING 2025",
			wantKey:   "term",
			wantValue: "Spring 2025",
		},
		{
			name:      "student name from greeting",
			text:      "Hi, my name is Jordan Lee and I have a question.",
			wantKey:   "student_name",
			wantValue: "Jordan Lee",
		},
		{
			name:      "student name from this is",
			text:      "Hello, this is Taylor.",
			wantKey:   "student_name",
			wantValue: "Taylor",
		},
		{
			name:      "withdrawal deadline from month day",
			text:      "Can I still withdraw from my course before October 21?",
			wantKey:   "withdrawal_deadline",
			wantValue: "October 21",
		},
		{
			name:      "withdrawal deadline with ordinal suffix",
			text:      "I need to drop the class by Oct. 21st.",
			wantKey:   "withdrawal_deadline",
			wantValue: "October 21",
		},
		{
			name:      "registration deadline",
			text:      "When do I need to enroll? I heard registration closes April 5.",
			wantKey:   "registration_deadline",
			wantValue: "April 5",
		},
		{
			name:      "numeric date with year",
			text:      "The withdrawal deadline is 10/21/2024, right?",
			wantKey:   "withdrawal_deadline",
			wantValue: "October 21, 2024",
		},
		{
			name:      "generic deadline without keywords",
			text:      "Is the deadline still March 3?",
			wantKey:   "deadline",
			wantValue: "March 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := extractor.Extract(tt.text)
			matched := factsByKey(facts, tt.wantKey)
			if len(matched) == 0 {
				t.Fatalf("Extract(%q) produced no %q fact; got %v", tt.text, tt.wantKey, facts)
			}
			if matched[0].Value != tt.wantValue {
				t.Errorf("Expected %s=%q, got %q", tt.wantKey, tt.wantValue, matched[0].Value)
			}
			if matched[0].Reason == "" {
				t.Error("Every inferred fact needs an audit reason")
			}
		})
	}

	t.Run("no facts in plain question", func(t *testing.T) {
		facts := extractor.Extract("How do I order my transcript?")
		if len(facts) != 0 {
			t.Errorf("Expected no facts, got %v", facts)
		}
	})

	t.Run("multiple facts in one message", func(t *testing.T) {
		text := "Hi, my name is Taylor. I need to remove a course for Fall 2024 before October 21."
		facts := extractor.Extract(text)

		if got := factsByKey(facts, "student_name"); len(got) != 1 || got[0].Value != "Taylor" {
			t.Errorf("Expected student_name=Taylor, got %v", got)
		}
		if got := factsByKey(facts, "term"); len(got) != 1 || got[0].Value != "Fall 2024" {
			t.Errorf("Expected term=Fall 2024, got %v", got)
		}
		if got := factsByKey(facts, "withdrawal_deadline"); len(got) != 1 || got[0].Value != "October 21" {
			t.Errorf("Expected withdrawal_deadline=October 21, got %v", got)
		}
	})
}
