package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/campusdesk/advising-engine/model"
)

// LoadKnowledgeBase reads a knowledge base from a JSON file: an array of
// knowledge entry objects in the order they should tie-break in, validated
// on load.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base file %s: %w", path, err)
	}

	var entries []model.KnowledgeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base file %s: %w", path, err)
	}

	kb, err := NewKnowledgeBase(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid knowledge base in %s: %w", path, err)
	}
	return kb, nil
}

// LoadReferenceCorpus reads a reference corpus from a JSON file: an array
// of reference document objects, validated on load.
func LoadReferenceCorpus(path string) (*ReferenceCorpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference corpus file %s: %w", path, err)
	}

	var documents []model.ReferenceDocument
	if err := json.Unmarshal(data, &documents); err != nil {
		return nil, fmt.Errorf("failed to parse reference corpus file %s: %w", path, err)
	}

	rc, err := NewReferenceCorpus(documents)
	if err != nil {
		return nil, fmt.Errorf("invalid reference corpus in %s: %w", path, err)
	}
	return rc, nil
}
