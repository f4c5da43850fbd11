// Package store holds the immutable in-memory collections the retrievers
// are built over, plus the JSON loaders that materialize them from disk.
// Collections are validated at construction time and never mutated after,
// so concurrent readers need no locking.
package store

import (
	"strings"

	"github.com/campusdesk/advising-engine/internal/errors"
	"github.com/campusdesk/advising-engine/model"
)

// KnowledgeBase is an ordered, immutable collection of knowledge entries.
// Order is preserved from the source file because ranking ties break on it.
type KnowledgeBase struct {
	entries []model.KnowledgeEntry
	byID    map[string]int
}

// NewKnowledgeBase validates the entries and builds the collection.
// A malformed entry fails fast: silently skipping it would reduce recall
// with no warning to anyone.
func NewKnowledgeBase(entries []model.KnowledgeEntry) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		entries: make([]model.KnowledgeEntry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	copy(kb.entries, entries)

	for i, entry := range kb.entries {
		if strings.TrimSpace(entry.ID) == "" {
			return nil, errors.NewInvalidEntryError("", "id")
		}
		if strings.TrimSpace(entry.Subject) == "" {
			return nil, errors.NewInvalidEntryError(entry.ID, "subject")
		}
		if len(entry.Utterances) == 0 {
			return nil, errors.NewInvalidEntryError(entry.ID, "utterances")
		}
		if strings.TrimSpace(entry.ResponseTemplate) == "" {
			return nil, errors.NewInvalidEntryError(entry.ID, "response_template")
		}
		if _, exists := kb.byID[entry.ID]; exists {
			return nil, errors.NewDuplicateIDError("knowledge base", entry.ID)
		}
		kb.byID[entry.ID] = i
	}
	return kb, nil
}

// Entries returns the entries in load order.
func (kb *KnowledgeBase) Entries() []model.KnowledgeEntry {
	return kb.entries
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

// Get returns the entry with the given id.
func (kb *KnowledgeBase) Get(entryID string) (model.KnowledgeEntry, error) {
	idx, ok := kb.byID[entryID]
	if !ok {
		return model.KnowledgeEntry{}, errors.NewEntryNotFoundError(entryID)
	}
	return kb.entries[idx], nil
}

// ReferenceCorpus is an ordered, immutable collection of reference
// documents used for retrieval.
type ReferenceCorpus struct {
	documents []model.ReferenceDocument
	byID      map[string]int
}

// NewReferenceCorpus validates the documents and builds the collection.
func NewReferenceCorpus(documents []model.ReferenceDocument) (*ReferenceCorpus, error) {
	rc := &ReferenceCorpus{
		documents: make([]model.ReferenceDocument, len(documents)),
		byID:      make(map[string]int, len(documents)),
	}
	copy(rc.documents, documents)

	for i, doc := range rc.documents {
		if strings.TrimSpace(doc.ID) == "" {
			return nil, errors.NewInvalidDocumentError("", "id")
		}
		if strings.TrimSpace(doc.Title) == "" {
			return nil, errors.NewInvalidDocumentError(doc.ID, "title")
		}
		if strings.TrimSpace(doc.Content) == "" {
			return nil, errors.NewInvalidDocumentError(doc.ID, "content")
		}
		if _, exists := rc.byID[doc.ID]; exists {
			return nil, errors.NewDuplicateIDError("reference corpus", doc.ID)
		}
		rc.byID[doc.ID] = i
	}
	return rc, nil
}

// Documents returns the documents in load order.
func (rc *ReferenceCorpus) Documents() []model.ReferenceDocument {
	return rc.documents
}

// Len returns the number of documents.
func (rc *ReferenceCorpus) Len() int {
	return len(rc.documents)
}
