// Package knowledge ranks knowledge base entries against student queries
// using the TF-IDF vector space model.
package knowledge

import (
	"sort"
	"strings"

	"github.com/campusdesk/advising-engine/internal/search"
	"github.com/campusdesk/advising-engine/model"
	"github.com/campusdesk/advising-engine/services"
	"github.com/campusdesk/advising-engine/store"
)

// Retriever scores queries against every knowledge base entry. The
// vocabulary and all weight vectors are built once here and never mutated,
// so a single Retriever serves concurrent queries without locking.
type Retriever struct {
	kb         *store.KnowledgeBase
	vectorizer *search.Vectorizer

	// utteranceVectors[i] holds one vector per sample utterance of entry i.
	// An entry's score is the best of its utterance scores and the score of
	// its concatenated text: a query that restates one utterance verbatim
	// should score 1.0 even when the entry carries many other utterances.
	utteranceVectors [][]search.Vector
}

// NewRetriever fits a vectorizer over the knowledge base. IDF statistics
// come from one document per entry (its utterances concatenated), matching
// how document frequency is counted across the collection.
func NewRetriever(kb *store.KnowledgeBase) *Retriever {
	entries := kb.Entries()
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = strings.Join(entry.Utterances, " ")
	}
	vectorizer := search.NewVectorizer(texts)

	utteranceVectors := make([][]search.Vector, len(entries))
	for i, entry := range entries {
		vectors := make([]search.Vector, len(entry.Utterances))
		for j, utterance := range entry.Utterances {
			vectors[j] = vectorizer.Vectorize(utterance)
		}
		utteranceVectors[i] = vectors
	}

	return &Retriever{
		kb:               kb,
		vectorizer:       vectorizer,
		utteranceVectors: utteranceVectors,
	}
}

// Rank scores every entry against the query and returns all of them in
// descending score order. Ties keep knowledge base order (stable sort) so
// repeated runs produce identical output. Callers apply thresholds.
func (r *Retriever) Rank(query services.Query) []model.MatchResult {
	entries := r.kb.Entries()
	queryVector := r.vectorizer.Vectorize(query.Text)

	results := make([]model.MatchResult, len(entries))
	for i, entry := range entries {
		score := search.CosineSimilarity(queryVector, r.vectorizer.DocumentVector(i))
		for _, utteranceVector := range r.utteranceVectors[i] {
			if s := search.CosineSimilarity(queryVector, utteranceVector); s > score {
				score = s
			}
		}
		results[i] = model.MatchResult{
			EntryID: entry.ID,
			Score:   score,
			Entry:   entry,
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

var _ services.Ranker = (*Retriever)(nil)
