// Package references selects supporting documents for advisor responses:
// TF-IDF scoring, tag boosting, and diversity-aware re-ranking so the
// chosen references cover distinct information instead of repeating the
// highest-scoring document three times.
package references

import (
	"sort"
	"strings"

	"github.com/campusdesk/advising-engine/config"
	"github.com/campusdesk/advising-engine/internal/search"
	"github.com/campusdesk/advising-engine/internal/tokenizer"
	"github.com/campusdesk/advising-engine/model"
	"github.com/campusdesk/advising-engine/services"
	"github.com/campusdesk/advising-engine/store"
)

const snippetMaxLength = 200

// Retriever scores queries against a reference corpus. Like the knowledge
// retriever it is immutable after construction and safe for concurrent use.
type Retriever struct {
	corpus          *store.ReferenceCorpus
	vectorizer      *search.Vectorizer
	tagBoost        float64
	diversityWeight float64
}

// candidate tracks one corpus document through scoring and selection.
type candidate struct {
	index int
	score float64
}

// NewRetriever fits a vectorizer over the corpus. Document text is the
// title followed by the content; tags participate in boosting only.
func NewRetriever(corpus *store.ReferenceCorpus, settings *config.AdvisorSettings) *Retriever {
	documents := corpus.Documents()
	texts := make([]string, len(documents))
	for i, doc := range documents {
		texts[i] = doc.Title + " " + doc.Content
	}
	return &Retriever{
		corpus:          corpus,
		vectorizer:      search.NewVectorizer(texts),
		tagBoost:        settings.TagBoost,
		diversityWeight: settings.DiversityWeight,
	}
}

// Retrieve returns up to maxReferences supporting documents for the query.
// An empty corpus or non-positive budget yields an empty slice; neither is
// an error.
//
// Selection is greedy maximal-marginal-relevance: each step picks the
// remaining candidate maximizing score - lambda*maxSimilarityToSelected,
// where the similarity is the highest pairwise cosine between the candidate
// and any already-selected document. Naive top-N tends to return
// near-identical documents; the lambda penalty trades a little raw score
// for coverage.
func (r *Retriever) Retrieve(query services.Query, maxReferences int) []model.Reference {
	if maxReferences <= 0 || r.corpus.Len() == 0 {
		return []model.Reference{}
	}

	documents := r.corpus.Documents()
	queryVector := r.vectorizer.Vectorize(query.Text)
	queryTokens := make(map[string]struct{})
	for _, token := range tokenizer.Normalize(query.Text) {
		queryTokens[token] = struct{}{}
	}

	// Base cosine score plus tag boost, capped at 1.
	candidates := make([]candidate, 0, len(documents))
	for i := range documents {
		score := search.CosineSimilarity(queryVector, r.vectorizer.DocumentVector(i))
		if r.tagIntersects(documents[i].Tags, queryTokens) {
			score += r.tagBoost
			if score > 1 {
				score = 1
			}
		}
		if score > 0 {
			candidates = append(candidates, candidate{index: i, score: score})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	selected := make([]candidate, 0, maxReferences)
	for len(candidates) > 0 && len(selected) < maxReferences {
		bestPos := -1
		bestMarginal := 0.0
		for pos, cand := range candidates {
			marginal := cand.score - r.diversityWeight*r.maxSimilarityToSelected(cand.index, selected)
			if bestPos == -1 || marginal > bestMarginal {
				bestPos = pos
				bestMarginal = marginal
			}
		}
		selected = append(selected, candidates[bestPos])
		candidates = append(candidates[:bestPos], candidates[bestPos+1:]...)
	}

	references := make([]model.Reference, len(selected))
	for i, cand := range selected {
		doc := documents[cand.index]
		references[i] = model.Reference{
			DocumentID: doc.ID,
			Title:      doc.Title,
			URL:        doc.URL,
			Snippet:    buildSnippet(doc.Content, queryTokens),
			Score:      cand.score,
		}
	}
	return references
}

// tagIntersects reports whether any document tag appears among the query
// tokens. Tags are normalized the same way as text so multi-word tags
// still match.
func (r *Retriever) tagIntersects(tags []string, queryTokens map[string]struct{}) bool {
	for _, tag := range tags {
		for _, token := range tokenizer.Normalize(tag) {
			if _, ok := queryTokens[token]; ok {
				return true
			}
		}
	}
	return false
}

// maxSimilarityToSelected returns the highest pairwise cosine similarity
// between the candidate document and any already-selected document.
func (r *Retriever) maxSimilarityToSelected(index int, selected []candidate) float64 {
	maxSim := 0.0
	for _, sel := range selected {
		sim := search.CosineSimilarity(r.vectorizer.DocumentVector(index), r.vectorizer.DocumentVector(sel.index))
		if sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim
}

// buildSnippet picks the first sentence of the content that mentions a
// query token, truncated to snippetMaxLength. Falls back to the leading
// content when nothing matches.
func buildSnippet(content string, queryTokens map[string]struct{}) string {
	for _, sentence := range splitSentences(content) {
		for _, token := range tokenizer.Normalize(sentence) {
			if _, ok := queryTokens[token]; ok {
				if len(sentence) > snippetMaxLength {
					return strings.TrimSpace(sentence[:snippetMaxLength])
				}
				return sentence
			}
		}
	}

	trimmed := strings.TrimSpace(content)
	if len(trimmed) <= snippetMaxLength {
		return trimmed
	}
	cut := trimmed[:snippetMaxLength]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// splitSentences splits content on sentence-ending punctuation followed by
// whitespace.
func splitSentences(content string) []string {
	var sentences []string
	start := 0
	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			end := i + 1
			sentence := strings.TrimSpace(string(runes[start:end]))
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = end
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

var _ services.Retriever = (*Retriever)(nil)
