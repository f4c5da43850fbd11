// Package search implements the TF-IDF vector space model shared by the
// knowledge and reference retrievers: vocabulary construction, sparse
// weight vectors, and cosine similarity.
package search

import (
	"math"
	"sort"

	"github.com/campusdesk/advising-engine/internal/tokenizer"
)

// Vector is a sparse TF-IDF weight vector keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer holds the vocabulary and inverse document frequencies learned
// from one document collection. It is built once at construction time and
// never mutated afterwards, so concurrent reads are safe.
type Vectorizer struct {
	vocabulary map[string]int // normalized term -> stable index, assigned in first-seen order
	idf        []float64      // IDF per vocabulary index
	docVectors []Vector       // precomputed weight vector per fitted document
}

// NewVectorizer fits a vectorizer over the given texts. Vocabulary indices
// are assigned in first-seen order across the collection so results are
// reproducible run to run.
//
// IDF(t) = ln((1 + N) / (1 + df(t))) + 1. The +1 smoothing keeps IDF
// positive for terms present in every document and avoids log(0) for terms
// absent entirely.
func NewVectorizer(texts []string) *Vectorizer {
	v := &Vectorizer{
		vocabulary: make(map[string]int),
	}

	tokenized := make([][]string, len(texts))
	docFreq := make(map[string]int)
	for i, text := range texts {
		tokens := tokenizer.Normalize(text)
		tokenized[i] = tokens

		seenInDoc := make(map[string]struct{})
		for _, token := range tokens {
			if _, exists := v.vocabulary[token]; !exists {
				v.vocabulary[token] = len(v.vocabulary)
			}
			if _, seen := seenInDoc[token]; !seen {
				docFreq[token]++
				seenInDoc[token] = struct{}{}
			}
		}
	}

	docCount := float64(len(texts))
	v.idf = make([]float64, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		v.idf[idx] = math.Log((1+docCount)/(1+float64(docFreq[term]))) + 1
	}

	v.docVectors = make([]Vector, len(texts))
	for i, tokens := range tokenized {
		v.docVectors[i] = v.weigh(tokens)
	}
	return v
}

// weigh computes TF-IDF weights for a token sequence against the fitted
// vocabulary. Out-of-vocabulary tokens are silently dropped. TF is the
// token count divided by the total token count of the sequence itself.
func (v *Vectorizer) weigh(tokens []string) Vector {
	vec := make(Vector)
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[int]float64)
	for _, token := range tokens {
		if idx, exists := v.vocabulary[token]; exists {
			counts[idx]++
		}
	}

	total := float64(len(tokens))
	for idx, count := range counts {
		vec[idx] = (count / total) * v.idf[idx]
	}
	return vec
}

// Vectorize converts arbitrary text into a sparse weight vector over the
// fitted vocabulary.
func (v *Vectorizer) Vectorize(text string) Vector {
	return v.weigh(tokenizer.Normalize(text))
}

// DocumentVector returns the precomputed weight vector of the i-th fitted
// document.
func (v *Vectorizer) DocumentVector(i int) Vector {
	return v.docVectors[i]
}

// DocumentCount returns the number of documents the vectorizer was fitted on.
func (v *Vectorizer) DocumentCount() int {
	return len(v.docVectors)
}

// VocabularySize returns the number of distinct terms in the vocabulary.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// CosineSimilarity computes the cosine of the angle between two weight
// vectors, in [0, 1] for non-negative weights. It is defined as 0 when
// either vector has zero norm. Accumulation walks indices in sorted order
// so the result is bit-reproducible regardless of map iteration order.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot float64
	for _, idx := range sortedIndices(a) {
		if bw, ok := b[idx]; ok {
			dot += a[idx] * bw
		}
	}
	if dot == 0 {
		return 0
	}

	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := dot / (normA * normB)
	// Guard against floating point drift pushing an exact match past 1.
	if similarity > 1 {
		return 1
	}
	if similarity < 0 {
		return 0
	}
	return similarity
}

// norm computes the L2 norm of a vector with sorted-index accumulation.
func norm(v Vector) float64 {
	var sum float64
	for _, idx := range sortedIndices(v) {
		w := v[idx]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// sortedIndices returns the vector's indices in ascending order.
func sortedIndices(v Vector) []int {
	indices := make([]int, 0, len(v))
	for idx := range v {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
