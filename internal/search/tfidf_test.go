package search

import (
	"math"
	"testing"
)

func TestNewVectorizer(t *testing.T) {
	texts := []string{
		"order a transcript",
		"withdraw from a course",
		"register for a course",
	}

	v := NewVectorizer(texts)

	t.Run("vocabulary built in first-seen order", func(t *testing.T) {
		// "order" expands to "request" via synonym augmentation, so the
		// vocabulary is order, request, transcript, withdraw, course, register.
		wantSize := 6
		if v.VocabularySize() != wantSize {
			t.Errorf("Expected vocabulary size %d, got %d", wantSize, v.VocabularySize())
		}
	})

	t.Run("document count", func(t *testing.T) {
		if v.DocumentCount() != 3 {
			t.Errorf("Expected 3 fitted documents, got %d", v.DocumentCount())
		}
	})

	t.Run("IDF uses smoothed formula", func(t *testing.T) {
		// "course" appears in 2 of 3 documents: ln((1+3)/(1+2)) + 1
		vec := v.Vectorize("course")
		if len(vec) != 1 {
			t.Fatalf("Expected a single-term vector, got %v", vec)
		}
		wantIDF := math.Log(4.0/3.0) + 1
		for _, w := range vec {
			// Single-token query: TF = 1, so the weight is the IDF itself.
			if math.Abs(w-wantIDF) > 1e-12 {
				t.Errorf("Expected weight %v, got %v", wantIDF, w)
			}
		}
	})

	t.Run("out-of-vocabulary terms dropped", func(t *testing.T) {
		vec := v.Vectorize("spaceship")
		if len(vec) != 0 {
			t.Errorf("Expected empty vector for out-of-vocabulary query, got %v", vec)
		}
	})

	t.Run("empty text yields empty vector", func(t *testing.T) {
		vec := v.Vectorize("")
		if len(vec) != 0 {
			t.Errorf("Expected empty vector for empty text, got %v", vec)
		}
		allStops := v.Vectorize("how do I")
		if len(allStops) != 0 {
			t.Errorf("Expected empty vector for all-stop-word text, got %v", allStops)
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	texts := []string{
		"order a transcript",
		"withdraw from a course",
	}
	v := NewVectorizer(texts)

	t.Run("identical text scores 1", func(t *testing.T) {
		a := v.Vectorize("order a transcript")
		if got := CosineSimilarity(a, a); math.Abs(got-1.0) > 1e-12 {
			t.Errorf("Expected self-similarity 1.0, got %v", got)
		}
	})

	t.Run("disjoint text scores 0", func(t *testing.T) {
		a := v.Vectorize("order a transcript")
		b := v.Vectorize("withdraw from a course")
		if got := CosineSimilarity(a, b); got != 0 {
			t.Errorf("Expected similarity 0 for disjoint vectors, got %v", got)
		}
	})

	t.Run("zero norm is defined as 0", func(t *testing.T) {
		empty := v.Vectorize("")
		a := v.Vectorize("order a transcript")
		if got := CosineSimilarity(empty, a); got != 0 {
			t.Errorf("Expected similarity against empty vector to be 0, got %v", got)
		}
		if got := CosineSimilarity(a, empty); got != 0 {
			t.Errorf("Expected similarity against empty vector to be 0, got %v", got)
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		a := v.Vectorize("order a transcript copy")
		b := v.Vectorize("transcript order form")
		if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
			t.Error("Expected cosine similarity to be symmetric")
		}
	})

	t.Run("deterministic across recomputation", func(t *testing.T) {
		first := CosineSimilarity(v.Vectorize("transcript order"), v.DocumentVector(0))
		for i := 0; i < 50; i++ {
			again := CosineSimilarity(v.Vectorize("transcript order"), v.DocumentVector(0))
			if again != first {
				t.Fatalf("Expected bit-identical similarity on rerun, got %v then %v", first, again)
			}
		}
	})
}
