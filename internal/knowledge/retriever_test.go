package knowledge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusdesk/advising-engine/model"
	"github.com/campusdesk/advising-engine/services"
	"github.com/campusdesk/advising-engine/store"
)

func testKnowledgeBase(t *testing.T) *store.KnowledgeBase {
	t.Helper()
	kb, err := store.NewKnowledgeBase([]model.KnowledgeEntry{
		{
			ID:               "transcript_request",
			Subject:          "Ordering an Official Transcript",
			Utterances:       []string{"order a transcript", "request transcript copy", "official transcript for graduate school"},
			ResponseTemplate: "Hi {student_name}, transcripts can be ordered through the registrar portal.",
		},
		{
			ID:               "course_withdrawal",
			Subject:          "Withdrawing from a Course",
			Utterances:       []string{"withdraw from a course", "drop a class after the deadline"},
			ResponseTemplate: "Hi {student_name}, the withdrawal deadline for {term} is {withdrawal_deadline}.",
		},
		{
			ID:               "registration_help",
			Subject:          "Registering for Classes",
			Utterances:       []string{"register for classes", "how to enroll in courses for next term"},
			ResponseTemplate: "Hi {student_name}, registration opens on {registration_deadline}.",
		},
	})
	require.NoError(t, err)
	return kb
}

func TestRank(t *testing.T) {
	retriever := NewRetriever(testKnowledgeBase(t))

	t.Run("returns every entry sorted descending", func(t *testing.T) {
		results := retriever.Rank(services.Query{Text: "I would like to know how to request an official transcript"})
		require.Len(t, results, 3)
		for i := 1; i < len(results); i++ {
			require.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
				"results must be sorted by descending score")
		}
		require.Equal(t, "transcript_request", results[0].EntryID)
	})

	t.Run("verbatim utterance scores above auto-send threshold", func(t *testing.T) {
		results := retriever.Rank(services.Query{Text: "How do I order my transcript?"})
		require.Equal(t, "transcript_request", results[0].EntryID)
		require.GreaterOrEqual(t, results[0].Score, 0.95)
	})

	t.Run("synonym expansion lifts withdrawal queries", func(t *testing.T) {
		results := retriever.Rank(services.Query{Text: "I need to remove a course from my schedule."})
		require.Equal(t, "course_withdrawal", results[0].EntryID)
		require.Greater(t, results[0].Score, 0.0)
	})

	t.Run("rerun produces identical ordering and scores", func(t *testing.T) {
		query := services.Query{Text: "withdraw from a course this term"}
		first := retriever.Rank(query)
		for i := 0; i < 20; i++ {
			again := retriever.Rank(query)
			require.Equal(t, first, again, "ranking must be deterministic")
		}
	})

	t.Run("empty query scores everything zero in original order", func(t *testing.T) {
		results := retriever.Rank(services.Query{Text: "how do I please"})
		require.Len(t, results, 3)
		require.Equal(t, "transcript_request", results[0].EntryID)
		require.Equal(t, "course_withdrawal", results[1].EntryID)
		require.Equal(t, "registration_help", results[2].EntryID)
		for _, r := range results {
			require.Zero(t, r.Score)
		}
	})

	t.Run("unrelated query never drops entries", func(t *testing.T) {
		results := retriever.Rank(services.Query{Text: "planning a study abroad semester in spain"})
		require.Len(t, results, 3)
	})
}
