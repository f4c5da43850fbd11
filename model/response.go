package model

// ResponseStatus is the terminal state of the decision engine for a query.
type ResponseStatus string

const (
	// StatusAutoSent means the response cleared every check and can be sent
	// without human review.
	StatusAutoSent ResponseStatus = "auto_sent"

	// StatusNeedsReview means a human advisor has to look at the draft
	// before anything goes out.
	StatusNeedsReview ResponseStatus = "needs_review"
)

// MatchResult is a single knowledge base entry scored against a query.
// Results are ordered by descending score; ties keep the original knowledge
// base order so repeated runs produce identical output.
type MatchResult struct {
	EntryID string         `json:"entry_id"`
	Score   float64        `json:"score"`
	Entry   KnowledgeEntry `json:"-"`
}

// Reference is a supporting document selected for a response.
type Reference struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	URL        string  `json:"url,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	Score      float64 `json:"score"`
}

// MetadataFact is a metadata value inferred from the query text, with the
// audit reason explaining where it came from.
type MetadataFact struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// AdvisorResponse is the structured outcome of processing one query.
// Reasons collects every decision-trail message produced along the way,
// regardless of the final status, and TopMatches always carries the ranking
// that led to the decision so a reviewer can see why.
type AdvisorResponse struct {
	ResponseID        string         `json:"response_id"`
	Status            ResponseStatus `json:"status"`
	Subject           string         `json:"subject"`
	Body              string         `json:"body"`
	MatchedEntryID    string         `json:"matched_entry_id,omitempty"`
	Confidence        float64        `json:"confidence"`
	Reasons           []string       `json:"reasons"`
	TopMatches        []MatchResult  `json:"top_matches"`
	FollowUpQuestions []string       `json:"follow_up_questions,omitempty"`
	References        []Reference    `json:"references"`
}

// AutoSend reports whether the response may be dispatched without review.
func (r AdvisorResponse) AutoSend() bool {
	return r.Status == StatusAutoSent
}
