package services

import (
	"github.com/campusdesk/advising-engine/model"
)

// Query is one incoming student question together with any metadata the
// caller already knows (advising portal form fields, CRM lookups, ...).
// Caller metadata always wins over metadata inferred from the text.
type Query struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TemplateContext carries everything a composer needs to produce the
// outgoing subject and body.
type TemplateContext struct {
	Entry      model.KnowledgeEntry
	Query      Query
	Fields     map[string]string // fully merged placeholder values
	References []model.Reference
}

// Ranker scores every knowledge base entry against a query, descending,
// with ties kept in knowledge base order. No entry is ever dropped;
// thresholds are the decision engine's job.
type Ranker interface {
	Rank(query Query) []model.MatchResult
}

// Retriever selects supporting reference documents for a query.
// An empty result is an ordinary outcome, not an error.
type Retriever interface {
	Retrieve(query Query, maxReferences int) []model.Reference
}

// Composer turns a matched entry and its resolved fields into the outgoing
// subject and body. Implementations must validate their own output; a
// structure missing required fields is a ComposerError.
type Composer interface {
	Compose(ctx TemplateContext) (subject string, body string, err error)
}

// Advisor is the full pipeline: rank, decide, compose, attach references.
type Advisor interface {
	ProcessQuery(query Query) (model.AdvisorResponse, error)
}
