// Package advisor implements the decision engine: it consumes the ranked
// knowledge base matches, applies the auto-send threshold and ambiguity
// checks, resolves template placeholders, and assembles the final
// structured response with its audit trail.
package advisor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campusdesk/advising-engine/config"
	"github.com/campusdesk/advising-engine/internal/metadata"
	"github.com/campusdesk/advising-engine/model"
	"github.com/campusdesk/advising-engine/services"
)

// Advisor runs the full pipeline for one query: rank, decide, compose,
// attach references. It holds no per-query state, so one instance serves
// concurrent queries.
type Advisor struct {
	settings  *config.AdvisorSettings
	ranker    services.Ranker
	retriever services.Retriever // nil disables reference retrieval
	composer  services.Composer
	extractor *metadata.Extractor
}

// New creates an Advisor. The retriever may be nil (reference retrieval
// disabled); a nil composer falls back to the deterministic
// TemplateComposer.
func New(settings *config.AdvisorSettings, ranker services.Ranker, retriever services.Retriever, composer services.Composer) (*Advisor, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid advisor settings: %s", strings.Join(conflicts, "; "))
	}
	if ranker == nil {
		return nil, fmt.Errorf("ranker cannot be nil")
	}
	if composer == nil {
		composer = TemplateComposer{}
	}
	return &Advisor{
		settings:  settings,
		ranker:    ranker,
		retriever: retriever,
		composer:  composer,
		extractor: metadata.NewExtractor(),
	}, nil
}

// ProcessQuery decides between sending an automated response and deferring
// to a human reviewer. The returned response always carries the bounded
// top-match ranking and the full reasons trail, whatever the outcome.
// The only error condition is a composer failure; low confidence,
// ambiguity, and empty inputs are ordinary outcomes.
func (a *Advisor) ProcessQuery(query services.Query) (model.AdvisorResponse, error) {
	response := model.AdvisorResponse{
		ResponseID: uuid.New().String(),
		Status:     model.StatusNeedsReview,
		Reasons:    []string{},
		TopMatches: []model.MatchResult{},
		References: []model.Reference{},
	}

	ranked := a.ranker.Rank(query)
	limit := a.settings.TopMatches
	if limit > len(ranked) {
		limit = len(ranked)
	}
	response.TopMatches = append(response.TopMatches, ranked[:limit]...)

	// Inferred metadata is recorded in the reasons trail whether or not it
	// ends up filling a placeholder; caller metadata wins on conflicts.
	inferred := a.extractor.Extract(query.Text)
	inferredFields := make(map[string]string, len(inferred))
	for _, fact := range inferred {
		response.Reasons = append(response.Reasons, fact.Reason)
		if _, exists := inferredFields[fact.Key]; !exists {
			inferredFields[fact.Key] = fact.Value
		}
	}

	if a.retriever != nil {
		response.References = a.retriever.Retrieve(query, a.settings.MaxReferences)
	}

	// Rule 1: nothing relevant at all.
	if len(ranked) == 0 || ranked[0].Score == 0 {
		response.Reasons = append(response.Reasons, "no relevant match found")
		return response, nil
	}

	top := ranked[0]
	response.Confidence = top.Score

	// Rule 2: two candidates too close to call.
	if len(ranked) > 1 {
		second := ranked[1]
		if top.Score-second.Score < a.settings.AmbiguityMargin &&
			top.Score >= a.settings.RelevanceFloor && second.Score >= a.settings.RelevanceFloor {
			response.Reasons = append(response.Reasons,
				fmt.Sprintf("ambiguous match: candidates %s, %s scored similarly", top.EntryID, second.EntryID))
			return response, nil
		}
	}

	// From here on a single entry owns the draft.
	response.MatchedEntryID = top.EntryID
	response.FollowUpQuestions = top.Entry.FollowUpQuestions

	fields := a.resolveFields(query, inferredFields)

	subject, body, err := a.composer.Compose(services.TemplateContext{
		Entry:      top.Entry,
		Query:      query,
		Fields:     fields,
		References: response.References,
	})
	if err != nil {
		return model.AdvisorResponse{}, err
	}
	response.Subject = subject
	response.Body = appendReferences(body, response.References)
	response.Reasons = append(response.Reasons,
		fmt.Sprintf("drafted response using template '%s'", top.EntryID))

	// Rule 3: confidence gate.
	if top.Score < a.settings.AutoSendThreshold {
		response.Reasons = append(response.Reasons,
			fmt.Sprintf("confidence %.2f below auto-send threshold %.2f", top.Score, a.settings.AutoSendThreshold))
		return response, nil
	}

	// Rule 4: every placeholder must be resolvable.
	if missing := missingFields(top.Entry.ResponseTemplate, fields); len(missing) > 0 {
		response.Reasons = append(response.Reasons,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
		return response, nil
	}

	// Rule 5: everything checked out.
	response.Status = model.StatusAutoSent
	response.Reasons = append(response.Reasons,
		fmt.Sprintf("confidence %.2f meets auto-send threshold %.2f", top.Score, a.settings.AutoSendThreshold))
	return response, nil
}

// resolveFields merges placeholder sources by precedence: static
// always-available fields, then inferred metadata, then caller metadata.
func (a *Advisor) resolveFields(query services.Query, inferredFields map[string]string) map[string]string {
	fields := make(map[string]string)
	for key, value := range a.settings.StaticFields {
		fields[key] = value
	}
	for key, value := range inferredFields {
		fields[key] = value
	}
	for key, value := range query.Metadata {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}

// missingFields lists template placeholders with no resolvable value.
func missingFields(template string, fields map[string]string) []string {
	var missing []string
	for _, name := range Placeholders(template) {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// appendReferences adds a numbered references section to a non-empty body.
func appendReferences(body string, references []model.Reference) string {
	if body == "" || len(references) == 0 {
		return body
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\nReferences:\n")
	for i, ref := range references {
		if ref.URL != "" {
			fmt.Fprintf(&b, "[%d] %s (%s)\n", i+1, ref.Title, ref.URL)
		} else {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, ref.Title)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

var _ services.Advisor = (*Advisor)(nil)
