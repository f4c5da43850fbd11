package model

// KnowledgeEntry is a reusable advising response template together with the
// sample utterances used to match student questions against it.
type KnowledgeEntry struct {
	ID                string   `json:"id"`
	Subject           string   `json:"subject"`
	Categories        []string `json:"categories,omitempty"`
	Utterances        []string `json:"utterances"`
	ResponseTemplate  string   `json:"response_template"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
}

// ReferenceDocument is a supporting knowledge document used for retrieval.
type ReferenceDocument struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	URL     string   `json:"url,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// HasTag reports whether the document carries the given tag.
func (d ReferenceDocument) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
