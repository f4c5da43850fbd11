package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// stopWords is the small fixed list of terms that carry no signal for
// matching advising questions against the knowledge base.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {},
	"i": {}, "my": {}, "me": {}, "we": {}, "our": {}, "you": {}, "your": {},
	"is": {}, "am": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"how": {}, "what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"can": {}, "could": {}, "would": {}, "should": {}, "will": {}, "shall": {},
	"may": {}, "might": {}, "must": {}, "need": {}, "want": {}, "like": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "for": {}, "from": {}, "with": {},
	"at": {}, "by": {}, "as": {}, "if": {}, "it": {}, "its": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "there": {}, "here": {},
	"please": {}, "hi": {}, "hello": {}, "thanks": {}, "thank": {},
}

// synonyms maps a token to the canonical advising terms it should also
// count as. Matching tokens contribute both the original token and its
// replacements, which raises recall without mutating stored text.
var synonyms = map[string][]string{
	"remove":     {"withdraw"},
	"removed":    {"withdraw"},
	"drop":       {"withdraw"},
	"dropped":    {"withdraw"},
	"dropping":   {"withdraw"},
	"unenroll":   {"withdraw"},
	"quit":       {"withdraw"},
	"withdrawal": {"withdraw"},
	"enroll":     {"register"},
	"enrolling":  {"register"},
	"enrollment": {"registration"},
	"signup":     {"register"},
	"order":      {"request"},
	"ordering":   {"request"},
	"obtain":     {"request"},
	"class":      {"course"},
	"classes":    {"course"},
	"courses":    {"course"},
	"transcripts": {"transcript"},
	"fafsa":       {"financial", "aid"},
	"scholarship": {"financial", "aid"},
	"tuition":     {"financial"},
	"grades":      {"grade"},
	"gpa":         {"grade"},
}

// Tokenize converts a string into a slice of lowercase tokens.
// It lowercases the string and splits by non-alphanumeric characters.
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)
	split := nonAlphanumericRegex.Split(lowerText, -1)

	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" { // Filter out empty strings
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// Normalize tokenizes text, drops stop words, and applies synonym
// augmentation. An empty or all-stop-word input yields an empty slice, and
// every downstream similarity against it is defined to be 0.
func Normalize(text string) []string {
	tokens := Tokenize(text)

	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}
		normalized = append(normalized, token)
		if expansions, ok := synonyms[token]; ok {
			normalized = append(normalized, expansions...)
		}
	}
	return normalized
}

// IsStopWord reports whether the token is on the stop-word list.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
