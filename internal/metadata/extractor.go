// Package metadata infers structured fields from free-form student emails:
// academic terms, student names, and deadline dates. Every inferred fact
// carries an audit reason so reviewers can see where a value came from.
package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/campusdesk/advising-engine/model"
)

const defaultContextWindow = 48

// termRegex matches academic terms like "Fall 2024".
var termRegex = regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\s*(20\d{2})\b`)

// nameRegex matches self-introductions like "my name is Jordan Lee". The
// name itself stays case-sensitive so trailing lowercase words ("and I
// have a question") are not swallowed into it.
var nameRegex = regexp.MustCompile(`\b(?i:my\s+name\s+is|this\s+is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\b`)

// monthDayRegex matches dates like "October 21" or "Oct. 3rd".
var monthDayRegex = regexp.MustCompile(`(?i)\b(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)

// numericDateRegex matches dates like "10/21" or "10-21-2024".
var numericDateRegex = regexp.MustCompile(`\b(0?[1-9]|1[0-2])[/-](0?[1-9]|[12]\d|3[01])(?:[/-](20\d{2}))?\b`)

var wordRegex = regexp.MustCompile(`[a-z]+`)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthByPrefix = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

var withdrawKeywords = map[string]struct{}{
	"withdraw": {}, "withdrawal": {}, "drop": {}, "dropped": {}, "remove": {}, "removed": {},
}

var registrationKeywords = map[string]struct{}{
	"register": {}, "registration": {}, "enroll": {}, "enrollment": {}, "add": {},
}

// Extractor pulls metadata facts out of free-form text.
type Extractor struct {
	// contextWindow is how many characters around a date are inspected to
	// classify it as a withdrawal or registration deadline.
	contextWindow int
}

// NewExtractor creates an Extractor with the default context window.
func NewExtractor() *Extractor {
	return &Extractor{contextWindow: defaultContextWindow}
}

// Extract returns every metadata fact found in the text, in a stable order:
// terms, then dates, then names.
func (e *Extractor) Extract(text string) []model.MetadataFact {
	lowerText := strings.ToLower(text)

	facts := e.extractTerms(text)
	facts = append(facts, e.extractDates(text, lowerText)...)
	facts = append(facts, e.extractNames(text)...)
	return facts
}

func (e *Extractor) extractTerms(text string) []model.MetadataFact {
	var facts []model.MetadataFact
	for _, match := range termRegex.FindAllStringSubmatch(text, -1) {
		term := capitalize(match[1]) + " " + match[2]
		facts = append(facts, model.MetadataFact{
			Key:    "term",
			Value:  term,
			Reason: fmt.Sprintf("Detected academic term '%s' in the message.", term),
		})
	}
	return facts
}

func (e *Extractor) extractNames(text string) []model.MetadataFact {
	var facts []model.MetadataFact
	for _, match := range nameRegex.FindAllStringSubmatch(text, -1) {
		parts := strings.Fields(match[1])
		for i, part := range parts {
			parts[i] = capitalize(part)
		}
		name := strings.Join(parts, " ")
		if len(name) < 2 {
			continue
		}
		facts = append(facts, model.MetadataFact{
			Key:    "student_name",
			Value:  name,
			Reason: fmt.Sprintf("Captured student name '%s' from the greeting.", name),
		})
	}
	return facts
}

func (e *Extractor) extractDates(text, lowerText string) []model.MetadataFact {
	var facts []model.MetadataFact

	for _, loc := range monthDayRegex.FindAllStringSubmatchIndex(text, -1) {
		monthKey := strings.ToLower(text[loc[2]:loc[3]])
		day, _ := strconv.Atoi(text[loc[4]:loc[5]])
		month, ok := monthByPrefix[monthKey[:3]]
		if !ok {
			continue
		}
		value := fmt.Sprintf("%s %d", month, day)
		facts = append(facts, e.classifyDeadline(lowerText, loc[0], loc[1], value)...)
	}

	for _, loc := range numericDateRegex.FindAllStringSubmatchIndex(text, -1) {
		month, _ := strconv.Atoi(text[loc[2]:loc[3]])
		day, _ := strconv.Atoi(text[loc[4]:loc[5]])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		value := fmt.Sprintf("%s %d", monthNames[month-1], day)
		if loc[6] >= 0 {
			value = fmt.Sprintf("%s, %s", value, text[loc[6]:loc[7]])
		}
		facts = append(facts, e.classifyDeadline(lowerText, loc[0], loc[1], value)...)
	}
	return facts
}

// classifyDeadline inspects the text around a date to decide which deadline
// field it fills, if any.
func (e *Extractor) classifyDeadline(lowerText string, start, end int, value string) []model.MetadataFact {
	window := e.window(lowerText, start, end)
	tokens := make(map[string]struct{})
	for _, word := range wordRegex.FindAllString(window, -1) {
		tokens[word] = struct{}{}
	}

	var facts []model.MetadataFact
	withdraw := intersects(tokens, withdrawKeywords)
	register := intersects(tokens, registrationKeywords)

	if withdraw {
		facts = append(facts, model.MetadataFact{
			Key:    "withdrawal_deadline",
			Value:  value,
			Reason: fmt.Sprintf("Identified withdrawal deadline '%s' from the message context.", value),
		})
	}
	if register {
		facts = append(facts, model.MetadataFact{
			Key:    "registration_deadline",
			Value:  value,
			Reason: fmt.Sprintf("Identified registration deadline '%s' from the message context.", value),
		})
	}
	if !withdraw && !register && strings.Contains(window, "deadline") {
		facts = append(facts, model.MetadataFact{
			Key:    "deadline",
			Value:  value,
			Reason: fmt.Sprintf("Detected deadline reference '%s'.", value),
		})
	}
	return facts
}

func (e *Extractor) window(lowerText string, start, end int) string {
	begin := start - e.contextWindow
	if begin < 0 {
		begin = 0
	}
	finish := end + e.contextWindow
	if finish > len(lowerText) {
		finish = len(lowerText)
	}
	return lowerText[begin:finish]
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(word string) string {
	if word == "" {
		return word
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func intersects(tokens map[string]struct{}, keywords map[string]struct{}) bool {
	for token := range tokens {
		if _, ok := keywords[token]; ok {
			return true
		}
	}
	return false
}
