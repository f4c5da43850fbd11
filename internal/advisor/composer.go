package advisor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	internalErrors "github.com/campusdesk/advising-engine/internal/errors"
	"github.com/campusdesk/advising-engine/services"
)

// placeholderRegex matches {field_name} markers in response templates.
var placeholderRegex = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

// Placeholders returns the distinct placeholder names of a template, in
// first-appearance order.
func Placeholders(template string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, match := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[match[1]]; ok {
			continue
		}
		seen[match[1]] = struct{}{}
		names = append(names, match[1])
	}
	return names
}

// substitute fills every resolvable placeholder and leaves unresolved ones
// intact so a reviewer can see exactly what is missing.
func substitute(template string, fields map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(marker string) string {
		name := marker[1 : len(marker)-1]
		if value, ok := fields[name]; ok {
			return value
		}
		return marker
	})
}

// TemplateComposer produces the outgoing email deterministically from the
// entry's response template.
type TemplateComposer struct{}

// Compose fills the matched entry's template with the resolved fields.
func (TemplateComposer) Compose(ctx services.TemplateContext) (string, string, error) {
	subject := "Re: " + ctx.Entry.Subject
	body := substitute(ctx.Entry.ResponseTemplate, ctx.Fields)
	return subject, body, nil
}

// callableOutput is the structure an external composer must return.
type callableOutput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CallableComposer delegates phrasing to an external callable (typically a
// hosted language model behind a client function) and validates the
// returned structure before using it.
type CallableComposer struct {
	name string
	call func(prompt string) (string, error)
}

// NewCallableComposer wraps an external callable as a Composer.
func NewCallableComposer(name string, call func(prompt string) (string, error)) *CallableComposer {
	return &CallableComposer{name: name, call: call}
}

// Compose builds a prompt from the drafted template and the student's
// question, invokes the callable, and validates its JSON reply. A reply
// missing the subject or body is a ComposerError, not a usable response.
func (c *CallableComposer) Compose(ctx services.TemplateContext) (string, string, error) {
	draft := substitute(ctx.Entry.ResponseTemplate, ctx.Fields)

	var prompt strings.Builder
	prompt.WriteString("Rewrite the following advising reply in a warm, professional tone.\n")
	prompt.WriteString("Respond with a JSON object containing \"subject\" and \"body\".\n\n")
	fmt.Fprintf(&prompt, "Student question: %s\n\n", ctx.Query.Text)
	fmt.Fprintf(&prompt, "Subject: %s\n", ctx.Entry.Subject)
	fmt.Fprintf(&prompt, "Draft reply:\n%s\n", draft)

	raw, err := c.call(prompt.String())
	if err != nil {
		return "", "", internalErrors.WrapComposerError(c.name, err)
	}

	var output callableOutput
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		return "", "", internalErrors.WrapComposerError(c.name, err)
	}

	var missing []string
	if strings.TrimSpace(output.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(output.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return "", "", internalErrors.NewComposerError(c.name, missing...)
	}
	return output.Subject, output.Body, nil
}

var (
	_ services.Composer = TemplateComposer{}
	_ services.Composer = (*CallableComposer)(nil)
)
