// Package config provides configuration structures for the advising engine.
// It defines the confidence thresholds, retrieval tuning knobs, and the
// static fields that are always available for template substitution.
package config

import (
	"fmt"
	"strings"
)

// AdvisorSettings contains every tunable parameter of the advising engine.
//
// The exact ambiguity margin, diversity weight, and tag boost are policy
// decisions, not constants of the algorithm, so they live here instead of
// being hard-coded in the retrievers.
type AdvisorSettings struct {
	AutoSendThreshold float64 `json:"auto_send_threshold"` // Minimum top-match confidence to send without review (e.g. 0.95)
	RelevanceFloor    float64 `json:"relevance_floor"`     // Minimum score for a match to count as relevant at all (e.g. 0.55)
	AmbiguityMargin   float64 `json:"ambiguity_margin"`    // Score gap below which the top two matches are indistinguishable (e.g. 0.08)
	DiversityWeight   float64 `json:"diversity_weight"`    // Redundancy penalty weight for reference re-ranking, in (0, 1)
	TagBoost          float64 `json:"tag_boost"`           // Additive boost for references whose tags intersect the query tokens
	MaxReferences     int     `json:"max_references"`      // Maximum number of supporting references per response
	TopMatches        int     `json:"top_matches"`         // Number of ranked matches carried on every response for auditability

	// StaticFields are always-available template placeholders, such as the
	// advising office contact details. Caller and inferred metadata take
	// precedence over them.
	StaticFields map[string]string `json:"static_fields,omitempty"`
}

// ApplyDefaults applies default values to the advisor settings
func (settings *AdvisorSettings) ApplyDefaults() {
	if settings.AutoSendThreshold == 0 {
		settings.AutoSendThreshold = 0.95
	}
	if settings.RelevanceFloor == 0 {
		settings.RelevanceFloor = 0.55
	}
	if settings.AmbiguityMargin == 0 {
		settings.AmbiguityMargin = 0.08
	}
	if settings.DiversityWeight == 0 {
		settings.DiversityWeight = 0.3
	}
	if settings.TagBoost == 0 {
		settings.TagBoost = 0.1
	}
	if settings.MaxReferences == 0 {
		settings.MaxReferences = 3
	}
	if settings.TopMatches == 0 {
		settings.TopMatches = 3
	}
	if settings.StaticFields == nil {
		settings.StaticFields = map[string]string{}
	}
}

// Validate checks the settings for inconsistencies and returns a list of
// human-readable conflicts. An empty slice means the settings are usable.
func (settings *AdvisorSettings) Validate() []string {
	var conflicts []string

	conflicts = append(conflicts, checkUnitInterval("auto_send_threshold", settings.AutoSendThreshold)...)
	conflicts = append(conflicts, checkUnitInterval("relevance_floor", settings.RelevanceFloor)...)
	conflicts = append(conflicts, checkUnitInterval("ambiguity_margin", settings.AmbiguityMargin)...)
	conflicts = append(conflicts, checkUnitInterval("tag_boost", settings.TagBoost)...)

	if settings.DiversityWeight <= 0 || settings.DiversityWeight >= 1 {
		conflicts = append(conflicts, fmt.Sprintf("diversity_weight must be strictly between 0 and 1, got %v", settings.DiversityWeight))
	}
	if settings.AutoSendThreshold < settings.RelevanceFloor {
		conflicts = append(conflicts, "auto_send_threshold must be greater than or equal to relevance_floor")
	}
	if settings.MaxReferences < 0 {
		conflicts = append(conflicts, fmt.Sprintf("max_references cannot be negative, got %d", settings.MaxReferences))
	}
	if settings.TopMatches < 1 {
		conflicts = append(conflicts, fmt.Sprintf("top_matches must be at least 1, got %d", settings.TopMatches))
	}

	for key := range settings.StaticFields {
		if strings.TrimSpace(key) == "" {
			conflicts = append(conflicts, "static field keys cannot be empty or whitespace-only")
		}
	}

	return conflicts
}

// checkUnitInterval validates that a parameter lies in [0, 1]
func checkUnitInterval(name string, value float64) []string {
	if value < 0 || value > 1 {
		return []string{fmt.Sprintf("%s must be between 0 and 1, got %v", name, value)}
	}
	return nil
}
