package model

import "time"

// AdviseEvent represents one processed query for analytics tracking
type AdviseEvent struct {
	Query          string         `json:"query"`
	Status         ResponseStatus `json:"status"`
	MatchedEntryID string         `json:"matched_entry_id,omitempty"`
	Confidence     float64        `json:"confidence"`
	ReferenceCount int            `json:"reference_count"`
	ResponseTime   time.Duration  `json:"response_time"`
	Timestamp      time.Time      `json:"timestamp"`
}

// PopularQuery represents aggregated data for frequently asked questions
type PopularQuery struct {
	Query      string `json:"query"`
	AskedCount int    `json:"asked_count"`
}

// EntryUsage represents how often a knowledge base entry wins the match
type EntryUsage struct {
	EntryID    string `json:"entry_id"`
	MatchCount int    `json:"match_count"`
}

// AnalyticsDashboard represents the advising analytics overview
type AnalyticsDashboard struct {
	// Summary metrics
	TotalQueries     int     `json:"total_queries"`
	AutoSentCount    int     `json:"auto_sent_count"`
	NeedsReviewCount int     `json:"needs_review_count"`
	AutoSendRate     float64 `json:"auto_send_rate"`
	AvgConfidence    float64 `json:"avg_confidence"`
	AvgResponseTime  int64   `json:"avg_response_time"` // in milliseconds

	// Detailed analytics
	PopularQueries []PopularQuery `json:"popular_queries"`
	EntryUsage     []EntryUsage   `json:"entry_usage"`
}
