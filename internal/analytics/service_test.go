package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/campusdesk/advising-engine/model"
)

func TestTrackAndDashboard(t *testing.T) {
	service := NewService("")

	events := []model.AdviseEvent{
		{Query: "order a transcript", Status: model.StatusAutoSent, MatchedEntryID: "transcript_request", Confidence: 1.0, ResponseTime: 4 * time.Millisecond},
		{Query: "order a transcript", Status: model.StatusAutoSent, MatchedEntryID: "transcript_request", Confidence: 0.98, ResponseTime: 6 * time.Millisecond},
		{Query: "withdraw from a course", Status: model.StatusNeedsReview, MatchedEntryID: "course_withdrawal", Confidence: 0.7, ResponseTime: 5 * time.Millisecond},
		{Query: "study abroad", Status: model.StatusNeedsReview, Confidence: 0, ResponseTime: 5 * time.Millisecond},
	}
	for _, event := range events {
		if err := service.TrackAdviseEvent(event); err != nil {
			t.Fatalf("TrackAdviseEvent failed: %v", err)
		}
	}

	dashboard, err := service.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData failed: %v", err)
	}

	if dashboard.TotalQueries != 4 {
		t.Errorf("Expected 4 total queries, got %d", dashboard.TotalQueries)
	}
	if dashboard.AutoSentCount != 2 {
		t.Errorf("Expected 2 auto-sent, got %d", dashboard.AutoSentCount)
	}
	if dashboard.NeedsReviewCount != 2 {
		t.Errorf("Expected 2 needs-review, got %d", dashboard.NeedsReviewCount)
	}
	if dashboard.AutoSendRate != 0.5 {
		t.Errorf("Expected auto-send rate 0.5, got %v", dashboard.AutoSendRate)
	}

	if len(dashboard.PopularQueries) == 0 || dashboard.PopularQueries[0].Query != "order a transcript" {
		t.Errorf("Expected 'order a transcript' to be the most popular query, got %+v", dashboard.PopularQueries)
	}
	if dashboard.PopularQueries[0].AskedCount != 2 {
		t.Errorf("Expected 2 asks for the top query, got %d", dashboard.PopularQueries[0].AskedCount)
	}

	if len(dashboard.EntryUsage) == 0 || dashboard.EntryUsage[0].EntryID != "transcript_request" {
		t.Errorf("Expected 'transcript_request' to lead entry usage, got %+v", dashboard.EntryUsage)
	}
}

func TestDashboardEmpty(t *testing.T) {
	service := NewService("")

	dashboard, err := service.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData failed: %v", err)
	}

	if dashboard.TotalQueries != 0 {
		t.Errorf("Expected 0 total queries, got %d", dashboard.TotalQueries)
	}
	if dashboard.AutoSendRate != 0 {
		t.Errorf("Expected auto-send rate 0, got %v", dashboard.AutoSendRate)
	}
	if dashboard.AvgResponseTime != 0 {
		t.Errorf("Expected avg response time 0, got %d", dashboard.AvgResponseTime)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "analytics.json")

	service := NewService(dataFile)
	if err := service.TrackAdviseEvent(model.AdviseEvent{
		Query:      "order a transcript",
		Status:     model.StatusAutoSent,
		Confidence: 1.0,
	}); err != nil {
		t.Fatalf("TrackAdviseEvent failed: %v", err)
	}

	// The async save has no completion signal; write synchronously instead.
	if err := service.saveData(); err != nil {
		t.Fatalf("saveData failed: %v", err)
	}

	reloaded := NewService(dataFile)
	dashboard, err := reloaded.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData failed: %v", err)
	}
	if dashboard.TotalQueries != 1 {
		t.Errorf("Expected 1 query after reload, got %d", dashboard.TotalQueries)
	}
}
