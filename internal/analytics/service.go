// Package analytics tracks advising outcomes and aggregates them into a
// dashboard: auto-send rate, average confidence, popular questions, and
// which knowledge base entries do the most work.
package analytics

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/campusdesk/advising-engine/model"
)

const maxEventsToKeep = 10000 // Keep last 10k events for performance

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.AdviseEvent
	dataFilePath string
}

// NewService creates a new analytics service. An empty dataFilePath keeps
// the events in memory only.
func NewService(dataFilePath string) *Service {
	service := &Service{
		events:       make([]model.AdviseEvent, 0),
		dataFilePath: dataFilePath,
	}

	// Load existing analytics data
	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackAdviseEvent records a new advising event
func (s *Service) TrackAdviseEvent(event model.AdviseEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}

	// Persist data asynchronously
	if s.dataFilePath != "" {
		go func() {
			if err := s.saveData(); err != nil {
				log.Printf("Warning: Failed to save analytics data: %v", err)
			}
		}()
	}

	return nil
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	dashboard := model.AnalyticsDashboard{
		TotalQueries:    len(s.events),
		AvgConfidence:   s.calculateAvgConfidence(s.events),
		AvgResponseTime: s.calculateAvgResponseTime(s.events),
		PopularQueries:  s.getPopularQueries(s.events),
		EntryUsage:      s.getEntryUsage(s.events),
	}

	for _, event := range s.events {
		switch event.Status {
		case model.StatusAutoSent:
			dashboard.AutoSentCount++
		case model.StatusNeedsReview:
			dashboard.NeedsReviewCount++
		}
	}
	if dashboard.TotalQueries > 0 {
		dashboard.AutoSendRate = float64(dashboard.AutoSentCount) / float64(dashboard.TotalQueries)
	}

	return dashboard, nil
}

// calculateAvgConfidence averages the confidence of all tracked events
func (s *Service) calculateAvgConfidence(events []model.AdviseEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	var total float64
	for _, event := range events {
		total += event.Confidence
	}
	return total / float64(len(events))
}

// calculateAvgResponseTime calculates average response time in milliseconds
func (s *Service) calculateAvgResponseTime(events []model.AdviseEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Milliseconds()
}

// getPopularQueries returns the most frequently asked questions
func (s *Service) getPopularQueries(events []model.AdviseEvent) []model.PopularQuery {
	queryCounts := make(map[string]int)
	for _, event := range events {
		if event.Query != "" {
			queryCounts[event.Query]++
		}
	}

	var popular []model.PopularQuery
	for query, count := range queryCounts {
		popular = append(popular, model.PopularQuery{Query: query, AskedCount: count})
	}

	// Sort by count descending, then by query for a stable order
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].AskedCount != popular[j].AskedCount {
			return popular[i].AskedCount > popular[j].AskedCount
		}
		return popular[i].Query < popular[j].Query
	})

	// Return top 5
	if len(popular) > 5 {
		popular = popular[:5]
	}
	return popular
}

// getEntryUsage returns match counts per knowledge base entry
func (s *Service) getEntryUsage(events []model.AdviseEvent) []model.EntryUsage {
	entryCounts := make(map[string]int)
	for _, event := range events {
		if event.MatchedEntryID != "" {
			entryCounts[event.MatchedEntryID]++
		}
	}

	var usage []model.EntryUsage
	for entryID, count := range entryCounts {
		usage = append(usage, model.EntryUsage{EntryID: entryID, MatchCount: count})
	}

	sort.Slice(usage, func(i, j int) bool {
		if usage[i].MatchCount != usage[j].MatchCount {
			return usage[i].MatchCount > usage[j].MatchCount
		}
		return usage[i].EntryID < usage[j].EntryID
	})

	return usage
}

// loadData loads analytics events from the data file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No data file yet
		}
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.events)
}

// saveData persists analytics events to the data file
func (s *Service) saveData() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.events)
	s.mutex.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0o755); err != nil {
		return err
	}

	// Write to a temp file and rename so concurrent saves never leave a
	// partially written data file behind.
	tmpFile, err := os.CreateTemp(filepath.Dir(s.dataFilePath), "analytics-*.json")
	if err != nil {
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return err
	}
	return os.Rename(tmpFile.Name(), s.dataFilePath)
}
