package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/advising-engine/internal/analytics"
	internalErrors "github.com/campusdesk/advising-engine/internal/errors"
	"github.com/campusdesk/advising-engine/model"
	"github.com/campusdesk/advising-engine/services"
	"github.com/campusdesk/advising-engine/store"
)

// API holds dependencies for API handlers, primarily the advising pipeline.
type API struct {
	advisor   services.Advisor
	kb        *store.KnowledgeBase
	corpus    *store.ReferenceCorpus
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure. The corpus may be nil when
// reference retrieval is disabled; an empty analyticsFile keeps analytics
// in memory only.
func NewAPI(advisor services.Advisor, kb *store.KnowledgeBase, corpus *store.ReferenceCorpus, analyticsFile string) *API {
	return &API{
		advisor:   advisor,
		kb:        kb,
		corpus:    corpus,
		analytics: analytics.NewService(analyticsFile),
	}
}

// SetupRoutes defines all the API routes for the advising engine.
func SetupRoutes(router *gin.Engine, advisor services.Advisor, kb *store.KnowledgeBase, corpus *store.ReferenceCorpus, analyticsFile string) {
	apiHandler := NewAPI(advisor, kb, corpus, analyticsFile)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Advising route
	router.POST("/advise", apiHandler.AdviseHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Knowledge base routes
	entryRoutes := router.Group("/entries")
	{
		entryRoutes.GET("", apiHandler.ListEntriesHandler)       // List entries with pagination
		entryRoutes.GET("/:entryId", apiHandler.GetEntryHandler) // Get a specific entry
	}

	// Reference corpus route
	router.GET("/references", apiHandler.ListReferencesHandler)
}

// AdviseRequest defines the structure for advising requests.
type AdviseRequest struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// AdviseHandler runs one student question through the full pipeline and
// returns the drafted response together with its decision trail.
// Request Body: AdviseRequest
func (api *API) AdviseHandler(c *gin.Context) {
	startTime := time.Now()

	var req AdviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateQueryText(req.Text); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateMetadata(req.Metadata); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	response, err := api.advisor.ProcessQuery(services.Query{
		Text:     req.Text,
		Metadata: req.Metadata,
	})
	if err != nil {
		if errors.Is(err, internalErrors.ErrComposerFailed) {
			SendComposerError(c, err)
			return
		}
		SendAdvisingError(c, err)
		return
	}

	event := model.AdviseEvent{
		Query:          req.Text,
		Status:         response.Status,
		MatchedEntryID: response.MatchedEntryID,
		Confidence:     response.Confidence,
		ReferenceCount: len(response.References),
		ResponseTime:   time.Since(startTime),
	}

	// Track the event asynchronously to avoid slowing down the response
	go func() {
		if err := api.analytics.TrackAdviseEvent(event); err != nil {
			log.Printf("Warning: Failed to track advise event: %v", err)
		}
	}()

	c.JSON(http.StatusOK, response)
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	dashboard, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "analytics retrieval", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// EntryListRequest defines the structure for entry listing requests
type EntryListRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// ListEntriesHandler lists knowledge base entries with pagination.
func (api *API) ListEntriesHandler(c *gin.Context) {
	var req EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid query parameters: "+err.Error())
		return
	}

	page, pageSize, result := ValidatePagination(req.Page, req.PageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	entries := api.kb.Entries()
	totalCount := len(entries)

	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize
	if startIndex > totalCount {
		startIndex = totalCount
	}
	if endIndex > totalCount {
		endIndex = totalCount
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   entries[startIndex:endIndex],
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
		"pages":     (totalCount + pageSize - 1) / pageSize,
	})
}

// GetEntryHandler retrieves a specific knowledge base entry by ID.
func (api *API) GetEntryHandler(c *gin.Context) {
	entryID := c.Param("entryId")

	if result := ValidateEntryID(entryID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	entry, err := api.kb.Get(entryID)
	if err != nil {
		SendEntryNotFoundError(c, entryID)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListReferencesHandler lists the reference corpus documents.
func (api *API) ListReferencesHandler(c *gin.Context) {
	documents := []model.ReferenceDocument{}
	if api.corpus != nil {
		documents = api.corpus.Documents()
	}

	c.JSON(http.StatusOK, gin.H{
		"references": documents,
		"total":      len(documents),
	})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "advising-engine",
		"entries":   api.kb.Len(),
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
