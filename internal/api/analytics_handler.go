package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/domain"
)

// SummaryProvider defines the analytics operations needed by the handler.
type SummaryProvider interface {
	GetStudySummary(ctx context.Context, studyID string, filters map[string]string) (domain.Summary, error)
}

// AnalyticsHandler handles study summary HTTP requests.
type AnalyticsHandler struct {
	svc SummaryProvider
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(svc SummaryProvider) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// GetStudySummary handles GET /api/analytics/studies/:id/summary. Every
// query parameter is a candidate filter; blank values are skipped and
// repeated keys use their first value.
func (h *AnalyticsHandler) GetStudySummary(c *gin.Context) {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])
		if value == "" {
			continue
		}
		filters[key] = value
	}

	summary, err := h.svc.GetStudySummary(c.Request.Context(), c.Param("id"), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
