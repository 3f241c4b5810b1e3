package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datle/datle-api/internal/api"
	"github.com/datle/datle-api/internal/domain"
)

type mockSummaryProvider struct {
	summaryFunc func(ctx context.Context, studyID string, filters map[string]string) (domain.Summary, error)
}

func (m *mockSummaryProvider) GetStudySummary(ctx context.Context, studyID string, filters map[string]string) (domain.Summary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, studyID, filters)
	}
	return domain.Summary{}, nil
}

func setupAnalyticsRouter(t *testing.T, svc *mockSummaryProvider) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/analytics/studies/:id/summary", api.NewAnalyticsHandler(svc).GetStudySummary)

	return router
}

func TestAnalyticsHandler_GetStudySummary(t *testing.T) {
	t.Run("passes filters through and returns summary", func(t *testing.T) {
		var gotStudyID string
		var gotFilters map[string]string
		svc := &mockSummaryProvider{
			summaryFunc: func(_ context.Context, studyID string, filters map[string]string) (domain.Summary, error) {
				gotStudyID = studyID
				gotFilters = filters
				return domain.Summary{
					Study:   domain.SummaryStudy{ID: studyID, Title: "Brand perception"},
					Metrics: domain.SummaryMetrics{TotalResponses: 2, UniqueRespondents: 2},
				}, nil
			},
		}
		router := setupAnalyticsRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/analytics/studies/s-1/summary?from=2026-03-01&gender=female&q_brand=X&empty=", http.NoBody)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "s-1", gotStudyID)
		assert.Equal(t, map[string]string{
			"from":    "2026-03-01",
			"gender":  "female",
			"q_brand": "X",
		}, gotFilters)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		metrics, ok := body["metrics"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(2), metrics["total_responses"])
	})

	t.Run("unknown study returns 404", func(t *testing.T) {
		svc := &mockSummaryProvider{
			summaryFunc: func(context.Context, string, map[string]string) (domain.Summary, error) {
				return domain.Summary{}, domain.ErrStudyNotFound
			},
		}
		router := setupAnalyticsRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/analytics/studies/missing/summary", http.NoBody)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "study not found")
	})
}
