package api

import (
	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/middleware"
)

// Handlers bundles every HTTP handler registered on the router.
type Handlers struct {
	Analytics   *AnalyticsHandler
	Studies     *StudiesHandler
	Respondents *RespondentsHandler
	Responses   *ResponsesHandler
	Auth        *AuthHandler
}

// SetupRoutes configures all API routes. Reads are public; writes require a
// Bearer token issued by the auth endpoints.
func SetupRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	requireAuth := middleware.RequireAuth(jwtSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/request-otp", h.Auth.RequestOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)

	respondents := api.Group("/respondents")
	respondents.POST("", requireAuth, h.Respondents.CreateRespondent)
	respondents.GET("", h.Respondents.ListRespondents)
	respondents.GET("/:id", h.Respondents.GetRespondent)

	studies := api.Group("/studies")
	studies.POST("", requireAuth, h.Studies.CreateStudy)
	studies.GET("", h.Studies.ListStudies)
	studies.GET("/:id", h.Studies.GetStudy)
	studies.PATCH("/:id/status", requireAuth, h.Studies.UpdateStudyStatus)
	studies.GET("/:id/responses", h.Studies.ExportResponses)
	studies.GET("/:id/responses.csv", h.Studies.ExportResponsesCSV)

	responses := api.Group("/responses")
	responses.POST("", requireAuth, h.Responses.CreateResponse)
	responses.GET("/study/:studyId", h.Responses.ListResponsesByStudy)

	analytics := api.Group("/analytics")
	analytics.GET("/studies/:id/summary", h.Analytics.GetStudySummary)
}
