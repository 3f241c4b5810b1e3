package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/service"
)

// ResponseManager defines the response operations needed by the handler.
type ResponseManager interface {
	Create(ctx context.Context, input service.CreateResponseInput) (domain.Response, error)
	ListByStudy(ctx context.Context, studyID string) ([]domain.ResponseRecord, error)
}

// ResponsesHandler handles response submission HTTP requests.
type ResponsesHandler struct {
	svc ResponseManager
}

// NewResponsesHandler creates a new responses handler.
func NewResponsesHandler(svc ResponseManager) *ResponsesHandler {
	return &ResponsesHandler{svc: svc}
}

type createResponseRequest struct {
	RespondentID string         `binding:"required" json:"respondent_id"`
	StudyID      string         `binding:"required" json:"study_id"`
	Payload      map[string]any `binding:"required" json:"payload"`
}

// CreateResponse handles POST /api/responses.
func (h *ResponsesHandler) CreateResponse(c *gin.Context) {
	var req createResponseRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	response, err := h.svc.Create(c.Request.Context(), service.CreateResponseInput{
		RespondentID: req.RespondentID,
		StudyID:      req.StudyID,
		Payload:      req.Payload,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponsesByStudy handles GET /api/responses/study/:studyId.
func (h *ResponsesHandler) ListResponsesByStudy(c *gin.Context) {
	records, err := h.svc.ListByStudy(c.Request.Context(), c.Param("studyId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
