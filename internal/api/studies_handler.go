package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/service"
)

// StudyManager defines the study operations needed by the handler.
type StudyManager interface {
	Create(ctx context.Context, input service.CreateStudyInput) (domain.Study, error)
	List(ctx context.Context) ([]domain.Study, error)
	Get(ctx context.Context, id string) (domain.Study, error)
	UpdateStatus(ctx context.Context, id string, status domain.StudyStatus) (domain.Study, error)
}

// Exporter defines the export operations needed by the handler.
type Exporter interface {
	Build(ctx context.Context, studyID string) (service.Export, error)
	BuildCSV(ctx context.Context, studyID string) ([]byte, string, error)
}

// StudiesHandler handles study lifecycle and export HTTP requests.
type StudiesHandler struct {
	studies StudyManager
	exports Exporter
}

// NewStudiesHandler creates a new studies handler.
func NewStudiesHandler(studies StudyManager, exports Exporter) *StudiesHandler {
	return &StudiesHandler{
		studies: studies,
		exports: exports,
	}
}

type createStudyRequest struct {
	Title          string         `binding:"required"                                            json:"title"`
	Status         string         `binding:"required,oneof=DRAFT ACTIVE PAUSED COMPLETED ARCHIVED" json:"status"`
	CreatedBy      string         `binding:"required,email"                                      json:"created_by"`
	TargetCriteria map[string]any `json:"target_criteria"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
}

// CreateStudy handles POST /api/studies.
func (h *StudiesHandler) CreateStudy(c *gin.Context) {
	var req createStudyRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	study, err := h.studies.Create(c.Request.Context(), service.CreateStudyInput{
		Title:          req.Title,
		Status:         domain.StudyStatus(req.Status),
		CreatedBy:      req.CreatedBy,
		TargetCriteria: req.TargetCriteria,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, study)
}

// ListStudies handles GET /api/studies.
func (h *StudiesHandler) ListStudies(c *gin.Context) {
	studies, err := h.studies.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, studies)
}

// GetStudy handles GET /api/studies/:id.
func (h *StudiesHandler) GetStudy(c *gin.Context) {
	study, err := h.studies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, study)
}

type updateStudyStatusRequest struct {
	Status string `binding:"required,oneof=DRAFT ACTIVE PAUSED COMPLETED ARCHIVED" json:"status"`
}

// UpdateStudyStatus handles PATCH /api/studies/:id/status.
func (h *StudiesHandler) UpdateStudyStatus(c *gin.Context) {
	var req updateStudyStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	study, err := h.studies.UpdateStatus(c.Request.Context(), c.Param("id"), domain.StudyStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, study)
}

// ExportResponses handles GET /api/studies/:id/responses.
func (h *StudiesHandler) ExportResponses(c *gin.Context) {
	export, err := h.exports.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, export)
}

// ExportResponsesCSV handles GET /api/studies/:id/responses.csv.
func (h *StudiesHandler) ExportResponsesCSV(c *gin.Context) {
	data, filename, err := h.exports.BuildCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
