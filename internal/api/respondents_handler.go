package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/service"
)

// RespondentManager defines the respondent operations needed by the handler.
type RespondentManager interface {
	Create(ctx context.Context, input service.CreateRespondentInput) (domain.Respondent, error)
	Get(ctx context.Context, id string) (domain.Respondent, error)
	List(ctx context.Context) ([]domain.Respondent, error)
}

// RespondentsHandler handles respondent HTTP requests.
type RespondentsHandler struct {
	svc RespondentManager
}

// NewRespondentsHandler creates a new respondents handler.
func NewRespondentsHandler(svc RespondentManager) *RespondentsHandler {
	return &RespondentsHandler{svc: svc}
}

type createRespondentRequest struct {
	Email            string `binding:"required,email"          json:"email"`
	Age              int    `binding:"required,gte=13,lte=120" json:"age"`
	Gender           string `binding:"required"                json:"gender"`
	Location         string `binding:"required"                json:"location"`
	IncomeBand       string `binding:"required"                json:"income_band"`
	Education        string `binding:"required"                json:"education"`
	EmploymentStatus string `binding:"required"                json:"employment_status"`
}

// CreateRespondent handles POST /api/respondents.
func (h *RespondentsHandler) CreateRespondent(c *gin.Context) {
	var req createRespondentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	respondent, err := h.svc.Create(c.Request.Context(), service.CreateRespondentInput{
		Email:            req.Email,
		Age:              req.Age,
		Gender:           req.Gender,
		Location:         req.Location,
		IncomeBand:       req.IncomeBand,
		Education:        req.Education,
		EmploymentStatus: req.EmploymentStatus,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, respondent)
}

// GetRespondent handles GET /api/respondents/:id.
func (h *RespondentsHandler) GetRespondent(c *gin.Context) {
	respondent, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, respondent)
}

// ListRespondents handles GET /api/respondents.
func (h *RespondentsHandler) ListRespondents(c *gin.Context) {
	respondents, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, respondents)
}
