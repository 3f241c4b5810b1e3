package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

// ResponseStore is the data access interface for responses.
type ResponseStore interface {
	GetStudy(ctx context.Context, id string) (domain.Study, error)
	GetRespondent(ctx context.Context, id string) (domain.Respondent, error)
	CreateResponse(ctx context.Context, response domain.Response, payloadJSON []byte) error
	ListResponsesByStudy(ctx context.Context, studyID string) ([]domain.ResponseRecord, error)
}

// CreateResponseInput carries a respondent's submission for a study.
type CreateResponseInput struct {
	RespondentID string
	StudyID      string
	Payload      map[string]any
}

// ResponseService handles response submission and retrieval.
type ResponseService struct {
	store  ResponseStore
	logger logger.Logger
}

// NewResponseService creates a new response service.
func NewResponseService(store ResponseStore, log logger.Logger) *ResponseService {
	return &ResponseService{
		store:  store,
		logger: log,
	}
}

// Create persists a new response after verifying the respondent and study
// exist. Returns domain.ErrResponseExists when the respondent already
// submitted for the study.
func (s *ResponseService) Create(ctx context.Context, input CreateResponseInput) (domain.Response, error) {
	if _, err := s.store.GetRespondent(ctx, input.RespondentID); err != nil {
		return domain.Response{}, err
	}

	if _, err := s.store.GetStudy(ctx, input.StudyID); err != nil {
		return domain.Response{}, err
	}

	response := domain.Response{
		ID:           uuid.NewString(),
		RespondentID: input.RespondentID,
		StudyID:      input.StudyID,
		SubmittedAt:  time.Now().UTC(),
		Payload:      input.Payload,
	}

	payloadJSON, err := json.Marshal(response.Payload)
	if err != nil {
		return domain.Response{}, fmt.Errorf("marshal payload: %w", err)
	}

	if err := s.store.CreateResponse(ctx, response, payloadJSON); err != nil {
		return domain.Response{}, err
	}

	s.logger.Info("response submitted",
		logger.String("response_id", response.ID),
		logger.String("study_id", response.StudyID),
	)

	return response, nil
}

// ListByStudy returns every response for a study, newest first.
func (s *ResponseService) ListByStudy(ctx context.Context, studyID string) ([]domain.ResponseRecord, error) {
	if _, err := s.store.GetStudy(ctx, studyID); err != nil {
		return nil, err
	}

	return s.store.ListResponsesByStudy(ctx, studyID)
}
