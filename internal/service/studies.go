package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

// StudyStore is the data access interface for studies.
type StudyStore interface {
	CreateStudy(ctx context.Context, study domain.Study) error
	GetStudy(ctx context.Context, id string) (domain.Study, error)
	ListStudies(ctx context.Context) ([]domain.Study, error)
	UpdateStudyStatus(ctx context.Context, id string, status domain.StudyStatus) error
}

// CreateStudyInput carries the fields accepted when creating a study.
type CreateStudyInput struct {
	Title          string
	Status         domain.StudyStatus
	CreatedBy      string
	TargetCriteria map[string]any
	StartDate      *time.Time
	EndDate        *time.Time
}

// StudyService handles study lifecycle operations.
type StudyService struct {
	store  StudyStore
	logger logger.Logger
}

// NewStudyService creates a new study service.
func NewStudyService(store StudyStore, log logger.Logger) *StudyService {
	return &StudyService{
		store:  store,
		logger: log,
	}
}

// Create validates and persists a new study.
func (s *StudyService) Create(ctx context.Context, input CreateStudyInput) (domain.Study, error) {
	if !input.Status.IsValid() {
		return domain.Study{}, fmt.Errorf("invalid study status %q", input.Status)
	}

	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return domain.Study{}, domain.ErrInvalidStudyDates
	}

	study := domain.Study{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Status:         input.Status,
		CreatedBy:      input.CreatedBy,
		TargetCriteria: input.TargetCriteria,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateStudy(ctx, study); err != nil {
		return domain.Study{}, fmt.Errorf("create study: %w", err)
	}

	s.logger.Info("study created",
		logger.String("study_id", study.ID),
		logger.String("status", string(study.Status)),
	)

	return study, nil
}

// List returns all studies, newest first.
func (s *StudyService) List(ctx context.Context) ([]domain.Study, error) {
	return s.store.ListStudies(ctx)
}

// Get returns one study by id.
func (s *StudyService) Get(ctx context.Context, id string) (domain.Study, error) {
	return s.store.GetStudy(ctx, id)
}

// UpdateStatus transitions a study to a new lifecycle status.
func (s *StudyService) UpdateStatus(ctx context.Context, id string, status domain.StudyStatus) (domain.Study, error) {
	if !status.IsValid() {
		return domain.Study{}, fmt.Errorf("invalid study status %q", status)
	}

	if err := s.store.UpdateStudyStatus(ctx, id, status); err != nil {
		return domain.Study{}, err
	}

	return s.store.GetStudy(ctx, id)
}
