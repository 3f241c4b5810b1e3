package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

// Respondent age bounds accepted on registration.
const (
	minRespondentAge = 13
	maxRespondentAge = 120
)

// RespondentStore is the data access interface for respondents.
type RespondentStore interface {
	CreateRespondent(ctx context.Context, respondent domain.Respondent) error
	GetRespondent(ctx context.Context, id string) (domain.Respondent, error)
	ListRespondents(ctx context.Context) ([]domain.Respondent, error)
}

// CreateRespondentInput carries the fields accepted when registering a
// respondent.
type CreateRespondentInput struct {
	Email            string
	Age              int
	Gender           string
	Location         string
	IncomeBand       string
	Education        string
	EmploymentStatus string
}

// RespondentService handles respondent registration and lookup.
type RespondentService struct {
	store  RespondentStore
	logger logger.Logger
}

// NewRespondentService creates a new respondent service.
func NewRespondentService(store RespondentStore, log logger.Logger) *RespondentService {
	return &RespondentService{
		store:  store,
		logger: log,
	}
}

// Create validates and persists a new respondent. Emails are stored
// lower-cased so uniqueness is case-insensitive.
func (s *RespondentService) Create(ctx context.Context, input CreateRespondentInput) (domain.Respondent, error) {
	if input.Age < minRespondentAge || input.Age > maxRespondentAge {
		return domain.Respondent{}, fmt.Errorf("age must be between %d and %d", minRespondentAge, maxRespondentAge)
	}

	respondent := domain.Respondent{
		ID:               uuid.NewString(),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		Age:              input.Age,
		Gender:           input.Gender,
		Location:         input.Location,
		IncomeBand:       input.IncomeBand,
		Education:        input.Education,
		EmploymentStatus: input.EmploymentStatus,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.CreateRespondent(ctx, respondent); err != nil {
		return domain.Respondent{}, err
	}

	s.logger.Info("respondent registered", logger.String("respondent_id", respondent.ID))

	return respondent, nil
}

// Get returns one respondent by id.
func (s *RespondentService) Get(ctx context.Context, id string) (domain.Respondent, error) {
	return s.store.GetRespondent(ctx, id)
}

// List returns all respondents, newest first.
func (s *RespondentService) List(ctx context.Context) ([]domain.Respondent, error) {
	return s.store.ListRespondents(ctx)
}
