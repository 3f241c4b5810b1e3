//nolint:testpackage // Exercising services with in-package mocks.
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

type mockStudyStore struct {
	createStudyFunc  func(ctx context.Context, study domain.Study) error
	getStudyFunc     func(ctx context.Context, id string) (domain.Study, error)
	listStudiesFunc  func(ctx context.Context) ([]domain.Study, error)
	updateStatusFunc func(ctx context.Context, id string, status domain.StudyStatus) error

	created []domain.Study
}

func (m *mockStudyStore) CreateStudy(ctx context.Context, study domain.Study) error {
	m.created = append(m.created, study)
	if m.createStudyFunc != nil {
		return m.createStudyFunc(ctx, study)
	}
	return nil
}

func (m *mockStudyStore) GetStudy(ctx context.Context, id string) (domain.Study, error) {
	if m.getStudyFunc != nil {
		return m.getStudyFunc(ctx, id)
	}
	return domain.Study{ID: id}, nil
}

func (m *mockStudyStore) ListStudies(ctx context.Context) ([]domain.Study, error) {
	if m.listStudiesFunc != nil {
		return m.listStudiesFunc(ctx)
	}
	return nil, nil
}

func (m *mockStudyStore) UpdateStudyStatus(ctx context.Context, id string, status domain.StudyStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func TestStudyServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists study with generated id and creation time", func(t *testing.T) {
		store := &mockStudyStore{}
		svc := NewStudyService(store, logger.NewNop())

		study, err := svc.Create(ctx, CreateStudyInput{
			Title:     "Coffee habits",
			Status:    domain.StatusDraft,
			CreatedBy: "owner@example.com",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, study.ID)
		assert.Equal(t, "Coffee habits", study.Title)
		assert.False(t, study.CreatedAt.IsZero())
		require.Len(t, store.created, 1)
		assert.Equal(t, study.ID, store.created[0].ID)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := NewStudyService(&mockStudyStore{}, logger.NewNop())

		_, err := svc.Create(ctx, CreateStudyInput{Title: "x", Status: "RUNNING"})
		assert.Error(t, err)
	})

	t.Run("rejects start date after end date", func(t *testing.T) {
		svc := NewStudyService(&mockStudyStore{}, logger.NewNop())

		start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.Create(ctx, CreateStudyInput{
			Title:     "x",
			Status:    domain.StatusDraft,
			StartDate: &start,
			EndDate:   &end,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStudyDates)
	})
}

func TestStudyServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates not found", func(t *testing.T) {
		store := &mockStudyStore{
			updateStatusFunc: func(context.Context, string, domain.StudyStatus) error {
				return domain.ErrStudyNotFound
			},
		}
		svc := NewStudyService(store, logger.NewNop())

		_, err := svc.UpdateStatus(ctx, "missing", domain.StatusPaused)
		assert.ErrorIs(t, err, domain.ErrStudyNotFound)
	})

	t.Run("rejects unknown status without touching the store", func(t *testing.T) {
		called := false
		store := &mockStudyStore{
			updateStatusFunc: func(context.Context, string, domain.StudyStatus) error {
				called = true
				return nil
			},
		}
		svc := NewStudyService(store, logger.NewNop())

		_, err := svc.UpdateStatus(ctx, "s-1", "RUNNING")
		assert.Error(t, err)
		assert.False(t, called)
	})
}
