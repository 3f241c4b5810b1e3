package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/datle/datle-api/internal/domain"
)

const studyColumns = `id, title, status, created_by, target_criteria, start_date, end_date, created_at`

// CreateStudy inserts a new study.
func (r *Repository) CreateStudy(ctx context.Context, study domain.Study) error {
	criteriaJSON, err := json.Marshal(study.TargetCriteria)
	if err != nil {
		return fmt.Errorf("failed to marshal target criteria: %w", err)
	}

	query := `
		INSERT INTO studies (id, title, status, created_by, target_criteria, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		study.ID, study.Title, string(study.Status), study.CreatedBy,
		criteriaJSON, study.StartDate, study.EndDate, study.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert study: %w", err)
	}

	return nil
}

// GetStudy retrieves a study by id. Returns domain.ErrStudyNotFound when no
// study matches.
func (r *Repository) GetStudy(ctx context.Context, id string) (domain.Study, error) {
	var row studyRow
	query := `SELECT ` + studyColumns + ` FROM studies WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Study{}, domain.ErrStudyNotFound
		}
		return domain.Study{}, fmt.Errorf("failed to get study: %w", err)
	}

	return row.toDomain()
}

// ListStudies retrieves all studies, newest first.
func (r *Repository) ListStudies(ctx context.Context) ([]domain.Study, error) {
	var rows []studyRow
	query := `SELECT ` + studyColumns + ` FROM studies ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list studies: %w", err)
	}

	studies := make([]domain.Study, 0, len(rows))
	for _, row := range rows {
		study, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		studies = append(studies, study)
	}

	return studies, nil
}

// UpdateStudyStatus transitions a study to a new status. Returns
// domain.ErrStudyNotFound when no study matches.
func (r *Repository) UpdateStudyStatus(ctx context.Context, id string, status domain.StudyStatus) error {
	query := `UPDATE studies SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update study status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrStudyNotFound
	}

	return nil
}
