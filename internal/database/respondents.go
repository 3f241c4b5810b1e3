package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/datle/datle-api/internal/domain"
)

const respondentColumns = `id, email, age, gender, location, income_band, education, employment_status, created_at`

// CreateRespondent inserts a new respondent. Returns domain.ErrEmailExists
// when the email is already registered.
func (r *Repository) CreateRespondent(ctx context.Context, respondent domain.Respondent) error {
	query := `
		INSERT INTO respondents (id, email, age, gender, location, income_band, education, employment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		respondent.ID, respondent.Email, respondent.Age, respondent.Gender,
		respondent.Location, respondent.IncomeBand, respondent.Education,
		respondent.EmploymentStatus, respondent.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("failed to insert respondent: %w", err)
	}

	return nil
}

// GetRespondent retrieves a respondent by id. Returns
// domain.ErrRespondentNotFound when no respondent matches.
func (r *Repository) GetRespondent(ctx context.Context, id string) (domain.Respondent, error) {
	var row respondentRow
	query := `SELECT ` + respondentColumns + ` FROM respondents WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Respondent{}, domain.ErrRespondentNotFound
		}
		return domain.Respondent{}, fmt.Errorf("failed to get respondent: %w", err)
	}

	return row.toDomain(), nil
}

// ListRespondents retrieves all respondents, newest first.
func (r *Repository) ListRespondents(ctx context.Context) ([]domain.Respondent, error) {
	var rows []respondentRow
	query := `SELECT ` + respondentColumns + ` FROM respondents ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list respondents: %w", err)
	}

	respondents := make([]domain.Respondent, 0, len(rows))
	for _, row := range rows {
		respondents = append(respondents, row.toDomain())
	}

	return respondents, nil
}
