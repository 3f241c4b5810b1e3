package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/datle/datle-api/internal/domain"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pqUniqueViolation = "23505"

// Repository provides access to studies, respondents, and responses.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new Repository backed by db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// studyRow is the database representation of a study.
type studyRow struct {
	ID             string       `db:"id"`
	Title          string       `db:"title"`
	Status         string       `db:"status"`
	CreatedBy      string       `db:"created_by"`
	TargetCriteria []byte       `db:"target_criteria"`
	StartDate      sql.NullTime `db:"start_date"`
	EndDate        sql.NullTime `db:"end_date"`
	CreatedAt      time.Time    `db:"created_at"`
}

func (r studyRow) toDomain() (domain.Study, error) {
	study := domain.Study{
		ID:        r.ID,
		Title:     r.Title,
		Status:    domain.StudyStatus(r.Status),
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}

	if len(r.TargetCriteria) > 0 {
		if err := json.Unmarshal(r.TargetCriteria, &study.TargetCriteria); err != nil {
			return domain.Study{}, fmt.Errorf("failed to unmarshal target criteria: %w", err)
		}
	}

	if r.StartDate.Valid {
		start := r.StartDate.Time
		study.StartDate = &start
	}

	if r.EndDate.Valid {
		end := r.EndDate.Time
		study.EndDate = &end
	}

	return study, nil
}

// respondentRow is the database representation of a respondent.
type respondentRow struct {
	ID               string    `db:"id"`
	Email            string    `db:"email"`
	Age              int       `db:"age"`
	Gender           string    `db:"gender"`
	Location         string    `db:"location"`
	IncomeBand       string    `db:"income_band"`
	Education        string    `db:"education"`
	EmploymentStatus string    `db:"employment_status"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r respondentRow) toDomain() domain.Respondent {
	return domain.Respondent{
		ID:               r.ID,
		Email:            r.Email,
		Age:              r.Age,
		Gender:           r.Gender,
		Location:         r.Location,
		IncomeBand:       r.IncomeBand,
		Education:        r.Education,
		EmploymentStatus: r.EmploymentStatus,
		CreatedAt:        r.CreatedAt,
	}
}

// responseRow is the database representation of a response.
type responseRow struct {
	ID           string    `db:"id"`
	RespondentID string    `db:"respondent_id"`
	StudyID      string    `db:"study_id"`
	SubmittedAt  time.Time `db:"submitted_at"`
	Payload      []byte    `db:"payload"`
}

func (r responseRow) toDomain() (domain.Response, error) {
	resp := domain.Response{
		ID:           r.ID,
		RespondentID: r.RespondentID,
		StudyID:      r.StudyID,
		SubmittedAt:  r.SubmittedAt,
	}

	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &resp.Payload); err != nil {
			return domain.Response{}, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return resp, nil
}
