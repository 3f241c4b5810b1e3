package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/datle/datle-api/internal/domain"
)

// ResponseQuery narrows a study's responses by submission time and
// respondent attributes. From and To are inclusive instants; attribute
// filters match respondent columns by equality. Payload filters are not
// expressed here, they are refined in memory by the caller.
type ResponseQuery struct {
	StudyID    string
	From       *time.Time
	To         *time.Time
	Attributes map[string]string
}

// CreateResponse inserts a new response. Returns domain.ErrResponseExists
// when the respondent already answered the study.
func (r *Repository) CreateResponse(ctx context.Context, response domain.Response, payloadJSON []byte) error {
	query := `
		INSERT INTO responses (id, respondent_id, study_id, submitted_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		response.ID, response.RespondentID, response.StudyID,
		response.SubmittedAt, payloadJSON,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrResponseExists
		}
		return fmt.Errorf("failed to insert response: %w", err)
	}

	return nil
}

// responseRecordRow joins a response with its respondent's profile columns.
type responseRecordRow struct {
	responseRow
	RespEmail            string `db:"respondent_email"`
	RespAge              int    `db:"respondent_age"`
	RespGender           string `db:"respondent_gender"`
	RespLocation         string `db:"respondent_location"`
	RespIncomeBand       string `db:"respondent_income_band"`
	RespEducation        string `db:"respondent_education"`
	RespEmploymentStatus string `db:"respondent_employment_status"`
}

func (r responseRecordRow) toDomain() (domain.ResponseRecord, error) {
	resp, err := r.responseRow.toDomain()
	if err != nil {
		return domain.ResponseRecord{}, err
	}

	return domain.ResponseRecord{
		Response: resp,
		Respondent: domain.RespondentProfile{
			ID:               r.RespondentID,
			Email:            r.RespEmail,
			Age:              r.RespAge,
			Gender:           r.RespGender,
			Location:         r.RespLocation,
			IncomeBand:       r.RespIncomeBand,
			Education:        r.RespEducation,
			EmploymentStatus: r.RespEmploymentStatus,
		},
	}, nil
}

const responseRecordColumns = `
		r.id, r.respondent_id, r.study_id, r.submitted_at, r.payload,
		p.email AS respondent_email,
		p.age AS respondent_age,
		p.gender AS respondent_gender,
		p.location AS respondent_location,
		p.income_band AS respondent_income_band,
		p.education AS respondent_education,
		p.employment_status AS respondent_employment_status`

// attributeColumns maps respondent dimension keys to their column names on
// the respondents table. Keys and columns coincide today; the map keeps the
// WHERE builder from ever interpolating caller-supplied strings.
var attributeColumns = map[string]string{
	domain.DimGender:           "gender",
	domain.DimLocation:         "location",
	domain.DimIncomeBand:       "income_band",
	domain.DimEducation:        "education",
	domain.DimEmploymentStatus: "employment_status",
	domain.DimAge:              "age",
}

// SelectResponses retrieves the responses for a study matching the query,
// each joined with its respondent profile, ordered by submission time then
// id for a stable aggregation order.
func (r *Repository) SelectResponses(ctx context.Context, q ResponseQuery) ([]domain.ResponseRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + responseRecordColumns + `
		FROM responses r
		JOIN respondents p ON p.id = r.respondent_id
		WHERE r.study_id = $1`)

	args := []any{q.StudyID}

	if q.From != nil {
		args = append(args, *q.From)
		fmt.Fprintf(&sb, " AND r.submitted_at >= $%d", len(args))
	}

	if q.To != nil {
		args = append(args, *q.To)
		fmt.Fprintf(&sb, " AND r.submitted_at <= $%d", len(args))
	}

	// Iterate the fixed dimension order so the generated SQL is
	// deterministic for a given filter set.
	for _, dim := range domain.RespondentDimensions() {
		value, ok := q.Attributes[dim]
		if !ok {
			continue
		}
		args = append(args, value)
		fmt.Fprintf(&sb, " AND p.%s = $%d", attributeColumns[dim], len(args))
	}

	sb.WriteString(" ORDER BY r.submitted_at ASC, r.id ASC")

	var rows []responseRecordRow
	if err := r.db.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to select responses: %w", err)
	}

	records := make([]domain.ResponseRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// ListResponsesByStudy retrieves every response for a study with its
// respondent profile, newest first. Used by listings and exports.
func (r *Repository) ListResponsesByStudy(ctx context.Context, studyID string) ([]domain.ResponseRecord, error) {
	query := `SELECT ` + responseRecordColumns + `
		FROM responses r
		JOIN respondents p ON p.id = r.respondent_id
		WHERE r.study_id = $1
		ORDER BY r.submitted_at DESC, r.id DESC`

	var rows []responseRecordRow
	if err := r.db.SelectContext(ctx, &rows, query, studyID); err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	records := make([]domain.ResponseRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
