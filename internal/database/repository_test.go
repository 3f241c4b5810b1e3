package database_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datle/datle-api/internal/database"
	"github.com/datle/datle-api/internal/domain"
)

func newMockRepo(t *testing.T) (*database.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestRepository_GetStudy(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("returns study when exists", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "title", "status", "created_by", "target_criteria",
			"start_date", "end_date", "created_at",
		}).AddRow(
			"s-1", "Coffee habits", "ACTIVE", "ana@example.com",
			[]byte(`{"min_age":18}`), nil, nil, createdAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM studies WHERE id =").
			WithArgs("s-1").
			WillReturnRows(rows)

		study, err := repo.GetStudy(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, "Coffee habits", study.Title)
		assert.Equal(t, domain.StatusActive, study.Status)
		assert.Equal(t, map[string]any{"min_age": float64(18)}, study.TargetCriteria)
		assert.Nil(t, study.StartDate)
	})

	t.Run("returns ErrStudyNotFound when missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM studies WHERE id =").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetStudy(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrStudyNotFound)
	})

	t.Run("wraps database failures", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM studies WHERE id =").
			WithArgs("s-1").
			WillReturnError(sql.ErrConnDone)

		_, err := repo.GetStudy(ctx, "s-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrStudyNotFound)
	})
}

func TestRepository_CreateRespondent(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	respondent := domain.Respondent{
		ID:               "r-1",
		Email:            "ana@example.com",
		Age:              34,
		Gender:           "female",
		Location:         "Lisbon",
		IncomeBand:       "50k-75k",
		Education:        "masters",
		EmploymentStatus: "employed",
		CreatedAt:        time.Now().UTC(),
	}

	t.Run("inserts respondent", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO respondents").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CreateRespondent(ctx, respondent))
	})

	t.Run("maps unique violation to ErrEmailExists", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO respondents").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateRespondent(ctx, respondent)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestRepository_CreateResponse(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	response := domain.Response{
		ID:           "resp-1",
		RespondentID: "r-1",
		StudyID:      "s-1",
		SubmittedAt:  time.Now().UTC(),
	}
	payload := []byte(`{"q_rating":4}`)

	t.Run("inserts response", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO responses").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CreateResponse(ctx, response, payload))
	})

	t.Run("maps unique violation to ErrResponseExists", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO responses").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateResponse(ctx, response, payload)
		assert.ErrorIs(t, err, domain.ErrResponseExists)
	})
}

func responseRecordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "respondent_id", "study_id", "submitted_at", "payload",
		"respondent_email", "respondent_age", "respondent_gender",
		"respondent_location", "respondent_income_band",
		"respondent_education", "respondent_employment_status",
	})
}

func TestRepository_SelectResponses(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	submitted := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	t.Run("study id only", func(t *testing.T) {
		rows := responseRecordRows().AddRow(
			"resp-1", "r-1", "s-1", submitted, []byte(`{"q_rating":4}`),
			"ana@example.com", 34, "female", "Lisbon", "50k-75k", "masters", "employed",
		)
		mock.ExpectQuery("FROM responses r").
			WithArgs("s-1").
			WillReturnRows(rows)

		records, err := repo.SelectResponses(ctx, database.ResponseQuery{StudyID: "s-1"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "resp-1", records[0].ID)
		assert.Equal(t, map[string]any{"q_rating": float64(4)}, records[0].Payload)
		assert.Equal(t, "female", records[0].Respondent.Gender)
		assert.Equal(t, 34, records[0].Respondent.Age)
	})

	t.Run("time bounds and attributes bind in fixed order", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

		pattern := regexp.QuoteMeta("AND r.submitted_at >= $2 AND r.submitted_at <= $3") +
			"(.+)" + regexp.QuoteMeta("AND p.gender = $4") +
			"(.*)" + regexp.QuoteMeta("AND p.age = $5")
		mock.ExpectQuery(pattern).
			WithArgs("s-1", from, to, "female", "34").
			WillReturnRows(responseRecordRows())

		records, err := repo.SelectResponses(ctx, database.ResponseQuery{
			StudyID: "s-1",
			From:    &from,
			To:      &to,
			Attributes: map[string]string{
				domain.DimAge:    "34",
				domain.DimGender: "female",
			},
		})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("orders by submission time then id", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY r.submitted_at ASC, r.id ASC")).
			WithArgs("s-1").
			WillReturnRows(responseRecordRows())

		_, err := repo.SelectResponses(ctx, database.ResponseQuery{StudyID: "s-1"})
		require.NoError(t, err)
	})
}

func TestRepository_UpdateStudyStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("updates existing study", func(t *testing.T) {
		mock.ExpectExec("UPDATE studies SET status =").
			WithArgs("PAUSED", "s-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStudyStatus(ctx, "s-1", domain.StatusPaused))
	})

	t.Run("returns ErrStudyNotFound when nothing updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE studies SET status =").
			WithArgs("PAUSED", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStudyStatus(ctx, "missing", domain.StatusPaused)
		assert.ErrorIs(t, err, domain.ErrStudyNotFound)
	})
}
