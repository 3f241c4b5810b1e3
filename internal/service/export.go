package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

// fixedExportHeaders are the CSV columns present in every export, ahead of
// the dynamic payload key columns.
var fixedExportHeaders = []string{
	"study_id",
	"study_title",
	"study_status",
	"response_id",
	"submitted_at",
	"respondent_id",
	"respondent_email",
	"respondent_age",
	"respondent_gender",
	"respondent_location",
	"respondent_income_band",
	"respondent_education",
	"respondent_employment_status",
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ExportRow is one response with its respondent profile in the JSON export
// envelope.
type ExportRow struct {
	ResponseID  string                   `json:"response_id"`
	SubmittedAt time.Time                `json:"submitted_at"`
	Payload     map[string]any           `json:"payload"`
	Respondent  domain.RespondentProfile `json:"respondent"`
}

// Export is the JSON export envelope for a study's responses.
type Export struct {
	Study          domain.Study `json:"study"`
	TotalResponses int          `json:"total_responses"`
	Rows           []ExportRow  `json:"rows"`
}

// ExportStore is the data access interface for exports.
type ExportStore interface {
	GetStudy(ctx context.Context, id string) (domain.Study, error)
	ListResponsesByStudy(ctx context.Context, studyID string) ([]domain.ResponseRecord, error)
}

// ExportService produces JSON and CSV exports of a study's responses.
type ExportService struct {
	store  ExportStore
	logger logger.Logger
}

// NewExportService creates a new export service.
func NewExportService(store ExportStore, log logger.Logger) *ExportService {
	return &ExportService{
		store:  store,
		logger: log,
	}
}

// Build assembles the JSON export envelope for a study. Returns
// domain.ErrStudyNotFound for unknown studies.
func (s *ExportService) Build(ctx context.Context, studyID string) (Export, error) {
	study, err := s.store.GetStudy(ctx, studyID)
	if err != nil {
		return Export{}, err
	}

	records, err := s.store.ListResponsesByStudy(ctx, studyID)
	if err != nil {
		return Export{}, fmt.Errorf("list responses: %w", err)
	}

	rows := make([]ExportRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, ExportRow{
			ResponseID:  record.ID,
			SubmittedAt: record.SubmittedAt,
			Payload:     record.Payload,
			Respondent:  record.Respondent,
		})
	}

	return Export{
		Study:          study,
		TotalResponses: len(rows),
		Rows:           rows,
	}, nil
}

// payloadKeyUnion returns every payload key appearing in any row, sorted
// ascending so the CSV column order is stable across exports.
func payloadKeyUnion(rows []ExportRow) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row.Payload {
			seen[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// BuildCSV renders the export as CSV. Fixed identity columns come first,
// then one column per payload key observed anywhere in the study. Rows
// lacking a payload key leave that cell empty.
func (s *ExportService) BuildCSV(ctx context.Context, studyID string) ([]byte, string, error) {
	export, err := s.Build(ctx, studyID)
	if err != nil {
		return nil, "", err
	}

	payloadKeys := payloadKeyUnion(export.Rows)
	headers := append(append([]string{}, fixedExportHeaders...), payloadKeys...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if writeErr := w.Write(headers); writeErr != nil {
		return nil, "", fmt.Errorf("write csv header: %w", writeErr)
	}

	for _, row := range export.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells,
			export.Study.ID,
			export.Study.Title,
			string(export.Study.Status),
			row.ResponseID,
			row.SubmittedAt.UTC().Format(time.RFC3339),
			row.Respondent.ID,
			row.Respondent.Email,
			row.Respondent.AttributeValue(domain.DimAge),
			row.Respondent.Gender,
			row.Respondent.Location,
			row.Respondent.IncomeBand,
			row.Respondent.Education,
			row.Respondent.EmploymentStatus,
		)

		for _, key := range payloadKeys {
			value, ok := row.Payload[key]
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, domain.NormalizeAnswer(value))
		}

		if writeErr := w.Write(cells); writeErr != nil {
			return nil, "", fmt.Errorf("write csv row: %w", writeErr)
		}
	}

	w.Flush()
	if flushErr := w.Error(); flushErr != nil {
		return nil, "", fmt.Errorf("flush csv: %w", flushErr)
	}

	filename := fmt.Sprintf("%s-%s-responses.csv", slugify(export.Study.Title), export.Study.ID)

	s.logger.Debug("csv export built",
		logger.String("study_id", studyID),
		logger.Int("rows", len(export.Rows)),
	)

	return buf.Bytes(), filename, nil
}

// slugify lowercases a title and collapses every non-alphanumeric run to a
// single hyphen. Empty results fall back to "study".
func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "study"
	}
	return slug
}
