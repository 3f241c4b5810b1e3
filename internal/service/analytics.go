// Package service contains the business logic for studies, respondents,
// responses, analytics summaries, auth, and exports.
package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/datle/datle-api/internal/database"
	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

// payloadFilterPrefix marks a query key as targeting a response payload
// field; the prefix is stripped to obtain the payload key.
const payloadFilterPrefix = "q_"

// dateOnlyFormat is the accepted form for from/to filter values.
const dateOnlyFormat = "2006-01-02"

// AnalyticsStore is the data access interface the summary engine reads from.
type AnalyticsStore interface {
	GetStudy(ctx context.Context, id string) (domain.Study, error)
	SelectResponses(ctx context.Context, q database.ResponseQuery) ([]domain.ResponseRecord, error)
}

// AnalyticsService computes study summaries.
type AnalyticsService struct {
	store  AnalyticsStore
	logger logger.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(store AnalyticsStore, log logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		logger: log,
	}
}

// resolvedFilters is the classified form of a raw filter mapping. Attribute
// and payload filters are disjoint; anything unrecognized was dropped.
type resolvedFilters struct {
	from    *time.Time
	to      *time.Time
	fromRaw *string
	toRaw   *string

	// attributes holds respondent dimension filters, keyed by dimension.
	attributes map[string]string

	// payload holds payload filters keyed by the stripped payload key,
	// with the original prefixed key retained for the filter echo.
	payload map[string]string

	// applied echoes every filter that survived resolution, keyed as
	// supplied by the caller.
	applied map[string]string
}

// resolveFilters classifies raw query filters into temporal bounds,
// respondent attribute filters, and payload filters. Unknown keys are
// ignored. A non-numeric age value is dropped rather than rejected.
func (s *AnalyticsService) resolveFilters(filters map[string]string) resolvedFilters {
	resolved := resolvedFilters{
		attributes: make(map[string]string),
		payload:    make(map[string]string),
		applied:    make(map[string]string),
	}

	for key, value := range filters {
		switch {
		case key == "from":
			if start, ok := parseBound(value, false); ok {
				resolved.from = &start
				raw := value
				resolved.fromRaw = &raw
			} else {
				s.logger.Warn("dropping unparseable from filter", logger.String("value", value))
			}

		case key == "to":
			if end, ok := parseBound(value, true); ok {
				resolved.to = &end
				raw := value
				resolved.toRaw = &raw
			} else {
				s.logger.Warn("dropping unparseable to filter", logger.String("value", value))
			}

		case key == domain.DimAge:
			n, err := strconv.Atoi(value)
			if err != nil {
				s.logger.Warn("dropping non-numeric age filter", logger.String("value", value))
				continue
			}
			resolved.attributes[key] = strconv.Itoa(n)
			resolved.applied[key] = resolved.attributes[key]

		case domain.IsRespondentDimension(key):
			resolved.attributes[key] = value
			resolved.applied[key] = value

		case strings.HasPrefix(key, payloadFilterPrefix):
			resolved.payload[strings.TrimPrefix(key, payloadFilterPrefix)] = value
			resolved.applied[key] = value
		}
	}

	return resolved
}

// parseBound parses a temporal filter value. A bare calendar date expands to
// the inclusive bound of that UTC day; a full timestamp is used as given.
func parseBound(value string, endOfDay bool) (time.Time, bool) {
	if day, err := time.Parse(dateOnlyFormat, value); err == nil {
		day = day.UTC()
		if endOfDay {
			day = day.Add(24*time.Hour - time.Nanosecond)
		}
		return day, true
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), true
	}
	return time.Time{}, false
}

// matchesPayloadFilters reports whether every payload filter matches the
// record's payload. A record lacking a filtered key, or lacking a payload
// entirely, does not match.
func matchesPayloadFilters(record domain.ResponseRecord, filters map[string]string) bool {
	if record.Payload == nil {
		return false
	}

	for key, expected := range filters {
		actual, ok := record.Payload[key]
		if !ok {
			return false
		}
		if domain.NormalizeAnswer(actual) != expected {
			return false
		}
	}

	return true
}

// refineByPayload applies payload filters in memory. The store cannot
// express them because payloads are schema-less; the result is still the
// intersection of all filters regardless of which pass evaluated each one.
func refineByPayload(records []domain.ResponseRecord, filters map[string]string) []domain.ResponseRecord {
	if len(filters) == 0 {
		return records
	}

	filtered := make([]domain.ResponseRecord, 0, len(records))
	for _, record := range records {
		if matchesPayloadFilters(record, filters) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// counter accumulates value occurrence counts while preserving the order
// values were first encountered.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(value string) {
	if _, seen := c.counts[value]; !seen {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

// breakdown returns the counted values sorted by count descending, with
// equal counts ordered by value ascending so output is deterministic.
func (c *counter) breakdown() []domain.BreakdownItem {
	items := make([]domain.BreakdownItem, 0, len(c.order))
	for _, value := range c.order {
		items = append(items, domain.BreakdownItem{Value: value, Count: c.counts[value]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Value < items[j].Value
	})

	return items
}

func (c *counter) total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// aggregate computes metrics, trend, respondent breakdowns, and question
// stats from the final filtered record set. Records must already be ordered
// by submission time ascending; the trend preserves first-encounter order.
func aggregate(records []domain.ResponseRecord) (domain.SummaryMetrics, domain.SummaryTrends, domain.RespondentBreakdowns, []domain.QuestionStat) {
	respondents := make(map[string]struct{})

	trendOrder := make([]string, 0)
	trendCounts := make(map[string]int)

	attributeCounters := make(map[string]*counter, len(domain.RespondentDimensions()))
	for _, dim := range domain.RespondentDimensions() {
		attributeCounters[dim] = newCounter()
	}

	questionOrder := make([]string, 0)
	questionCounters := make(map[string]*counter)

	for _, record := range records {
		respondents[record.RespondentID] = struct{}{}

		day := record.SubmittedAt.UTC().Format(dateOnlyFormat)
		if _, seen := trendCounts[day]; !seen {
			trendOrder = append(trendOrder, day)
		}
		trendCounts[day]++

		for _, dim := range domain.RespondentDimensions() {
			attributeCounters[dim].add(record.Respondent.AttributeValue(dim))
		}

		for key, value := range record.Payload {
			bucket, ok := questionCounters[key]
			if !ok {
				bucket = newCounter()
				questionCounters[key] = bucket
				questionOrder = append(questionOrder, key)
			}
			bucket.add(domain.NormalizeAnswer(value))
		}
	}

	metrics := domain.SummaryMetrics{
		TotalResponses:    len(records),
		UniqueRespondents: len(respondents),
	}

	trend := make([]domain.TrendPoint, 0, len(trendOrder))
	for _, day := range trendOrder {
		trend = append(trend, domain.TrendPoint{Date: day, Count: trendCounts[day]})
	}

	breakdowns := domain.RespondentBreakdowns{
		Gender:           attributeCounters[domain.DimGender].breakdown(),
		Location:         attributeCounters[domain.DimLocation].breakdown(),
		IncomeBand:       attributeCounters[domain.DimIncomeBand].breakdown(),
		Education:        attributeCounters[domain.DimEducation].breakdown(),
		EmploymentStatus: attributeCounters[domain.DimEmploymentStatus].breakdown(),
		Age:              attributeCounters[domain.DimAge].breakdown(),
	}

	sort.Strings(questionOrder)
	stats := make([]domain.QuestionStat, 0, len(questionOrder))
	for _, question := range questionOrder {
		bucket := questionCounters[question]
		stats = append(stats, domain.QuestionStat{
			Question:      question,
			TotalAnswered: bucket.total(),
			TopValues:     bucket.breakdown(),
		})
	}

	return metrics, domain.SummaryTrends{ResponsesByDay: trend}, breakdowns, stats
}

// GetStudySummary computes the analytics summary for a study under the
// given raw filters. Returns domain.ErrStudyNotFound when the study does
// not exist; no partial summary is ever produced.
func (s *AnalyticsService) GetStudySummary(ctx context.Context, studyID string, filters map[string]string) (domain.Summary, error) {
	study, err := s.store.GetStudy(ctx, studyID)
	if err != nil {
		return domain.Summary{}, err
	}

	resolved := s.resolveFilters(filters)

	records, err := s.store.SelectResponses(ctx, database.ResponseQuery{
		StudyID:    studyID,
		From:       resolved.from,
		To:         resolved.to,
		Attributes: resolved.attributes,
	})
	if err != nil {
		return domain.Summary{}, fmt.Errorf("select responses: %w", err)
	}

	records = refineByPayload(records, resolved.payload)

	metrics, trends, breakdowns, stats := aggregate(records)

	s.logger.Debug("computed study summary",
		logger.String("study_id", studyID),
		logger.Int("total_responses", metrics.TotalResponses),
		logger.Int("question_count", len(stats)),
	)

	return domain.Summary{
		Study: domain.SummaryStudy{
			ID:        study.ID,
			Title:     study.Title,
			Status:    study.Status,
			CreatedBy: study.CreatedBy,
			StartDate: study.StartDate,
			EndDate:   study.EndDate,
		},
		Metrics: metrics,
		Trends:  trends,
		AppliedFilters: domain.AppliedFilters{
			From:       resolved.fromRaw,
			To:         resolved.toRaw,
			Dimensions: resolved.applied,
		},
		RespondentBreakdowns: breakdowns,
		QuestionStats:        stats,
	}, nil
}
