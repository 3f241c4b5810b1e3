package domain

import "time"

// BreakdownItem is one observed categorical value and its occurrence count
// within a filtered response set.
type BreakdownItem struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TrendPoint is the response count for one UTC calendar day.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// QuestionStat is the answer distribution for one payload question key.
type QuestionStat struct {
	Question      string          `json:"question"`
	TotalAnswered int             `json:"total_answered"`
	TopValues     []BreakdownItem `json:"top_values"`
}

// SummaryStudy is the study header echoed on every summary.
type SummaryStudy struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Status    StudyStatus `json:"status"`
	CreatedBy string      `json:"created_by"`
	StartDate *time.Time  `json:"start_date"`
	EndDate   *time.Time  `json:"end_date"`
}

// SummaryMetrics holds the headline counts for a filtered response set.
type SummaryMetrics struct {
	TotalResponses    int `json:"total_responses"`
	UniqueRespondents int `json:"unique_respondents"`
}

// SummaryTrends holds the day-bucketed response trend.
type SummaryTrends struct {
	ResponsesByDay []TrendPoint `json:"responses_by_day"`
}

// AppliedFilters echoes the filters that were actually resolved and applied,
// not the raw query string. Dimensions are keyed exactly as supplied
// (respondent attribute keys and q_-prefixed payload keys).
type AppliedFilters struct {
	From       *string           `json:"from"`
	To         *string           `json:"to"`
	Dimensions map[string]string `json:"dimensions"`
}

// RespondentBreakdowns holds the six fixed attribute distributions.
type RespondentBreakdowns struct {
	Gender           []BreakdownItem `json:"gender"`
	Location         []BreakdownItem `json:"location"`
	IncomeBand       []BreakdownItem `json:"income_band"`
	Education        []BreakdownItem `json:"education"`
	EmploymentStatus []BreakdownItem `json:"employment_status"`
	Age              []BreakdownItem `json:"age"`
}

// Summary is the full analytics response for one study and filter set. It is
// assembled fresh per request and never mutated afterwards.
type Summary struct {
	Study                SummaryStudy         `json:"study"`
	Metrics              SummaryMetrics       `json:"metrics"`
	Trends               SummaryTrends        `json:"trends"`
	AppliedFilters       AppliedFilters       `json:"applied_filters"`
	RespondentBreakdowns RespondentBreakdowns `json:"respondent_breakdowns"`
	QuestionStats        []QuestionStat       `json:"question_stats"`
}
