// Package domain contains the core domain models for the DatLe survey
// insights API.
package domain

import (
	"strconv"
	"time"
)

// StudyStatus represents the lifecycle state of a study.
type StudyStatus string

const (
	// StatusDraft indicates a study that is still being configured.
	StatusDraft StudyStatus = "DRAFT"
	// StatusActive indicates a study currently collecting responses.
	StatusActive StudyStatus = "ACTIVE"
	// StatusPaused indicates a study whose collection is temporarily stopped.
	StatusPaused StudyStatus = "PAUSED"
	// StatusCompleted indicates a study that finished collecting.
	StatusCompleted StudyStatus = "COMPLETED"
	// StatusArchived indicates a study retired from all listings.
	StatusArchived StudyStatus = "ARCHIVED"
)

// validStatuses maps every recognised StudyStatus value to true for O(1) lookup.
var validStatuses = map[StudyStatus]bool{
	StatusDraft:     true,
	StatusActive:    true,
	StatusPaused:    true,
	StatusCompleted: true,
	StatusArchived:  true,
}

// IsValid reports whether s is a recognised study status.
func (s StudyStatus) IsValid() bool {
	return validStatuses[s]
}

// Respondent attribute dimension keys. This is the single enumeration
// consumed by filter resolution, record selection, and aggregation.
const (
	DimGender           = "gender"
	DimLocation         = "location"
	DimIncomeBand       = "income_band"
	DimEducation        = "education"
	DimEmploymentStatus = "employment_status"
	DimAge              = "age"
)

// respondentDimensionCount is the number of fixed respondent dimensions.
const respondentDimensionCount = 6

// RespondentDimensions returns the fixed respondent attribute dimensions in
// presentation order.
func RespondentDimensions() []string {
	dims := make([]string, 0, respondentDimensionCount)
	dims = append(dims,
		DimGender, DimLocation, DimIncomeBand,
		DimEducation, DimEmploymentStatus, DimAge,
	)
	return dims
}

// IsRespondentDimension reports whether key is one of the fixed respondent
// attribute dimensions.
func IsRespondentDimension(key string) bool {
	switch key {
	case DimGender, DimLocation, DimIncomeBand, DimEducation, DimEmploymentStatus, DimAge:
		return true
	}
	return false
}

// Study represents a research campaign collecting responses.
type Study struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Status         StudyStatus    `json:"status"`
	CreatedBy      string         `json:"created_by"`
	TargetCriteria map[string]any `json:"target_criteria"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Respondent represents a profiled individual eligible to answer studies.
type Respondent struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	Location         string    `json:"location"`
	IncomeBand       string    `json:"income_band"`
	Education        string    `json:"education"`
	EmploymentStatus string    `json:"employment_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Response represents one respondent's submitted answer set for one study.
// Payload is the schema-less mapping from question key to answer value.
type Response struct {
	ID           string         `json:"id"`
	RespondentID string         `json:"respondent_id"`
	StudyID      string         `json:"study_id"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	Payload      map[string]any `json:"payload"`
}

// RespondentProfile is the subset of respondent attributes joined onto each
// response for aggregation.
type RespondentProfile struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Location         string `json:"location"`
	IncomeBand       string `json:"income_band"`
	Education        string `json:"education"`
	EmploymentStatus string `json:"employment_status"`
}

// AttributeValue returns the profile's value for a fixed respondent
// dimension, as the normalized string used in breakdowns. Unknown dimensions
// return the empty string.
func (p RespondentProfile) AttributeValue(dim string) string {
	switch dim {
	case DimGender:
		return p.Gender
	case DimLocation:
		return p.Location
	case DimIncomeBand:
		return p.IncomeBand
	case DimEducation:
		return p.Education
	case DimEmploymentStatus:
		return p.EmploymentStatus
	case DimAge:
		return strconv.Itoa(p.Age)
	}
	return ""
}

// ResponseRecord is a response joined with its respondent's profile. It is
// the unit the aggregation engine operates on.
type ResponseRecord struct {
	Response
	Respondent RespondentProfile `json:"respondent"`
}
