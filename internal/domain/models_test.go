package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datle/datle-api/internal/domain"
)

func TestStudyStatusIsValid(t *testing.T) {
	valid := []domain.StudyStatus{
		domain.StatusDraft,
		domain.StatusActive,
		domain.StatusPaused,
		domain.StatusCompleted,
		domain.StatusArchived,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	assert.False(t, domain.StudyStatus("RUNNING").IsValid())
	assert.False(t, domain.StudyStatus("active").IsValid())
	assert.False(t, domain.StudyStatus("").IsValid())
}

func TestRespondentDimensions(t *testing.T) {
	dims := domain.RespondentDimensions()

	assert.Equal(t, []string{
		"gender", "location", "income_band",
		"education", "employment_status", "age",
	}, dims)

	for _, d := range dims {
		assert.True(t, domain.IsRespondentDimension(d))
	}

	assert.False(t, domain.IsRespondentDimension("email"))
	assert.False(t, domain.IsRespondentDimension("q_rating"))
	assert.False(t, domain.IsRespondentDimension(""))
}

func TestRespondentProfileAttributeValue(t *testing.T) {
	p := domain.RespondentProfile{
		ID:               "r-1",
		Email:            "ana@example.com",
		Age:              34,
		Gender:           "female",
		Location:         "Lisbon",
		IncomeBand:       "50k-75k",
		Education:        "masters",
		EmploymentStatus: "employed",
	}

	assert.Equal(t, "female", p.AttributeValue(domain.DimGender))
	assert.Equal(t, "Lisbon", p.AttributeValue(domain.DimLocation))
	assert.Equal(t, "50k-75k", p.AttributeValue(domain.DimIncomeBand))
	assert.Equal(t, "masters", p.AttributeValue(domain.DimEducation))
	assert.Equal(t, "employed", p.AttributeValue(domain.DimEmploymentStatus))
	assert.Equal(t, "34", p.AttributeValue(domain.DimAge))
	assert.Equal(t, "", p.AttributeValue("unknown"))
}
