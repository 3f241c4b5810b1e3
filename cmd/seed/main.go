// Command seed resets and inserts the demo study with a small set of
// respondents and responses for local development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/datle/datle-api/internal/config"
	"github.com/datle/datle-api/internal/database"
	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
	"github.com/datle/datle-api/internal/service"
)

const (
	demoCreatedBy   = "demo-seed@datle.com"
	demoEmailPrefix = "demo-seed-"
	demoStudyDays   = 21
)

type seedRespondent struct {
	profile service.CreateRespondentInput
	payload map[string]any
}

func demoRespondents() []seedRespondent {
	return []seedRespondent{
		{
			profile: service.CreateRespondentInput{
				Email: demoEmailPrefix + "1@datle.com", Age: 24, Gender: "female",
				Location: "New York, NY", IncomeBand: "50k-75k",
				Education: "bachelors", EmploymentStatus: "full_time",
			},
			payload: map[string]any{
				"q_primary_use_case":   "daily hydration",
				"q_purchase_frequency": "weekly",
				"q_price_sensitivity":  3,
				"q_preferred_channel":  "online",
				"q_favorite_pack_size": "500ml",
			},
		},
		{
			profile: service.CreateRespondentInput{
				Email: demoEmailPrefix + "2@datle.com", Age: 31, Gender: "male",
				Location: "Austin, TX", IncomeBand: "75k-100k",
				Education: "masters", EmploymentStatus: "full_time",
			},
			payload: map[string]any{
				"q_primary_use_case":   "workout recovery",
				"q_purchase_frequency": "weekly",
				"q_price_sensitivity":  2,
				"q_preferred_channel":  "retail",
				"q_favorite_pack_size": "1L",
			},
		},
		{
			profile: service.CreateRespondentInput{
				Email: demoEmailPrefix + "3@datle.com", Age: 27, Gender: "female",
				Location: "Seattle, WA", IncomeBand: "75k-100k",
				Education: "bachelors", EmploymentStatus: "full_time",
			},
			payload: map[string]any{
				"q_primary_use_case":   "daily hydration",
				"q_purchase_frequency": "monthly",
				"q_price_sensitivity":  4,
				"q_preferred_channel":  "online",
				"q_favorite_pack_size": "500ml",
			},
		},
		{
			profile: service.CreateRespondentInput{
				Email: demoEmailPrefix + "4@datle.com", Age: 36, Gender: "male",
				Location: "Chicago, IL", IncomeBand: "100k-150k",
				Education: "masters", EmploymentStatus: "self_employed",
			},
			payload: map[string]any{
				"q_primary_use_case":   "workout recovery",
				"q_purchase_frequency": "monthly",
				"q_price_sensitivity":  2,
				"q_preferred_channel":  "retail",
				"q_favorite_pack_size": "1L",
			},
		},
		{
			profile: service.CreateRespondentInput{
				Email: demoEmailPrefix + "5@datle.com", Age: 29, Gender: "female",
				Location: "Boston, MA", IncomeBand: "50k-75k",
				Education: "bachelors", EmploymentStatus: "full_time",
			},
			payload: map[string]any{
				"q_primary_use_case":   "on-the-go convenience",
				"q_purchase_frequency": "weekly",
				"q_price_sensitivity":  4,
				"q_preferred_channel":  "online",
				"q_favorite_pack_size": "330ml",
			},
		},
		{
			profile: service.CreateRespondentInput{
				Email: demoEmailPrefix + "6@datle.com", Age: 41, Gender: "male",
				Location: "Denver, CO", IncomeBand: "100k-150k",
				Education: "phd", EmploymentStatus: "full_time",
			},
			payload: map[string]any{
				"q_primary_use_case":   "daily hydration",
				"q_purchase_frequency": "weekly",
				"q_price_sensitivity":  1,
				"q_preferred_channel":  "retail",
				"q_favorite_pack_size": "1L",
			},
		},
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Demo seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := resetDemoData(ctx, db); err != nil {
		return fmt.Errorf("reset demo data: %w", err)
	}

	repo := database.NewRepository(db)
	log := logger.NewNop()

	studySvc := service.NewStudyService(repo, log)
	respondentSvc := service.NewRespondentService(repo, log)

	// The study opened one day per respondent ago so submissions can be
	// spread one per day without stamping future timestamps.
	startDate := time.Now().UTC().AddDate(0, 0, -(len(demoRespondents()) - 1))
	endDate := startDate.AddDate(0, 0, demoStudyDays)

	study, err := studySvc.Create(ctx, service.CreateStudyInput{
		Title:     "Demo Beverage Demand Tracker",
		Status:    domain.StatusActive,
		CreatedBy: demoCreatedBy,
		TargetCriteria: map[string]any{
			"age_range": "21-45",
			"locations": []string{
				"New York, NY", "Austin, TX", "Seattle, WA",
				"Chicago, IL", "Boston, MA", "Denver, CO",
			},
			"purchase_frequency": []string{"weekly", "monthly"},
		},
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return fmt.Errorf("create demo study: %w", err)
	}

	for index, item := range demoRespondents() {
		respondent, createErr := respondentSvc.Create(ctx, item.profile)
		if createErr != nil {
			return fmt.Errorf("create respondent %s: %w", item.profile.Email, createErr)
		}

		// Submissions are spread one per day for a visible trend. The
		// service always stamps the current time, so seeding writes
		// through the repository to control submitted_at.
		payloadJSON, marshalErr := json.Marshal(item.payload)
		if marshalErr != nil {
			return fmt.Errorf("marshal payload for %s: %w", item.profile.Email, marshalErr)
		}

		response := domain.Response{
			ID:           uuid.NewString(),
			RespondentID: respondent.ID,
			StudyID:      study.ID,
			SubmittedAt:  startDate.AddDate(0, 0, index),
			Payload:      item.payload,
		}

		if insertErr := repo.CreateResponse(ctx, response, payloadJSON); insertErr != nil {
			return fmt.Errorf("create response for %s: %w", item.profile.Email, insertErr)
		}
	}

	fmt.Println("Demo seed complete.")
	fmt.Printf("Study ID: %s\n", study.ID)
	fmt.Printf("Study Title: %s\n", study.Title)
	fmt.Printf("Responses Created: %d\n", len(demoRespondents()))

	return nil
}

// resetDemoData removes earlier demo runs so the seed stays idempotent.
// Responses cascade when their study or respondent is deleted.
func resetDemoData(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM studies WHERE created_by = $1`, demoCreatedBy); err != nil {
		return fmt.Errorf("delete demo studies: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM respondents WHERE email LIKE $1`, demoEmailPrefix+"%"); err != nil {
		return fmt.Errorf("delete demo respondents: %w", err)
	}

	return nil
}
