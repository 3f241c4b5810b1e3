package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/datle/datle-api/internal/api"
	"github.com/datle/datle-api/internal/config"
	"github.com/datle/datle-api/internal/database"
	"github.com/datle/datle-api/internal/httpserver"
	"github.com/datle/datle-api/internal/logger"
	"github.com/datle/datle-api/internal/service"
)

const healthCheckTimeout = 2 * time.Second

// SetupHTTPServer wires repositories, services, and handlers into the HTTP
// server. The returned done channel stops the rate limiter's cleanup
// goroutine and must be closed when the server exits.
func SetupHTTPServer(cfg *config.Config, db *sqlx.DB, log logger.Logger) (*http.Server, chan struct{}) {
	repo := database.NewRepository(db)

	analyticsSvc := service.NewAnalyticsService(repo, log)
	studySvc := service.NewStudyService(repo, log)
	respondentSvc := service.NewRespondentService(repo, log)
	responseSvc := service.NewResponseService(repo, log)
	exportSvc := service.NewExportService(repo, log)
	authSvc := service.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.OTPTTL, log)

	handlers := api.Handlers{
		Analytics:   api.NewAnalyticsHandler(analyticsSvc),
		Studies:     api.NewStudiesHandler(studySvc, exportSvc),
		Respondents: api.NewRespondentsHandler(respondentSvc),
		Responses:   api.NewResponsesHandler(responseSvc),
		Auth:        api.NewAuthHandler(authSvc),
	}

	dbCheck := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return db.PingContext(ctx)
	}

	done := make(chan struct{})
	engine := httpserver.NewEngine(cfg, log, handlers, dbCheck, done)

	return httpserver.New(cfg, engine), done
}
