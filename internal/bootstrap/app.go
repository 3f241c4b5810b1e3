// Package bootstrap handles application initialization and lifecycle
// management for the DatLe survey insights API.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/datle/datle-api/internal/httpserver"
	"github.com/datle/datle-api/internal/logger"
)

// Start initializes and runs the service.
func Start() error {
	cfg, configErr := LoadConfig()
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}

	log, logErr := CreateLogger(cfg)
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting DatLe API",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	db, dbErr := SetupDatabase(cfg)
	if dbErr != nil {
		return fmt.Errorf("database: %w", dbErr)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", logger.Error(closeErr))
		}
	}()
	log.Info("database connection established")

	server, done := SetupHTTPServer(cfg, db, log)
	defer close(done)

	if runErr := httpserver.RunWithGracefulShutdown(context.Background(), server, log); runErr != nil {
		log.Error("server error", logger.Error(runErr))
		return fmt.Errorf("server: %w", runErr)
	}

	log.Info("DatLe API stopped")
	return nil
}
