package main

import (
	"github.com/robfig/cron/v3"
	"github.com/tasklane/tasklane/internal/config"
	"github.com/tasklane/tasklane/internal/handlers"
	"github.com/tasklane/tasklane/internal/models"
	"github.com/tasklane/tasklane/internal/services"
	"github.com/tasklane/tasklane/internal/utils"
	"github.com/tasklane/tasklane/pkg/logger"
	"gorm.io/gorm"
)

// application holds the initialized dependencies: the database handle, the
// services and handlers built on it, and the background scheduler.
type application struct {
	cfg             *config.Config
	db              *gorm.DB
	activityService *services.ActivityLogService
	authHandler     *handlers.AuthHandler
	boardHandler    *handlers.BoardHandler
	activityHandler *handlers.ActivityLogHandler
	cleanupCron     *cron.Cron
}

// bootstrap wires up the application. The database handle is constructed
// here and injected everywhere it is needed; nothing holds it globally.
func bootstrap(cfg *config.Config) (*application, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}

	activityService := services.NewActivityLogService(db)
	cleanupCron := activityService.StartCleanupScheduler(cfg.Log.RetentionDays)

	return &application{
		cfg:             cfg,
		db:              db,
		activityService: activityService,
		authHandler:     handlers.NewAuthHandler(db, &cfg.JWT),
		boardHandler:    handlers.NewBoardHandler(db),
		activityHandler: handlers.NewActivityLogHandler(activityService),
		cleanupCron:     cleanupCron,
	}, nil
}

// shutdown stops background work and releases the database.
func (app *application) shutdown() {
	if app.cleanupCron != nil {
		app.cleanupCron.Stop()
	}
	if err := models.Close(app.db); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}
}
