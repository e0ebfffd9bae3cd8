package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"calassist/cmd/internal/conflict"
	"calassist/cmd/internal/domain/sqlite"
	"calassist/cmd/internal/domain/sqlite/repository"
	"calassist/cmd/internal/routes"
	"calassist/cmd/internal/service"
	"calassist/cmd/internal/utils/validators"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	// Init SQLite
	db, err := sqlite.Init(envOr("DB_PATH", "./database.db"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Getting repositories
	eventRepo := repository.NewEventRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	logRepo := repository.NewConflictLogRepository(db)

	// Getting services; the preference service doubles as the engine's
	// preference source.
	prefService := service.NewPreferenceService(prefRepo, validate)
	engine := conflict.NewEngine(eventRepo, prefService, logRepo)
	conflictService := service.NewConflictService(engine, validate)
	eventService := service.NewEventService(eventRepo, validate)

	// Getting routes
	conflictRoutes := routes.NewConflictDefault(conflictService)
	eventRoutes := routes.NewEventDefault(eventService)
	prefRoutes := routes.NewPreferenceDefault(prefService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Conflict detection
	e.POST("/api/conflict/check", conflictRoutes.CheckConflict)
	e.GET("/api/conflict/suggestions", conflictRoutes.GetSuggestions)

	// Events
	e.GET("/api/events", eventRoutes.GetEvents)
	e.POST("/api/events", eventRoutes.CreateEvent)
	e.GET("/api/events/export.ics", eventRoutes.ExportCalendar)
	e.GET("/api/events/:id", eventRoutes.GetEvent)
	e.PUT("/api/events/:id", eventRoutes.RescheduleEvent)
	e.DELETE("/api/events/:id", eventRoutes.CancelEvent)

	// Preferences
	e.GET("/api/preferences", prefRoutes.GetPreferences)
	e.PUT("/api/preferences", prefRoutes.UpdatePreferences)

	err = e.Start(envOr("ADDR", ":6060"))
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("dateonly", validators.IsDateOnly)
	_ = validate.RegisterValidation("clocktime", validators.IsClockTime)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
