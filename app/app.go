// Package app wires the modules together: database, repositories, services,
// and the cross-module adapters that let each module stay ignorant of the
// others' packages.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"

	"github.com/festrack/festrack/api"
	"github.com/festrack/festrack/api/handlers"
	competitionservice "github.com/festrack/festrack/app/modules/competition/application"
	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	eventservice "github.com/festrack/festrack/app/modules/event/application"
	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	pointsservice "github.com/festrack/festrack/app/modules/points/application"
	pointsdb "github.com/festrack/festrack/app/modules/points/infrastructure/repositories"
	rosterservice "github.com/festrack/festrack/app/modules/roster/application"
	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/config"
	"github.com/festrack/festrack/internal/db/bundb"
	"github.com/festrack/festrack/internal/metrics"
	"github.com/festrack/festrack/pkg/jwt"
)

// App holds the composed application.
type App struct {
	Cfg         *config.Config
	Events      *eventservice.Service
	Roster      *rosterservice.Service
	Competition *competitionservice.Service
	Points      *pointsservice.Service
	Tokens      jwt.Service
	Registry    *prometheus.Registry
	Logger      *slog.Logger

	db *bun.DB
}

// NewApp initializes the database connection and composes the services.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := bundb.New(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	eventRepo := eventdb.New(db)
	rosterRepo := rosterdb.New(db)
	competitionRepo := competitiondb.New(db)
	pointsRepo := pointsdb.New(db)

	// The modules reference each other both ways (deletion cascades flow
	// down, point awards flow up), so the two hook adapters are filled in
	// after every service exists.
	competitionHook := &competitionHooks{}
	pointsHook := &pointsHooks{}

	events := eventservice.NewService(eventRepo, competitionHook, pointsHook, logger, m, db)
	roster := rosterservice.NewService(rosterRepo, competitionHook, pointsHook, logger, m, db)
	competition := competitionservice.NewService(competitionRepo, roster, events, pointsHook, logger, m, db)
	points := pointsservice.NewService(pointsRepo, rosterRepo, competitionHook, logger, m, db)
	competitionHook.svc = competition
	pointsHook.svc = points

	return &App{
		Cfg:         cfg,
		Events:      events,
		Roster:      roster,
		Competition: competition,
		Points:      points,
		Tokens:      jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL),
		Registry:    registry,
		Logger:      logger,
		db:          db,
	}, nil
}

// Router builds the HTTP router over the composed services.
func (a *App) Router() chi.Router {
	h := handlers.New(a.Events, a.Roster, a.Competition, a.Points, a.Tokens, a.Cfg.JWT.DefaultTTL, a.Logger)
	return api.NewRouter(a.Cfg, h, a.Tokens, a.Registry)
}

// DB exposes the connection for the migration CLI.
func (a *App) DB() *bun.DB {
	return a.db
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}

// competitionHooks exposes the competition service's cleanup and read
// operations to the modules constructed before it.
type competitionHooks struct {
	svc *competitionservice.Service
}

func (h *competitionHooks) DeleteForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	return h.svc.DeleteForTeam(ctx, db, teamID)
}

func (h *competitionHooks) DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	return h.svc.DeleteForEvent(ctx, db, eventID)
}

func (h *competitionHooks) DeleteForProgram(ctx context.Context, db bun.IDB, programID int64) error {
	return h.svc.DeleteForProgram(ctx, db, programID)
}

func (h *competitionHooks) EventPointsFacts(ctx context.Context, db bun.IDB) ([]sharedtypes.EventPointsFact, error) {
	return h.svc.EventPointsFacts(ctx, db)
}

// pointsHooks exposes the points service's award and cleanup operations.
type pointsHooks struct {
	svc *pointsservice.Service
}

func (h *pointsHooks) Award(ctx context.Context, db bun.IDB, award sharedtypes.PointAward) error {
	return h.svc.Award(ctx, db, award)
}

func (h *pointsHooks) DeleteForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	return h.svc.DeleteForTeam(ctx, db, teamID)
}

func (h *pointsHooks) DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	return h.svc.DeleteForEvent(ctx, db, eventID)
}

// interface conformance
var (
	_ eventservice.CompetitionCleaner  = (*competitionHooks)(nil)
	_ rosterservice.CompetitionCleaner = (*competitionHooks)(nil)
	_ pointsservice.ResultsReader      = (*competitionHooks)(nil)
	_ eventservice.PointsCleaner       = (*pointsHooks)(nil)
	_ rosterservice.PointsCleaner      = (*pointsHooks)(nil)
	_ competitionservice.PointsAwarder = (*pointsHooks)(nil)
)
