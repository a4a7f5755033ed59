package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// App bundles the stores and services built from one Config.
type App struct {
	Config config.Config
	Log    *slog.Logger

	TripStore    repo.TripRepo
	PackingStore repo.PackingRepo

	Trips          *service.TripService
	Accommodations *service.AccommodationService
	Activities     *service.ActivityService
	Packing        *service.PackingService
	Summary        *service.SummaryService
	Export         *service.ExportService
}

// New loads both data files and constructs the dependency graph.
// A nil logger discards logs.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	policy, err := service.ParseCollisionPolicy(cfg.CollisionPolicy)
	if err != nil {
		return nil, err
	}

	trips := repo.NewTripRepo(ctx, repo.DataFile{Path: cfg.TripsPath(), Retries: cfg.SaveRetries, Log: log})
	packing := repo.NewPackingRepo(ctx, repo.DataFile{Path: cfg.PackingPath(), Retries: cfg.SaveRetries, Log: log})

	return &App{
		Config:         cfg,
		Log:            log,
		TripStore:      trips,
		PackingStore:   packing,
		Trips:          service.NewTripService(trips, policy, nil),
		Accommodations: service.NewAccommodationService(trips),
		Activities:     service.NewActivityService(trips),
		Packing:        service.NewPackingService(packing),
		Summary:        service.NewSummaryService(trips, packing),
		Export:         service.NewExportService(trips),
	}, nil
}

// Handler returns the HTTP handler for the API.
//
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer →
// CORS → MaxBodySize.
// RequestID generates a unique trace ID per request.
// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
// SlogLogger writes one structured log line per request.
// Recoverer catches panics and returns HTTP 500 instead of crashing.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(a.Config.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(a.Config.MaxBodyBytes))

	srv := handler.NewServer(handler.Services{
		Trips:          a.Trips,
		Accommodations: a.Accommodations,
		Activities:     a.Activities,
		Packing:        a.Packing,
		Summary:        a.Summary,
		Export:         a.Export,
	}, a.Log)
	r.Mount("/", srv.Routes())
	return r
}
