// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the data files or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, policy service.CollisionPolicy) (domain.Trip, error)
	Get(ctx context.Context, name string) (domain.Trip, error)
	List(ctx context.Context) []domain.Trip
	Update(ctx context.Context, oldName string, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, name string) error
	Dates(ctx context.Context, name string) ([]dates.Option, error)
}

// AccommodationServicer defines the accommodation operations.
type AccommodationServicer interface {
	Add(ctx context.Context, tripName string, acc domain.Accommodation) (domain.Accommodation, error)
	List(ctx context.Context, tripName string) ([]domain.Accommodation, error)
	Update(ctx context.Context, tripName string, index int, acc domain.Accommodation) (domain.Accommodation, error)
	Delete(ctx context.Context, tripName string, index int) error
}

// ActivityServicer defines the activity operations.
type ActivityServicer interface {
	Add(ctx context.Context, tripName string, act domain.Activity) (domain.Activity, error)
	List(ctx context.Context, tripName string) ([]domain.Activity, error)
	Update(ctx context.Context, tripName string, index int, act domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, tripName string, index int) error
}

// PackingServicer defines the packing checklist operations.
type PackingServicer interface {
	Add(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error)
	Toggle(ctx context.Context, index int) error
	Delete(ctx context.Context, index int) error
	List(ctx context.Context) []domain.PackingEntry
	ListForTrip(ctx context.Context, trip string) []domain.PackingEntry
	Progress(ctx context.Context) int
	ProgressForTrip(ctx context.Context, trip string) int
}

// Summarizer renders a trip's itinerary text.
type Summarizer interface {
	Summary(ctx context.Context, name string) (string, error)
}

// Exporter produces the flat export table.
type Exporter interface {
	Export(ctx context.Context) []domain.ExportRow
}

// Services groups the dependencies of Server. Nil members are allowed in
// tests that only exercise other routes.
type Services struct {
	Trips          TripServicer
	Accommodations AccommodationServicer
	Activities     ActivityServicer
	Packing        PackingServicer
	Summary        Summarizer
	Export         Exporter
}

// Server holds the services behind every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips          TripServicer
	accommodations AccommodationServicer
	activities     ActivityServicer
	packing        PackingServicer
	summary        Summarizer
	export         Exporter
	log            *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger discards internal error logs.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		trips:          svc.Trips,
		accommodations: svc.Accommodations,
		activities:     svc.Activities,
		packing:        svc.Packing,
		summary:        svc.Summary,
		export:         svc.Export,
		log:            log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, nil)
}

// Routes returns the API router. Mount it under the application router that
// carries the request-scoped middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/dates", s.GetTripDates)
			r.Get("/summary", s.GetTripSummary)

			r.Get("/accommodations", s.ListAccommodations)
			r.Post("/accommodations", s.CreateAccommodation)
			r.Put("/accommodations/{index}", s.UpdateAccommodation)
			r.Delete("/accommodations/{index}", s.DeleteAccommodation)

			r.Get("/activities", s.ListActivities)
			r.Post("/activities", s.CreateActivity)
			r.Put("/activities/{index}", s.UpdateActivity)
			r.Delete("/activities/{index}", s.DeleteActivity)
		})
	})

	r.Route("/packing", func(r chi.Router) {
		r.Get("/", s.ListPacking)
		r.Post("/", s.CreatePackingItem)
		r.Get("/progress", s.GetPackingProgress)
		r.Post("/{index}/toggle", s.TogglePackingItem)
		r.Delete("/{index}", s.DeletePackingItem)
	})

	r.Get("/export", s.GetExport)
	return r
}
