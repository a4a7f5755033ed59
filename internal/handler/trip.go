package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// CreateTrip handles POST /trips.
// ?on_conflict=reject|overwrite|rename overrides the configured collision policy.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	policy, err := service.ParseCollisionPolicy(r.URL.Query().Get("on_conflict"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, unwrapMessage(err, domain.ErrValidation))
		return
	}
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(body), policy)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/trips/"+url.PathEscape(created.Name))
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. The result is always a JSON array.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips := s.trips.List(r.Context())
	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /trips/{name}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), tripName(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{name}. The body may rename the trip.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.trips.Update(r.Context(), tripName(r), requestToTrip(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{name}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), tripName(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripDates handles GET /trips/{name}/dates.
func (s *Server) GetTripDates(w http.ResponseWriter, r *http.Request) {
	opts, err := s.trips.Dates(r.Context(), tripName(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	data := make([]DateOption, len(opts))
	for i, o := range opts {
		data[i] = DateOption{Date: o.Date, Display: o.Display}
	}
	writeJSON(w, http.StatusOK, data)
}

// --- mapping helpers --------------------------------------------------------

// urlParam returns a decoded chi URL parameter. chi matches on the raw path
// when the request carries escapes such as %2F, so those must be undone here.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath != "" {
		if u, err := url.PathUnescape(v); err == nil {
			return u
		}
	}
	return v
}

func tripName(r *http.Request) string {
	return urlParam(r, "name")
}

// requestToTrip converts a TripRequest body into a domain.Trip.
// Required-field checks happen in the service.
func requestToTrip(body TripRequest) domain.Trip {
	return domain.Trip{
		Name:        body.Name,
		Destination: body.Destination,
		TravelStyle: body.TravelStyle,
		Start:       body.StartDate.Time,
		End:         body.EndDate.Time,
	}
}

// tripToResponse converts a domain.Trip into the wire Trip type.
// Nested slices are never null.
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		Name:           t.Name,
		Destination:    t.Destination,
		TravelStyle:    t.TravelStyle,
		StartDate:      openapi_types.Date{Time: t.Start},
		EndDate:        openapi_types.Date{Time: t.End},
		DurationDays:   t.Duration,
		Accommodations: make([]Accommodation, len(t.Accommodations)),
		Activities:     make([]Activity, len(t.Activities)),
	}
	if !t.Created.IsZero() {
		resp.Created = t.Created.Format(dates.Timestamp)
	}
	for i, a := range t.Accommodations {
		resp.Accommodations[i] = accommodationToResponse(a, &i)
	}
	for i, a := range t.Activities {
		resp.Activities[i] = activityToResponse(a, &i)
	}
	return resp
}
