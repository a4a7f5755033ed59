package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// CreateAccommodation handles POST /trips/{name}/accommodations.
func (s *Server) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var body AccommodationRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.accommodations.Add(r.Context(), tripName(r), requestToAccommodation(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, accommodationToResponse(created, nil))
}

// ListAccommodations handles GET /trips/{name}/accommodations.
func (s *Server) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	accs, err := s.accommodations.List(r.Context(), tripName(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	data := make([]Accommodation, len(accs))
	for i, a := range accs {
		data[i] = accommodationToResponse(a, &i)
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateAccommodation handles PUT /trips/{name}/accommodations/{index}.
func (s *Server) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var body AccommodationRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.accommodations.Update(r.Context(), tripName(r), index, requestToAccommodation(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accommodationToResponse(updated, &index))
}

// DeleteAccommodation handles DELETE /trips/{name}/accommodations/{index}.
func (s *Server) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.accommodations.Delete(r.Context(), tripName(r), index); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToAccommodation(body AccommodationRequest) domain.Accommodation {
	return domain.Accommodation{
		Type:         body.Type,
		Name:         body.Name,
		Address:      body.Address,
		CheckIn:      body.CheckIn.Time,
		CheckOut:     body.CheckOut.Time,
		Confirmation: body.Confirmation,
	}
}

// accommodationToResponse converts a domain.Accommodation; index may be nil
// when the position is not known to the caller.
func accommodationToResponse(a domain.Accommodation, index *int) Accommodation {
	return Accommodation{
		Index:        index,
		Type:         a.Type,
		Name:         a.Name,
		Address:      a.Address,
		CheckIn:      openapi_types.Date{Time: a.CheckIn},
		CheckOut:     openapi_types.Date{Time: a.CheckOut},
		Confirmation: a.Confirmation,
	}
}
