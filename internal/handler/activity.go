package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// CreateActivity handles POST /trips/{name}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var body ActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.activities.Add(r.Context(), tripName(r), requestToActivity(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activityToResponse(created, nil))
}

// ListActivities handles GET /trips/{name}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	acts, err := s.activities.List(r.Context(), tripName(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	data := make([]Activity, len(acts))
	for i, a := range acts {
		data[i] = activityToResponse(a, &i)
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateActivity handles PUT /trips/{name}/activities/{index}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var body ActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.activities.Update(r.Context(), tripName(r), index, requestToActivity(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(updated, &index))
}

// DeleteActivity handles DELETE /trips/{name}/activities/{index}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), tripName(r), index); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToActivity(body ActivityRequest) domain.Activity {
	return domain.Activity{
		Description: body.Description,
		Date:        body.Date.Time,
		Time:        body.Time,
		Location:    body.Location,
		Notes:       body.Notes,
	}
}

func activityToResponse(a domain.Activity, index *int) Activity {
	return Activity{
		Index:       index,
		Description: a.Description,
		Date:        openapi_types.Date{Time: a.Date},
		Time:        a.Time,
		Location:    a.Location,
		Notes:       a.Notes,
	}
}
