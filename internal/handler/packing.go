package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ListPacking handles GET /packing. ?trip= narrows the list and the progress
// figure to one trip; indices always refer to the full list.
func (s *Server) ListPacking(w http.ResponseWriter, r *http.Request) {
	trip := r.URL.Query().Get("trip")

	var entries []domain.PackingEntry
	var progress int
	if trip != "" {
		entries = s.packing.ListForTrip(r.Context(), trip)
		progress = s.packing.ProgressForTrip(r.Context(), trip)
	} else {
		entries = s.packing.List(r.Context())
		progress = s.packing.Progress(r.Context())
	}

	items := make([]PackingItem, len(entries))
	for i, e := range entries {
		items[i] = packingToResponse(e)
	}
	writeJSON(w, http.StatusOK, PackingList{Items: items, Progress: progress})
}

// CreatePackingItem handles POST /packing.
func (s *Server) CreatePackingItem(w http.ResponseWriter, r *http.Request) {
	var body PackingRequest
	if !decodeBody(w, r, &body) {
		return
	}

	item, err := s.packing.Add(r.Context(), domain.PackingItem{
		Trip:     body.Trip,
		Category: body.Category,
		Name:     body.Name,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, PackingItem{
		Trip:     item.Trip,
		Category: item.Category,
		Name:     item.Name,
		Packed:   item.Packed,
	})
}

// TogglePackingItem handles POST /packing/{index}/toggle.
func (s *Server) TogglePackingItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.packing.Toggle(r.Context(), index); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePackingItem handles DELETE /packing/{index}.
func (s *Server) DeletePackingItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.packing.Delete(r.Context(), index); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPackingProgress handles GET /packing/progress.
func (s *Server) GetPackingProgress(w http.ResponseWriter, r *http.Request) {
	trip := r.URL.Query().Get("trip")
	if trip == "" {
		writeJSON(w, http.StatusOK, PackingProgress{Progress: s.packing.Progress(r.Context())})
		return
	}
	writeJSON(w, http.StatusOK, PackingProgress{Trip: trip, Progress: s.packing.ProgressForTrip(r.Context(), trip)})
}

func packingToResponse(e domain.PackingEntry) PackingItem {
	return PackingItem{
		Index:    &e.Index,
		Trip:     e.Item.Trip,
		Category: e.Item.Category,
		Name:     e.Item.Name,
		Packed:   e.Item.Packed,
	}
}
