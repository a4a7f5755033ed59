package handler

import (
	"net/http"
)

// GetTripSummary handles GET /trips/{name}/summary and returns the itinerary
// as plain text.
func (s *Server) GetTripSummary(w http.ResponseWriter, r *http.Request) {
	text, err := s.summary.Summary(r.Context(), tripName(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
