package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	codeNotFound        = "not_found"
	codeValidation      = "validation_error"
	codeConflict        = "conflict"
	codeIndexOutOfRange = "index_out_of_range"
	codeBadRequest      = "bad_request"
	codeTooLarge        = "payload_too_large"
	codePersist         = "persist_failed"
	codeInternal        = "internal_error"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an ErrorResponse.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondError maps a service error onto a status code and error body.
// Unrecognised errors are logged and reported as 500 without detail.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrTripNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, detail(err, domain.ErrTripNotFound))
	case errors.Is(err, domain.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, codeIndexOutOfRange, detail(err, domain.ErrIndexOutOfRange))
	case errors.Is(err, domain.ErrDuplicateKey):
		writeError(w, http.StatusConflict, codeConflict, detail(err, domain.ErrDuplicateKey))
	case errors.Is(err, domain.ErrPersist):
		// The change is live in memory; only the data file is behind.
		s.log.ErrorContext(r.Context(), "persist failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codePersist, "change applied but could not be saved to disk")
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// decodeBody decodes the JSON request body into v. On failure it writes the
// error response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeError(w, http.StatusBadRequest, codeBadRequest, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, err.Error())
			return false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}

// pathIndex parses the {index} URL parameter. On failure it writes a 400 and
// returns false. Range checking is left to the store.
func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := urlParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "index must be an integer: "+strconv.Quote(raw))
		return 0, false
	}
	return i, true
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, sentinel.Error()+": "); ok {
		return after
	}
	return sentinel.Error()
}

// detail drops the operation prefix but keeps the sentinel text.
// e.g. `service.TripService.Get: trip not found: "Rome"` → `trip not found: "Rome"`
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}
