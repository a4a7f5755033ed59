package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/middleware"
)

const uiOrigin = "http://localhost:5173"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func corsRequest(method, target, origin string, preflight string) *httptest.ResponseRecorder {
	h := middleware.NewCORSHandler([]string{uiOrigin})(okHandler)
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Origin", origin)
	if preflight != "" {
		req.Header.Set("Access-Control-Request-Method", preflight)
		// rs/cors compares request headers in lowercase, as browsers send them.
		req.Header.Set("Access-Control-Request-Headers", "content-type")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORSHandler_AllowOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"ui origin", uiOrigin, uiOrigin},
		{"other port", "http://localhost:3000", ""},
		{"foreign host", "https://trips.example.net", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := corsRequest(http.MethodGet, "/trips", tc.origin, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

// Browsers preflight every JSON write; each method the API routes must pass.
func TestCORSHandler_Preflight(t *testing.T) {
	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/trips"},
		{http.MethodPut, "/trips/Rome/accommodations/0"},
		{http.MethodDelete, "/packing/3"},
	}
	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			rec := corsRequest(http.MethodOptions, tc.target, uiOrigin, tc.method)

			assert.Less(t, rec.Code, 300, "preflight status")
			assert.Equal(t, uiOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), tc.method)
		})
	}
}

func TestCORSHandler_ExposesContentDisposition(t *testing.T) {
	rec := corsRequest(http.MethodGet, "/export?format=csv", uiOrigin, "")

	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}
