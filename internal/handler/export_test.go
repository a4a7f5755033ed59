package handler_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// mockExporter is a test double for handler.Exporter.
type mockExporter struct {
	export func(ctx context.Context) []domain.ExportRow
}

func (m *mockExporter) Export(ctx context.Context) []domain.ExportRow { return m.export(ctx) }

// compile-time check: mockExporter must satisfy handler.Exporter.
var _ handler.Exporter = (*mockExporter)(nil)

// ---- helpers ---------------------------------------------------------------

func exportRows() []domain.ExportRow {
	base := domain.ExportRow{
		TripName: "Rome", Destination: "Italy", TravelStyle: "Leisure",
		TripStart: "2024-06-01", TripEnd: "2024-06-03", Duration: 3,
	}
	acc := base
	acc.Kind, acc.Title = domain.KindAccommodation, "Hotel: Hotel Roma"
	acc.Date, acc.EndDate, acc.Location = "2024-06-01", "2024-06-03", "Via Roma 1, Rome"
	act := base
	act.Kind, act.Title, act.Date, act.Time = domain.KindActivity, "Colosseum", "2024-06-02", "10:00"
	empty := domain.ExportRow{TripName: "Paris", Destination: "France", TripStart: "2024-07-01", TripEnd: "2024-07-01", Duration: 1}
	return []domain.ExportRow{acc, act, empty}
}

func exportHandler(rows []domain.ExportRow) http.Handler {
	return newHTTPHandler(handler.Services{
		Export: &mockExporter{export: func(context.Context) []domain.ExportRow { return rows }},
	})
}

// ---- Tests -----------------------------------------------------------------

func TestGetExport_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	exportHandler(exportRows()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[
		{"trip_name":"Rome","destination":"Italy","travel_style":"Leisure","trip_start":"2024-06-01","trip_end":"2024-06-03","duration_days":3,
		 "kind":"accommodation","title":"Hotel: Hotel Roma","date":"2024-06-01","end_date":"2024-06-03","location":"Via Roma 1, Rome"},
		{"trip_name":"Rome","destination":"Italy","travel_style":"Leisure","trip_start":"2024-06-01","trip_end":"2024-06-03","duration_days":3,
		 "kind":"activity","title":"Colosseum","date":"2024-06-02","time":"10:00"},
		{"trip_name":"Paris","destination":"France","travel_style":"","trip_start":"2024-07-01","trip_end":"2024-07-01","duration_days":1}
	]`, rec.Body.String())
}

func TestGetExport_JSON_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	exportHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))

	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetExport_CSV(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)
	rec := httptest.NewRecorder()
	exportHandler(exportRows()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="trips_export.csv"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three rows")
	assert.Equal(t, "trip_name", records[0][0])
	assert.Equal(t, "Via Roma 1, Rome", records[1][11], "commas survive quoting")
	assert.Equal(t, "3", records[2][5])
	assert.Equal(t, "", records[3][6], "trip without items has no kind")
}

func TestGetExport_400_UnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	exportHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export?format=xml", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
