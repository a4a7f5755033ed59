package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
)

// exportFilename is suggested to browsers for CSV downloads.
const exportFilename = "trips_export.csv"

// GetExport implements GET /export.
// Use ?format=csv to receive CSV; default is JSON. Any other format is a 400.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "format must be json or csv")
		return
	}

	rows := s.export.Export(r.Context())
	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the wire type.
// Empty item dates become nil pointers (omitempty in JSON).
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		row := ExportRow{
			TripName:     r.TripName,
			Destination:  r.Destination,
			TravelStyle:  r.TravelStyle,
			TripStart:    parseDate(r.TripStart),
			TripEnd:      parseDate(r.TripEnd),
			DurationDays: r.Duration,
			Kind:         r.Kind,
			Title:        r.Title,
			Time:         r.Time,
			Location:     r.Location,
			Details:      r.Details,
		}
		if r.Date != "" {
			d := parseDate(r.Date)
			row.Date = &d
		}
		if r.EndDate != "" {
			d := parseDate(r.EndDate)
			row.EndDate = &d
		}
		out = append(out, row)
	}
	return out
}

// writeCSV encodes domain rows as CSV with a download file name.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(domain.ExportHeader)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(r.Record())
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// parseDate converts a service-formatted date into an openapi_types.Date.
// An empty or malformed value yields the zero date.
func parseDate(s string) openapi_types.Date {
	t, err := dates.Parse(s)
	if err != nil {
		return openapi_types.Date{}
	}
	return openapi_types.Date{Time: t}
}
