package service

import (
	"context"
	"strings"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ExportService assembles a full flat export of all trips, accommodations,
// and activities.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per accommodation and activity across all
// trips, accommodations first. Trips with nothing nested contribute one row
// with empty item fields. The result is never nil.
func (s *ExportService) Export(ctx context.Context) []domain.ExportRow {
	rows := []domain.ExportRow{}
	for _, t := range s.trips.List(ctx) {
		base := domain.ExportRow{
			TripName:    t.Name,
			Destination: t.Destination,
			TravelStyle: t.TravelStyle,
			TripStart:   dates.Format(t.Start),
			TripEnd:     dates.Format(t.End),
			Duration:    t.Duration,
		}
		if len(t.Accommodations) == 0 && len(t.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range t.Accommodations {
			row := base
			row.Kind = domain.KindAccommodation
			row.Title = a.Type + ": " + a.Name
			row.Date = dates.Format(a.CheckIn)
			row.EndDate = dates.Format(a.CheckOut)
			row.Location = a.Address
			if a.Confirmation != "" {
				row.Details = "Confirmation: " + a.Confirmation
			}
			rows = append(rows, row)
		}
		for _, a := range t.Activities {
			row := base
			row.Kind = domain.KindActivity
			row.Title = a.Description
			row.Date = dates.Format(a.Date)
			row.Time = a.Time
			row.Location = a.Location
			row.Details = strings.TrimSpace(a.Notes)
			rows = append(rows, row)
		}
	}
	return rows
}
