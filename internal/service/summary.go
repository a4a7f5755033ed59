package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// SummaryService renders the plain-text itinerary of a trip.
type SummaryService struct {
	trips   repo.TripRepo
	packing repo.PackingRepo
}

// NewSummaryService constructs a SummaryService backed by the provided repos.
func NewSummaryService(trips repo.TripRepo, packing repo.PackingRepo) *SummaryService {
	return &SummaryService{trips: trips, packing: packing}
}

// Summary returns the itinerary text for the named trip.
// Returns domain.ErrTripNotFound if it does not exist.
func (s *SummaryService) Summary(ctx context.Context, name string) (string, error) {
	t, ok := s.trips.Get(ctx, name)
	if !ok {
		return "", fmt.Errorf("service.SummaryService.Summary: %w: %q", domain.ErrTripNotFound, name)
	}

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\nTRIP SUMMARY: %s\n%s\n\n", rule, t.Name, rule)
	fmt.Fprintf(&b, "Destination: %s\n", t.Destination)
	fmt.Fprintf(&b, "Travel Style: %s\n", t.TravelStyle)
	fmt.Fprintf(&b, "Dates: %s to %s (%d days)\n", dates.Format(t.Start), dates.Format(t.End), t.Duration)
	fmt.Fprintf(&b, "Created: %s\n\n", formatCreated(t))

	if len(t.Accommodations) > 0 {
		section(&b, "ACCOMMODATIONS")
		for i, a := range t.Accommodations {
			fmt.Fprintf(&b, "\n%d. %s: %s\n", i+1, a.Type, a.Name)
			if a.Address != "" {
				fmt.Fprintf(&b, "   Address: %s\n", a.Address)
			}
			fmt.Fprintf(&b, "   Dates: %s to %s\n", dates.Format(a.CheckIn), dates.Format(a.CheckOut))
			if a.Confirmation != "" {
				fmt.Fprintf(&b, "   Confirmation: %s\n", a.Confirmation)
			}
		}
		b.WriteString("\n")
	}

	if len(t.Activities) > 0 {
		section(&b, "ACTIVITIES")
		byDate := map[string][]domain.Activity{}
		for _, a := range t.Activities {
			d := dates.Format(a.Date)
			byDate[d] = append(byDate[d], a)
		}
		days := make([]string, 0, len(byDate))
		for d := range byDate {
			days = append(days, d)
		}
		slices.Sort(days)
		for _, d := range days {
			fmt.Fprintf(&b, "\n%s:\n", d)
			for _, a := range byDate[d] {
				line := "  • " + a.Description
				if a.Time != "" {
					line += " at " + a.Time
				}
				if a.Location != "" {
					line += " (" + a.Location + ")"
				}
				b.WriteString(line + "\n")
			}
		}
		b.WriteString("\n")
	}

	entries := s.packing.ListForTrip(ctx, t.Name)
	if len(entries) > 0 {
		items := make([]domain.PackingItem, len(entries))
		packed := 0
		for i, e := range entries {
			items[i] = e.Item
			if e.Item.Packed {
				packed++
			}
		}
		section(&b, "PACKING")
		fmt.Fprintf(&b, "Packing Progress: %d%% (%d of %d items packed)\n", repo.PackedPercent(items), packed, len(items))
	}

	return b.String(), nil
}

func section(b *strings.Builder, title string) {
	rule := strings.Repeat("-", 40)
	fmt.Fprintf(b, "%s\n%s:\n%s\n", rule, title, rule)
}

func formatCreated(t domain.Trip) string {
	if t.Created.IsZero() {
		return ""
	}
	return t.Created.Format(dates.Timestamp)
}
