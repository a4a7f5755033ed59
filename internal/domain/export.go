package domain

import "strconv"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per accommodation or activity, with
// trip fields repeated on every row. Trips with nothing scheduled yield one row
// with an empty Kind and zero values for all item fields.
//
// Dates are "2006-01-02" formatted strings so CSV and JSON writers can use
// them directly.
type ExportRow struct {
	// Trip fields, repeated for every item on the trip.
	TripName    string
	Destination string
	TravelStyle string
	TripStart   string
	TripEnd     string
	Duration    int

	// Kind is "accommodation", "activity", or "" for an empty trip.
	Kind string

	// Item fields. For accommodations Title is "<type>: <name>", Date is the
	// check-in and EndDate the check-out. For activities Title is the
	// description and Time is the optional time of day.
	Title    string
	Date     string
	EndDate  string
	Time     string
	Location string
	Details  string
}

// Export row kinds.
const (
	KindAccommodation = "accommodation"
	KindActivity      = "activity"
)

// ExportHeader names the columns of Record, in order.
var ExportHeader = []string{
	"trip_name", "destination", "travel_style", "trip_start", "trip_end", "duration_days",
	"kind", "title", "date", "end_date", "time", "location", "details",
}

// Record flattens r into CSV fields matching ExportHeader.
func (r ExportRow) Record() []string {
	return []string{
		r.TripName, r.Destination, r.TravelStyle, r.TripStart, r.TripEnd,
		strconv.Itoa(r.Duration),
		r.Kind, r.Title, r.Date, r.EndDate, r.Time, r.Location, r.Details,
	}
}
