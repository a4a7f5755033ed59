package domain

import "time"

// Activity is a scheduled event nested under a trip.
// Time, Location and Notes are optional free text.
type Activity struct {
	Description string
	Date        time.Time
	Time        string
	Location    string
	Notes       string
}
