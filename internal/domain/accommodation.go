package domain

import "time"

// Accommodation is a lodging booking nested under a trip.
type Accommodation struct {
	Type         string // e.g. "Hotel"; see AccommodationTypes
	Name         string
	Address      string
	CheckIn      time.Time
	CheckOut     time.Time
	Confirmation string
}

// AccommodationTypes lists the types offered by the accommodation form.
var AccommodationTypes = []string{"Hotel", "Hostel", "Airbnb", "Resort", "Camping", "Other"}
