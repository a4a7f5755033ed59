// Package domain contains the core data types for the trip planner.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// Trip is the top-level planning unit. A trip owns its accommodations and
// activities; they have no identity outside the trip and are addressed by
// their position in the owning slice.
//
// Name is the key. Two trips whose names differ only by case are the same trip.
type Trip struct {
	Name        string
	Destination string
	TravelStyle string
	Start       time.Time
	End         time.Time
	Duration    int       // days, inclusive of Start and End
	Created     time.Time // minute precision

	Accommodations []Accommodation
	Activities     []Activity
}

// SameName reports whether name refers to this trip (case-insensitive).
func (t Trip) SameName(name string) bool {
	return strings.EqualFold(t.Name, name)
}

// Clone returns a copy of t that shares no slices with the original.
// Stores hand out clones so callers cannot mutate stored state.
func (t Trip) Clone() Trip {
	c := t
	c.Accommodations = append([]Accommodation(nil), t.Accommodations...)
	c.Activities = append([]Activity(nil), t.Activities...)
	return c
}

// TravelStyles lists the styles offered by the trip form.
// Stored values are not restricted to this list.
var TravelStyles = []string{"Leisure", "Business", "Adventure", "Family", "Romantic"}
