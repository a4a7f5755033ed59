package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types for the JSON API. Dates travel as "2006-01-02" strings via
// openapi_types.Date; openapi.yaml documents the same shapes.

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// TripRequest is the body of POST /trips and PUT /trips/{name}.
type TripRequest struct {
	Name        string             `json:"name"`
	Destination string             `json:"destination"`
	TravelStyle string             `json:"travel_style"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
}

// Trip is a trip with its nested items.
type Trip struct {
	Name           string             `json:"name"`
	Destination    string             `json:"destination"`
	TravelStyle    string             `json:"travel_style"`
	StartDate      openapi_types.Date `json:"start_date"`
	EndDate        openapi_types.Date `json:"end_date"`
	DurationDays   int                `json:"duration_days"`
	Created        string             `json:"created,omitempty"`
	Accommodations []Accommodation    `json:"accommodations"`
	Activities     []Activity         `json:"activities"`
}

// AccommodationRequest is the body of accommodation create and update calls.
type AccommodationRequest struct {
	Type         string             `json:"type"`
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	CheckIn      openapi_types.Date `json:"check_in"`
	CheckOut     openapi_types.Date `json:"check_out"`
	Confirmation string             `json:"confirmation"`
}

// Accommodation is a stored accommodation. Index is its position in the trip
// when known.
type Accommodation struct {
	Index        *int               `json:"index,omitempty"`
	Type         string             `json:"type"`
	Name         string             `json:"name"`
	Address      string             `json:"address,omitempty"`
	CheckIn      openapi_types.Date `json:"check_in"`
	CheckOut     openapi_types.Date `json:"check_out"`
	Confirmation string             `json:"confirmation,omitempty"`
}

// ActivityRequest is the body of activity create and update calls.
type ActivityRequest struct {
	Description string             `json:"description"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
	Location    string             `json:"location"`
	Notes       string             `json:"notes"`
}

// Activity is a stored activity. Index is its position in the trip when known.
type Activity struct {
	Index       *int               `json:"index,omitempty"`
	Description string             `json:"description"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time,omitempty"`
	Location    string             `json:"location,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// DateOption is one day of a trip, for date pickers.
type DateOption struct {
	Date    string `json:"date"`
	Display string `json:"display"`
}

// PackingRequest is the body of POST /packing.
type PackingRequest struct {
	Trip     string `json:"trip"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// PackingItem is a checklist item. Index is its position in the full list
// when known.
type PackingItem struct {
	Index    *int   `json:"index,omitempty"`
	Trip     string `json:"trip"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Packed   bool   `json:"packed"`
}

// PackingList is the body of GET /packing.
type PackingList struct {
	Items    []PackingItem `json:"items"`
	Progress int           `json:"progress"`
}

// PackingProgress is the body of GET /packing/progress.
type PackingProgress struct {
	Trip     string `json:"trip,omitempty"`
	Progress int    `json:"progress"`
}

// ExportRow is one row of the flat JSON export.
type ExportRow struct {
	TripName     string              `json:"trip_name"`
	Destination  string              `json:"destination"`
	TravelStyle  string              `json:"travel_style"`
	TripStart    openapi_types.Date  `json:"trip_start"`
	TripEnd      openapi_types.Date  `json:"trip_end"`
	DurationDays int                 `json:"duration_days"`
	Kind         string              `json:"kind,omitempty"`
	Title        string              `json:"title,omitempty"`
	Date         *openapi_types.Date `json:"date,omitempty"`
	EndDate      *openapi_types.Date `json:"end_date,omitempty"`
	Time         string              `json:"time,omitempty"`
	Location     string              `json:"location,omitempty"`
	Details      string              `json:"details,omitempty"`
}
