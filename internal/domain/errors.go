package domain

import "errors"

// ErrTripNotFound is returned when an operation names a trip that does not
// exist. Handlers should map this to HTTP 404.
var ErrTripNotFound = errors.New("trip not found")

// ErrDuplicateKey is returned when adding or renaming a trip would collide
// with an existing trip name. Handlers should map this to HTTP 409.
var ErrDuplicateKey = errors.New("trip already exists")

// ErrIndexOutOfRange is returned by index-based operations when the ordinal
// position does not exist, usually because the caller holds a stale index.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrPersist is returned when a mutation was applied in memory but the data
// file could not be rewritten. The in-memory state is ahead of disk until the
// next successful save.
var ErrPersist = errors.New("persist failed")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
