// Package repo contains the persistence layer for the trip planner.
// Each store keeps its collection in memory and rewrites its whole data file
// after every mutation. No business logic lives here, only collection
// bookkeeping and file encoding.
//
// Nested accommodations, activities and packing items are addressed by
// ordinal index. An index is valid only until the next mutation of the list it
// points into; callers must re-read the list after any change.
package repo

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripRepo defines the persistence operations for Trips and their nested
// accommodations and activities. Trip names match case-insensitively.
// The service layer depends on this interface, not the file implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// List returns a snapshot of all trips in insertion order.
	List(ctx context.Context) []domain.Trip

	// Get returns the trip whose name matches name case-insensitively.
	Get(ctx context.Context, name string) (domain.Trip, bool)

	// Add appends trip. If a trip with the same name exists and overwrite is
	// false it returns domain.ErrDuplicateKey and leaves the store unchanged.
	// With overwrite, trips with exactly the same name are removed first.
	Add(ctx context.Context, trip domain.Trip, overwrite bool) error

	// Update replaces the trip named oldName. When the new name differs from
	// oldName the trip moves to the end of the list; otherwise it keeps its
	// position. Reports false when oldName does not exist.
	Update(ctx context.Context, oldName string, trip domain.Trip) (bool, error)

	// Remove deletes the named trip. Missing trips are ignored.
	Remove(ctx context.Context, name string) error

	// Names returns trip names in store order.
	Names(ctx context.Context) []string

	// AddAccommodation appends to the trip's accommodations.
	// Returns domain.ErrTripNotFound if the trip does not exist.
	AddAccommodation(ctx context.Context, tripName string, acc domain.Accommodation) error

	// UpdateAccommodation replaces the accommodation at index. Returns
	// domain.ErrTripNotFound or domain.ErrIndexOutOfRange.
	UpdateAccommodation(ctx context.Context, tripName string, index int, acc domain.Accommodation) error

	// ListAccommodations returns a snapshot, empty when the trip does not exist.
	ListAccommodations(ctx context.Context, tripName string) []domain.Accommodation

	// RemoveAccommodation deletes the accommodation at index. A missing trip
	// or invalid index is a no-op.
	RemoveAccommodation(ctx context.Context, tripName string, index int) error

	// AddActivity appends to the trip's activities.
	// Returns domain.ErrTripNotFound if the trip does not exist.
	AddActivity(ctx context.Context, tripName string, act domain.Activity) error

	// UpdateActivity replaces the activity at index. Returns
	// domain.ErrTripNotFound or domain.ErrIndexOutOfRange.
	UpdateActivity(ctx context.Context, tripName string, index int, act domain.Activity) error

	// ListActivities returns a snapshot, empty when the trip does not exist.
	ListActivities(ctx context.Context, tripName string) []domain.Activity

	// RemoveActivity deletes the activity at index. A missing trip or invalid
	// index is a no-op.
	RemoveActivity(ctx context.Context, tripName string, index int) error
}

// fileTripRepo is the flat-file implementation of TripRepo.
// Every mutating method that returns an error wrapping domain.ErrPersist has
// still applied its change in memory.
type fileTripRepo struct {
	mu    sync.Mutex
	file  DataFile
	trips []domain.Trip
}

// NewTripRepo constructs a TripRepo backed by f and loads any existing data.
// Load failures are logged and leave the store empty; they never prevent the
// store from being created.
func NewTripRepo(ctx context.Context, f DataFile) TripRepo {
	r := &fileTripRepo{file: f}
	r.load(ctx)
	return r
}

func (r *fileTripRepo) load(ctx context.Context) {
	log := r.file.logger()

	b, err := r.file.read()
	if err != nil {
		log.ErrorContext(ctx, "trips load failed, starting empty", "path", r.file.Path, "error", err)
		return
	}
	if b == nil {
		log.InfoContext(ctx, "no trips file found", "path", r.file.Path)
		return
	}

	trips, err := decodeTrips(b)
	if err != nil {
		log.ErrorContext(ctx, "trips load failed, starting empty", "path", r.file.Path, "error", err)
		return
	}
	r.trips = trips
	log.InfoContext(ctx, "trips loaded", "path", r.file.Path, "count", len(trips))
}

// save rewrites the data file from the in-memory trips. Callers hold r.mu.
func (r *fileTripRepo) save(ctx context.Context, op string) error {
	var buf bytes.Buffer
	if err := encodeTrips(&buf, r.trips); err != nil {
		return persistErr(op, err)
	}
	if err := r.file.write(ctx, buf.Bytes()); err != nil {
		r.file.logger().ErrorContext(ctx, "trips save failed", "path", r.file.Path, "error", err)
		return persistErr(op, err)
	}
	r.file.logger().DebugContext(ctx, "trips saved", "path", r.file.Path, "count", len(r.trips))
	return nil
}

// indexOf returns the position of the first trip matching name
// case-insensitively, or -1.
func (r *fileTripRepo) indexOf(name string) int {
	return slices.IndexFunc(r.trips, func(t domain.Trip) bool { return t.SameName(name) })
}

func (r *fileTripRepo) List(_ context.Context) []domain.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Trip, len(r.trips))
	for i, t := range r.trips {
		out[i] = t.Clone()
	}
	return out
}

func (r *fileTripRepo) Get(_ context.Context, name string) (domain.Trip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return domain.Trip{}, false
	}
	return r.trips[i].Clone(), true
}

func (r *fileTripRepo) Add(ctx context.Context, trip domain.Trip, overwrite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if overwrite {
		r.trips = slices.DeleteFunc(r.trips, func(t domain.Trip) bool { return t.Name == trip.Name })
	} else if r.indexOf(trip.Name) >= 0 {
		return fmt.Errorf("repo.TripRepo.Add: %w: %q", domain.ErrDuplicateKey, trip.Name)
	}

	r.trips = append(r.trips, trip.Clone())
	return r.save(ctx, "repo.TripRepo.Add")
}

func (r *fileTripRepo) Update(ctx context.Context, oldName string, trip domain.Trip) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(oldName)
	if i < 0 {
		return false, nil
	}

	if strings.EqualFold(oldName, trip.Name) {
		r.trips[i] = trip.Clone()
	} else {
		r.trips = slices.Delete(r.trips, i, i+1)
		r.trips = append(r.trips, trip.Clone())
	}
	return true, r.save(ctx, "repo.TripRepo.Update")
}

func (r *fileTripRepo) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return nil
	}
	r.trips = slices.Delete(r.trips, i, i+1)
	return r.save(ctx, "repo.TripRepo.Remove")
}

func (r *fileTripRepo) Names(_ context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.trips))
	for i, t := range r.trips {
		names[i] = t.Name
	}
	return names
}

// ---- accommodations --------------------------------------------------------

func (r *fileTripRepo) AddAccommodation(ctx context.Context, tripName string, acc domain.Accommodation) error {
	const op = "repo.TripRepo.AddAccommodation"
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	r.trips[i].Accommodations = append(r.trips[i].Accommodations, acc)
	return r.save(ctx, op)
}

func (r *fileTripRepo) UpdateAccommodation(ctx context.Context, tripName string, index int, acc domain.Accommodation) error {
	const op = "repo.TripRepo.UpdateAccommodation"
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if !inRange(index, len(r.trips[i].Accommodations)) {
		return fmt.Errorf("%s: %w: %d", op, domain.ErrIndexOutOfRange, index)
	}
	r.trips[i].Accommodations[index] = acc
	return r.save(ctx, op)
}

func (r *fileTripRepo) ListAccommodations(_ context.Context, tripName string) []domain.Accommodation {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 {
		return []domain.Accommodation{}
	}
	return append([]domain.Accommodation{}, r.trips[i].Accommodations...)
}

func (r *fileTripRepo) RemoveAccommodation(ctx context.Context, tripName string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 || !inRange(index, len(r.trips[i].Accommodations)) {
		return nil
	}
	r.trips[i].Accommodations = slices.Delete(r.trips[i].Accommodations, index, index+1)
	return r.save(ctx, "repo.TripRepo.RemoveAccommodation")
}

// ---- activities ------------------------------------------------------------

func (r *fileTripRepo) AddActivity(ctx context.Context, tripName string, act domain.Activity) error {
	const op = "repo.TripRepo.AddActivity"
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	r.trips[i].Activities = append(r.trips[i].Activities, act)
	return r.save(ctx, op)
}

func (r *fileTripRepo) UpdateActivity(ctx context.Context, tripName string, index int, act domain.Activity) error {
	const op = "repo.TripRepo.UpdateActivity"
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if !inRange(index, len(r.trips[i].Activities)) {
		return fmt.Errorf("%s: %w: %d", op, domain.ErrIndexOutOfRange, index)
	}
	r.trips[i].Activities[index] = act
	return r.save(ctx, op)
}

func (r *fileTripRepo) ListActivities(_ context.Context, tripName string) []domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 {
		return []domain.Activity{}
	}
	return append([]domain.Activity{}, r.trips[i].Activities...)
}

func (r *fileTripRepo) RemoveActivity(ctx context.Context, tripName string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tripName)
	if i < 0 || !inRange(index, len(r.trips[i].Activities)) {
		return nil
	}
	r.trips[i].Activities = slices.Delete(r.trips[i].Activities, index, index+1)
	return r.save(ctx, "repo.TripRepo.RemoveActivity")
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
