// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No file handling lives here: services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// CollisionPolicy decides what Create does when a trip with the same name
// (case-insensitive) already exists.
type CollisionPolicy string

const (
	// PolicyReject fails with domain.ErrDuplicateKey.
	PolicyReject CollisionPolicy = "reject"
	// PolicyOverwrite replaces the existing trip, dropping its nested items.
	PolicyOverwrite CollisionPolicy = "overwrite"
	// PolicyRename stores the new trip under its name plus a timestamp suffix.
	PolicyRename CollisionPolicy = "rename"
)

// ParseCollisionPolicy validates s. The empty string yields "".
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyReject, PolicyOverwrite, PolicyRename:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown collision policy %q", domain.ErrValidation, s)
	}
}

// renameLayout is appended to a colliding trip name under PolicyRename.
const renameLayout = "2006-01-02 15:04:05"

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	policy CollisionPolicy
	now    func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// policy is the default for Create calls that do not name one; now is the
// clock used for created timestamps and rename suffixes (nil means time.Now).
func NewTripService(r repo.TripRepo, policy CollisionPolicy, now func() time.Time) *TripService {
	if policy == "" {
		policy = PolicyReject
	}
	if now == nil {
		now = time.Now
	}
	return &TripService{repo: r, policy: policy, now: now}
}

// Create validates a new trip, computes its duration, stamps its created time
// and stores it according to policy ("" uses the service default).
// The trip starts with no accommodations or activities.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, policy CollisionPolicy) (domain.Trip, error) {
	const op = "service.TripService.Create"
	if policy == "" {
		policy = s.policy
	}

	trip.Name = strings.TrimSpace(trip.Name)
	if err := prepareTrip(&trip); err != nil {
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	trip.Created = dates.Stamp(now)
	trip.Accommodations = nil
	trip.Activities = nil

	existing, found := s.repo.Get(ctx, trip.Name)
	var err error
	switch {
	case !found:
		err = s.repo.Add(ctx, trip, false)
	case policy == PolicyOverwrite:
		if existing.Name != trip.Name {
			// Add only overwrites exact-name matches.
			if err = s.repo.Remove(ctx, existing.Name); err != nil {
				break
			}
		}
		err = s.repo.Add(ctx, trip, true)
	case policy == PolicyRename:
		trip.Name = fmt.Sprintf("%s (%s)", trip.Name, now.Format(renameLayout))
		err = s.repo.Add(ctx, trip, false)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrDuplicateKey, trip.Name)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}
	return trip, nil
}

// Get returns a single trip by name (case-insensitive).
// Returns domain.ErrTripNotFound if it does not exist.
func (s *TripService) Get(ctx context.Context, name string) (domain.Trip, error) {
	t, ok := s.repo.Get(ctx, name)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w: %q", domain.ErrTripNotFound, name)
	}
	return t, nil
}

// List returns all trips in store order.
func (s *TripService) List(ctx context.Context) []domain.Trip {
	return s.repo.List(ctx)
}

// Names returns all trip names in store order.
func (s *TripService) Names(ctx context.Context) []string {
	return s.repo.Names(ctx)
}

// Update replaces the details of the trip named oldName. The duration is
// recomputed; the created timestamp and the nested accommodations and
// activities are carried over from the stored trip. Renaming onto the name
// of another existing trip fails with domain.ErrDuplicateKey.
func (s *TripService) Update(ctx context.Context, oldName string, trip domain.Trip) (domain.Trip, error) {
	const op = "service.TripService.Update"

	trip.Name = strings.TrimSpace(trip.Name)
	if err := prepareTrip(&trip); err != nil {
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}

	existing, ok := s.repo.Get(ctx, oldName)
	if !ok {
		return domain.Trip{}, fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, oldName)
	}
	if !existing.SameName(trip.Name) {
		if _, taken := s.repo.Get(ctx, trip.Name); taken {
			return domain.Trip{}, fmt.Errorf("%s: %w: %q", op, domain.ErrDuplicateKey, trip.Name)
		}
	}
	trip.Created = existing.Created
	trip.Accommodations = existing.Accommodations
	trip.Activities = existing.Activities

	ok, err := s.repo.Update(ctx, existing.Name, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.Trip{}, fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, oldName)
	}
	return trip, nil
}

// Delete removes a trip by name.
// Returns domain.ErrTripNotFound if it does not exist.
func (s *TripService) Delete(ctx context.Context, name string) error {
	const op = "service.TripService.Delete"
	if _, ok := s.repo.Get(ctx, name); !ok {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, name)
	}
	if err := s.repo.Remove(ctx, name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Dates returns the trip's days as date picker entries.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *TripService) Dates(ctx context.Context, name string) ([]dates.Option, error) {
	t, ok := s.repo.Get(ctx, name)
	if !ok {
		return nil, fmt.Errorf("service.TripService.Dates: %w: %q", domain.ErrTripNotFound, name)
	}
	return dates.Options(dates.Format(t.Start), dates.Format(t.End)), nil
}

// prepareTrip enforces business rules common to both Create and Update and
// fills in the derived duration.
//   - Name and destination must be non-empty.
//   - Start and end dates are required, and end must not be before start.
//   - No stored field may contain the '|' field separator.
func prepareTrip(t *domain.Trip) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(t.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if err := storable(map[string]string{
		"name":         t.Name,
		"destination":  t.Destination,
		"travel_style": t.TravelStyle,
	}); err != nil {
		return err
	}
	d, err := dates.Duration(t.Start, t.End)
	if err != nil {
		return err
	}
	t.Duration = d
	return nil
}

// storable rejects values that would break the line-oriented data files:
// the '|' field separator and line breaks.
func storable(fields map[string]string) error {
	for name, v := range fields {
		if strings.ContainsAny(v, "|\r\n") {
			return fmt.Errorf("%w: %s must not contain '|' or line breaks", domain.ErrValidation, name)
		}
	}
	return nil
}
