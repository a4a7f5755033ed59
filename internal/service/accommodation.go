package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// defaultAccommodationType is used when the caller leaves Type empty.
const defaultAccommodationType = "Hotel"

// AccommodationService implements business logic for accommodations.
// Accommodations belong to a trip and are addressed by their index in it.
type AccommodationService struct {
	repo repo.TripRepo
}

// NewAccommodationService constructs an AccommodationService backed by the
// provided TripRepo.
func NewAccommodationService(r repo.TripRepo) *AccommodationService {
	return &AccommodationService{repo: r}
}

// Add validates acc against the named trip and appends it.
func (s *AccommodationService) Add(ctx context.Context, tripName string, acc domain.Accommodation) (domain.Accommodation, error) {
	const op = "service.AccommodationService.Add"

	trip, ok := s.repo.Get(ctx, tripName)
	if !ok {
		return domain.Accommodation{}, fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if err := prepareAccommodation(&acc, trip); err != nil {
		return domain.Accommodation{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.AddAccommodation(ctx, trip.Name, acc); err != nil {
		return domain.Accommodation{}, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// List returns the trip's accommodations in insertion order.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *AccommodationService) List(ctx context.Context, tripName string) ([]domain.Accommodation, error) {
	if _, ok := s.repo.Get(ctx, tripName); !ok {
		return nil, fmt.Errorf("service.AccommodationService.List: %w: %q", domain.ErrTripNotFound, tripName)
	}
	return s.repo.ListAccommodations(ctx, tripName), nil
}

// Update validates acc and replaces the accommodation at index.
func (s *AccommodationService) Update(ctx context.Context, tripName string, index int, acc domain.Accommodation) (domain.Accommodation, error) {
	const op = "service.AccommodationService.Update"

	trip, ok := s.repo.Get(ctx, tripName)
	if !ok {
		return domain.Accommodation{}, fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if err := prepareAccommodation(&acc, trip); err != nil {
		return domain.Accommodation{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateAccommodation(ctx, trip.Name, index, acc); err != nil {
		return domain.Accommodation{}, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// Delete removes the accommodation at index. An invalid index is a no-op.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *AccommodationService) Delete(ctx context.Context, tripName string, index int) error {
	const op = "service.AccommodationService.Delete"
	trip, ok := s.repo.Get(ctx, tripName)
	if !ok {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if err := s.repo.RemoveAccommodation(ctx, trip.Name, index); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// prepareAccommodation enforces:
//   - Name is required; Type defaults to "Hotel".
//   - Check-in and check-out are required and check-out is not before check-in.
//   - Both dates fall within the trip's start and end dates.
func prepareAccommodation(acc *domain.Accommodation, trip domain.Trip) error {
	acc.Name = strings.TrimSpace(acc.Name)
	acc.Type = strings.TrimSpace(acc.Type)
	if acc.Type == "" {
		acc.Type = defaultAccommodationType
	}
	if acc.Name == "" {
		return fmt.Errorf("%w: accommodation name is required", domain.ErrValidation)
	}
	if acc.CheckIn.IsZero() || acc.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out dates are required", domain.ErrValidation)
	}
	if acc.CheckOut.Before(acc.CheckIn) {
		return fmt.Errorf("%w: check-out date must not be before check-in date", domain.ErrValidation)
	}
	if !dates.Within(acc.CheckIn, trip.Start, trip.End) || !dates.Within(acc.CheckOut, trip.Start, trip.End) {
		return fmt.Errorf("%w: accommodation dates must fall within the trip (%s to %s)",
			domain.ErrValidation, dates.Format(trip.Start), dates.Format(trip.End))
	}
	return storable(map[string]string{
		"type":         acc.Type,
		"name":         acc.Name,
		"address":      acc.Address,
		"confirmation": acc.Confirmation,
	})
}
