package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ActivityService implements business logic for activities.
// Activities belong to a trip and are addressed by their index in it.
type ActivityService struct {
	repo repo.TripRepo
}

// NewActivityService constructs an ActivityService backed by the provided
// TripRepo.
func NewActivityService(r repo.TripRepo) *ActivityService {
	return &ActivityService{repo: r}
}

// Add validates act against the named trip and appends it.
func (s *ActivityService) Add(ctx context.Context, tripName string, act domain.Activity) (domain.Activity, error) {
	const op = "service.ActivityService.Add"

	trip, ok := s.repo.Get(ctx, tripName)
	if !ok {
		return domain.Activity{}, fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if err := prepareActivity(&act, trip); err != nil {
		return domain.Activity{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.AddActivity(ctx, trip.Name, act); err != nil {
		return domain.Activity{}, fmt.Errorf("%s: %w", op, err)
	}
	return act, nil
}

// List returns the trip's activities in insertion order.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *ActivityService) List(ctx context.Context, tripName string) ([]domain.Activity, error) {
	if _, ok := s.repo.Get(ctx, tripName); !ok {
		return nil, fmt.Errorf("service.ActivityService.List: %w: %q", domain.ErrTripNotFound, tripName)
	}
	return s.repo.ListActivities(ctx, tripName), nil
}

// Update validates act and replaces the activity at index.
func (s *ActivityService) Update(ctx context.Context, tripName string, index int, act domain.Activity) (domain.Activity, error) {
	const op = "service.ActivityService.Update"

	trip, ok := s.repo.Get(ctx, tripName)
	if !ok {
		return domain.Activity{}, fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if err := prepareActivity(&act, trip); err != nil {
		return domain.Activity{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateActivity(ctx, trip.Name, index, act); err != nil {
		return domain.Activity{}, fmt.Errorf("%s: %w", op, err)
	}
	return act, nil
}

// Delete removes the activity at index. An invalid index is a no-op.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *ActivityService) Delete(ctx context.Context, tripName string, index int) error {
	const op = "service.ActivityService.Delete"
	trip, ok := s.repo.Get(ctx, tripName)
	if !ok {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrTripNotFound, tripName)
	}
	if err := s.repo.RemoveActivity(ctx, trip.Name, index); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func prepareActivity(act *domain.Activity, trip domain.Trip) error {
	act.Description = strings.TrimSpace(act.Description)
	act.Time = strings.TrimSpace(act.Time)
	if act.Description == "" {
		return fmt.Errorf("%w: activity description is required", domain.ErrValidation)
	}
	if act.Date.IsZero() {
		return fmt.Errorf("%w: activity date is required", domain.ErrValidation)
	}
	if !dates.Within(act.Date, trip.Start, trip.End) {
		return fmt.Errorf("%w: activity date must fall within the trip (%s to %s)",
			domain.ErrValidation, dates.Format(trip.Start), dates.Format(trip.End))
	}
	return storable(map[string]string{
		"description": act.Description,
		"time":        act.Time,
		"location":    act.Location,
		"notes":       act.Notes,
	})
}
