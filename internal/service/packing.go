package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// PackingService implements business logic for the packing checklist.
type PackingService struct {
	repo repo.PackingRepo
}

// NewPackingService constructs a PackingService backed by the provided
// PackingRepo.
func NewPackingService(r repo.PackingRepo) *PackingService {
	return &PackingService{repo: r}
}

// Add appends an unpacked item. Trip, category and name are required and may
// not span lines; commas are fine, the store quotes them.
func (s *PackingService) Add(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error) {
	const op = "service.PackingService.Add"

	item.Trip = strings.TrimSpace(item.Trip)
	item.Category = strings.TrimSpace(item.Category)
	item.Name = strings.TrimSpace(item.Name)
	item.Packed = false
	for field, v := range map[string]string{"trip": item.Trip, "category": item.Category, "name": item.Name} {
		if v == "" {
			return domain.PackingItem{}, fmt.Errorf("%s: %w: %s is required", op, domain.ErrValidation, field)
		}
		if strings.ContainsAny(v, "\r\n") {
			return domain.PackingItem{}, fmt.Errorf("%s: %w: %s must not contain line breaks", op, domain.ErrValidation, field)
		}
	}

	if err := s.repo.Add(ctx, item.Trip, item.Category, item.Name); err != nil {
		return domain.PackingItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Toggle flips the packed flag of the item at index in the full list.
func (s *PackingService) Toggle(ctx context.Context, index int) error {
	if err := s.repo.Toggle(ctx, index); err != nil {
		return fmt.Errorf("service.PackingService.Toggle: %w", err)
	}
	return nil
}

// Delete removes the item at index in the full list.
func (s *PackingService) Delete(ctx context.Context, index int) error {
	if err := s.repo.Delete(ctx, index); err != nil {
		return fmt.Errorf("service.PackingService.Delete: %w", err)
	}
	return nil
}

// List returns every item, each with its index in the full list.
func (s *PackingService) List(ctx context.Context) []domain.PackingEntry {
	items := s.repo.List(ctx)
	out := make([]domain.PackingEntry, len(items))
	for i, it := range items {
		out[i] = domain.PackingEntry{Index: i, Item: it}
	}
	return out
}

// ListForTrip returns the items of one trip (case-insensitive).
func (s *PackingService) ListForTrip(ctx context.Context, trip string) []domain.PackingEntry {
	return s.repo.ListForTrip(ctx, trip)
}

// Progress returns the packed percentage across all items.
func (s *PackingService) Progress(ctx context.Context) int {
	return s.repo.Progress(ctx)
}

// ProgressForTrip returns the packed percentage of one trip's items.
// A trip with no items reports 0.
func (s *PackingService) ProgressForTrip(ctx context.Context, trip string) int {
	entries := s.repo.ListForTrip(ctx, trip)
	items := make([]domain.PackingItem, len(entries))
	for i, e := range entries {
		items[i] = e.Item
	}
	return repo.PackedPercent(items)
}
