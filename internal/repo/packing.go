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

// PackingRepo defines the persistence operations for the packing checklist.
// Items are addressed by ordinal index in the full list.
type PackingRepo interface {
	// Add appends an unpacked item.
	Add(ctx context.Context, trip, category, name string) error

	// Toggle flips the packed flag of the item at index.
	// Returns domain.ErrIndexOutOfRange if index is invalid.
	Toggle(ctx context.Context, index int) error

	// Delete removes the item at index.
	// Returns domain.ErrIndexOutOfRange if index is invalid.
	Delete(ctx context.Context, index int) error

	// List returns a snapshot of all items.
	List(ctx context.Context) []domain.PackingItem

	// ListForTrip returns the items of one trip (case-insensitive), each with
	// its index in the full list.
	ListForTrip(ctx context.Context, trip string) []domain.PackingEntry

	// Progress returns the percentage of packed items, truncated toward zero.
	// An empty list reports 0.
	Progress(ctx context.Context) int
}

// filePackingRepo is the flat-file implementation of PackingRepo.
type filePackingRepo struct {
	mu    sync.Mutex
	file  DataFile
	items []domain.PackingItem
}

// NewPackingRepo constructs a PackingRepo backed by f and loads any existing
// items. A missing file yields an empty list.
func NewPackingRepo(ctx context.Context, f DataFile) PackingRepo {
	r := &filePackingRepo{file: f}
	r.load(ctx)
	return r
}

func (r *filePackingRepo) load(ctx context.Context) {
	log := r.file.logger()

	b, err := r.file.read()
	if err != nil {
		log.ErrorContext(ctx, "packing load failed, starting empty", "path", r.file.Path, "error", err)
		return
	}
	if b == nil {
		return
	}

	items, skipped, err := decodePacking(b)
	if err != nil {
		log.ErrorContext(ctx, "packing load failed, starting empty", "path", r.file.Path, "error", err)
		return
	}
	for _, s := range skipped {
		log.WarnContext(ctx, "skipped malformed packing line", "path", r.file.Path, "line", s.Line, "reason", s.Reason)
	}
	r.items = items
	log.InfoContext(ctx, "packing items loaded", "path", r.file.Path, "count", len(items))
}

// save rewrites the data file. Callers hold r.mu.
func (r *filePackingRepo) save(ctx context.Context, op string) error {
	var buf bytes.Buffer
	if err := encodePacking(&buf, r.items); err != nil {
		return persistErr(op, err)
	}
	if err := r.file.write(ctx, buf.Bytes()); err != nil {
		r.file.logger().ErrorContext(ctx, "packing save failed", "path", r.file.Path, "error", err)
		return persistErr(op, err)
	}
	return nil
}

func (r *filePackingRepo) Add(ctx context.Context, trip, category, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, domain.PackingItem{Trip: trip, Category: category, Name: name})
	return r.save(ctx, "repo.PackingRepo.Add")
}

func (r *filePackingRepo) Toggle(ctx context.Context, index int) error {
	const op = "repo.PackingRepo.Toggle"
	r.mu.Lock()
	defer r.mu.Unlock()

	if !inRange(index, len(r.items)) {
		return fmt.Errorf("%s: %w: %d", op, domain.ErrIndexOutOfRange, index)
	}
	r.items[index].Packed = !r.items[index].Packed
	return r.save(ctx, op)
}

func (r *filePackingRepo) Delete(ctx context.Context, index int) error {
	const op = "repo.PackingRepo.Delete"
	r.mu.Lock()
	defer r.mu.Unlock()

	if !inRange(index, len(r.items)) {
		return fmt.Errorf("%s: %w: %d", op, domain.ErrIndexOutOfRange, index)
	}
	r.items = slices.Delete(r.items, index, index+1)
	return r.save(ctx, op)
}

func (r *filePackingRepo) List(_ context.Context) []domain.PackingItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.PackingItem{}, r.items...)
}

func (r *filePackingRepo) ListForTrip(_ context.Context, trip string) []domain.PackingEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.PackingEntry{}
	for i, it := range r.items {
		if strings.EqualFold(it.Trip, trip) {
			out = append(out, domain.PackingEntry{Index: i, Item: it})
		}
	}
	return out
}

func (r *filePackingRepo) Progress(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return PackedPercent(r.items)
}

// PackedPercent returns the share of packed items as a whole percentage,
// truncated toward zero, or 0 for no items.
func PackedPercent(items []domain.PackingItem) int {
	if len(items) == 0 {
		return 0
	}
	packed := 0
	for _, it := range items {
		if it.Packed {
			packed++
		}
	}
	return packed * 100 / len(items)
}
