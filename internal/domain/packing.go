package domain

// PackingItem is one checklist entry. Items are scoped to a trip by name only;
// they are not owned by the Trip aggregate and survive its removal.
// Duplicates are allowed.
type PackingItem struct {
	Trip     string
	Category string
	Name     string
	Packed   bool
}

// PackingEntry pairs an item with its ordinal index in the full packing list,
// so a trip-filtered view can still address items for toggle and delete.
type PackingEntry struct {
	Index int
	Item  PackingItem
}
