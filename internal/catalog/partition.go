// Package catalog holds the pure functions that order and narrow the product
// collection for display.
package catalog

import "github.com/thunderx/thunder/internal/domain"

// Partition is the display split of the item collection. Priority items are
// rendered in their own section ahead of the remainder.
type Partition struct {
	Priority  []domain.Item
	Remainder []domain.Item
}

// Len returns the number of items across both buckets
func (p Partition) Len() int {
	return len(p.Priority) + len(p.Remainder)
}

// Predicate decides whether an item belongs to the priority bucket
type Predicate func(domain.Item) bool

// InCategories returns a predicate matching items whose category equals one of
// the given names, ignoring case and surrounding space. Items with an empty or
// unrecognised category never match.
func InCategories(categories ...string) Predicate {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if n := domain.Category(c).Normalized(); n != "" {
			set[n] = struct{}{}
		}
	}
	return func(item domain.Item) bool {
		n := item.Category.Normalized()
		if n == "" {
			return false
		}
		_, ok := set[n]
		return ok
	}
}

// Split performs a stable partition of items. The input slice is never
// modified, and relative order is preserved inside each bucket. A nil
// predicate puts everything in the remainder.
func Split(items []domain.Item, isPriority Predicate) Partition {
	p := Partition{
		Priority:  make([]domain.Item, 0),
		Remainder: make([]domain.Item, 0, len(items)),
	}
	for _, item := range items {
		if isPriority != nil && isPriority(item) {
			p.Priority = append(p.Priority, item)
		} else {
			p.Remainder = append(p.Remainder, item)
		}
	}
	return p
}
