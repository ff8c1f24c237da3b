// Package memfilter supplies the in-memory flavour of the predicate algebra: predicates are
// filter closures evaluated against single items.
package memfilter

import (
	"github.com/AntonStoeckl/bookshelf/predicate"
)

// Filter reports whether an item matches.
type Filter[T any] func(T) bool

// Algebra combines filters with short-circuiting AND and OR.
type Algebra[T any] struct{}

// And matches if left and right match.
func (Algebra[T]) And(left, right Filter[T]) Filter[T] {
	return func(item T) bool {
		return left(item) && right(item)
	}
}

// Or matches if left or right match.
func (Algebra[T]) Or(left, right Filter[T]) Filter[T] {
	return func(item T) bool {
		return left(item) || right(item)
	}
}

// Start begins a predicate chain over filters for items of type T.
func Start[T any]() predicate.Composer[Filter[T]] {
	return predicate.Start[Filter[T]](Algebra[T]{})
}

// Apply returns the items matching filter, in their original order. A nil filter matches every item.
func Apply[T any](items []T, filter Filter[T]) []T {
	matching := make([]T, 0, len(items))
	for _, item := range items {
		if filter == nil || filter(item) {
			matching = append(matching, item)
		}
	}

	return matching
}
