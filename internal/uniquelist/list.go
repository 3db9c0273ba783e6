// Package uniquelist provides an ordered collection that refuses to hold two
// identity-equal records.
//
// Uniqueness is decided by the element type's IsSame method; exact-match
// lookups for Set and Remove use Equal. The backing store is a slice, so every
// check is linear in the collection size.
package uniquelist

import (
	"iter"
	"slices"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// List is an insertion-ordered collection of distinct records. The zero value
// is not usable; call New. A List is not safe for concurrent use.
type List[T types.Record[T]] struct {
	entity      string
	items       []T
	version     uint64
	subscribers map[uint64]func()
	nextSub     uint64
	held        int
}

// New returns an empty list. entity names the element type in errors.
func New[T types.Record[T]](entity string) *List[T] {
	return &List[T]{entity: entity, subscribers: make(map[uint64]func())}
}

// Contains reports whether any element is identity-equal to item.
func (l *List[T]) Contains(item T) bool {
	return slices.ContainsFunc(l.items, item.IsSame)
}

// Add appends item. It returns a DuplicateError if an identity-equal element
// is already present.
func (l *List[T]) Add(item T) error {
	if l.Contains(item) {
		return &types.DuplicateError{Entity: l.entity}
	}
	l.items = append(l.items, item)
	l.changed()
	return nil
}

// Set replaces target with replacement at target's position. It returns a
// NotFoundError if no element equals target, and a DuplicateError if
// replacement is not identity-equal to target but is identity-equal to some
// other element.
func (l *List[T]) Set(target, replacement T) error {
	idx := slices.IndexFunc(l.items, target.Equal)
	if idx < 0 {
		return &types.NotFoundError{Entity: l.entity}
	}
	if !target.IsSame(replacement) {
		for i, it := range l.items {
			if i != idx && it.IsSame(replacement) {
				return &types.DuplicateError{Entity: l.entity}
			}
		}
	}
	l.items[idx] = replacement
	l.changed()
	return nil
}

// Remove deletes the single element equal to item. It returns a
// NotFoundError if there is none.
func (l *List[T]) Remove(item T) error {
	idx := slices.IndexFunc(l.items, item.Equal)
	if idx < 0 {
		return &types.NotFoundError{Entity: l.entity}
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	l.changed()
	return nil
}

// ReplaceAll replaces the whole content with a copy of items. It returns a
// DuplicateError, leaving the list untouched, if any two entries of items are
// identity-equal.
func (l *List[T]) ReplaceAll(items []T) error {
	if !Unique(items) {
		return &types.DuplicateError{Entity: l.entity}
	}
	l.items = slices.Clone(items)
	l.changed()
	return nil
}

// Find returns the first element for which match returns true.
func (l *List[T]) Find(match func(T) bool) (T, bool) {
	if idx := slices.IndexFunc(l.items, match); idx >= 0 {
		return l.items[idx], true
	}
	var zero T
	return zero, false
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns a copy of the elements in order.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

// All iterates over the elements in order. Mutating the list while iterating
// is not supported.
func (l *List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Version counts successful mutations. Views use it to detect staleness.
func (l *List[T]) Version() uint64 { return l.version }

// Equal reports whether other holds equal elements in the same order.
func (l *List[T]) Equal(other *List[T]) bool {
	if l == nil || other == nil {
		return l == other
	}
	return slices.EqualFunc(l.items, other.items, func(a, b T) bool { return a.Equal(b) })
}

// Subscribe registers fn to run after every successful mutation and returns
// a function that removes the registration.
func (l *List[T]) Subscribe(fn func()) (cancel func()) {
	id := l.nextSub
	l.nextSub++
	l.subscribers[id] = fn
	return func() { delete(l.subscribers, id) }
}

// ReadOnly returns a live view of the list without mutating methods.
func (l *List[T]) ReadOnly() ReadOnly[T] {
	return ReadOnly[T]{list: l}
}

// Hold suspends subscriber notifications until release runs. Mutations
// still bump the version while held. release(true) runs each subscriber once
// if the list changed since Hold; release(false) drops the notification.
// Holds nest; only the outermost release notifies.
func (l *List[T]) Hold() (release func(notify bool)) {
	l.held++
	start := l.version
	return func(notify bool) {
		l.held--
		if notify && l.held == 0 && l.version != start {
			l.notify()
		}
	}
}

func (l *List[T]) changed() {
	l.version++
	if l.held == 0 {
		l.notify()
	}
}

func (l *List[T]) notify() {
	for _, fn := range l.subscribers {
		fn()
	}
}

// Unique reports whether no two entries of items are identity-equal.
func Unique[T types.Record[T]](items []T) bool {
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].IsSame(items[j]) {
				return false
			}
		}
	}
	return true
}
