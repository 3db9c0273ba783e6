// Package view derives filtered, sorted projections from a unique list.
//
// A View is not a snapshot. It re-derives from the live source whenever the
// source's version or the view's own predicate or comparator has changed
// since the last read, and otherwise serves its cached derivation.
package view

import (
	"slices"

	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// Predicate selects the records a view shows.
type Predicate[T any] func(T) bool

// Comparator orders the records a view shows, returning a negative number
// when a sorts before b.
type Comparator[T any] func(a, b T) int

// View is a filtered, sorted projection over a uniquelist.ReadOnly. A View is
// not safe for concurrent use.
type View[T types.Record[T]] struct {
	src  uniquelist.ReadOnly[T]
	pred Predicate[T]
	cmp  Comparator[T]

	settings  uint64 // bumped on SetPredicate and SetComparator
	derivedAt uint64
	derived   bool
	cache     []T

	subscribers map[uint64]func()
	nextSub     uint64
}

// New returns a view that shows every record of src in insertion order.
func New[T types.Record[T]](src uniquelist.ReadOnly[T]) *View[T] {
	return &View[T]{src: src, subscribers: make(map[uint64]func())}
}

// SetPredicate installs pred. A nil pred shows every record.
func (v *View[T]) SetPredicate(pred Predicate[T]) {
	v.pred = pred
	v.reconfigured()
}

// SetComparator installs cmp. A nil cmp keeps insertion order; otherwise the
// sort is stable, so records comparing equal keep insertion order.
func (v *View[T]) SetComparator(cmp Comparator[T]) {
	v.cmp = cmp
	v.reconfigured()
}

// Version changes whenever the derivation could change: on every source
// mutation and on every predicate or comparator change.
func (v *View[T]) Version() uint64 {
	return v.src.Version() + v.settings
}

// Items returns a copy of the current derivation.
func (v *View[T]) Items() []T {
	return slices.Clone(v.current())
}

// Len returns the number of records in the current derivation.
func (v *View[T]) Len() int {
	return len(v.current())
}

// At returns the i-th record of the current derivation. It panics if i is
// out of range.
func (v *View[T]) At(i int) T {
	return v.current()[i]
}

// Subscribe registers fn to run after every source mutation and every
// predicate or comparator change. The returned function removes it.
func (v *View[T]) Subscribe(fn func()) (cancel func()) {
	id := v.nextSub
	v.nextSub++
	v.subscribers[id] = fn
	cancelSrc := v.src.Subscribe(fn)
	return func() {
		delete(v.subscribers, id)
		cancelSrc()
	}
}

func (v *View[T]) current() []T {
	version := v.Version()
	if v.derived && v.derivedAt == version {
		return v.cache
	}
	out := make([]T, 0, v.src.Len())
	for _, it := range v.src.All() {
		if v.pred == nil || v.pred(it) {
			out = append(out, it)
		}
	}
	if v.cmp != nil {
		slices.SortStableFunc(out, v.cmp)
	}
	v.cache = out
	v.derivedAt = version
	v.derived = true
	return out
}

func (v *View[T]) reconfigured() {
	v.settings++
	for _, fn := range v.subscribers {
		fn()
	}
}
