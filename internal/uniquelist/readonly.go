package uniquelist

import (
	"iter"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// ReadOnly is a live, read-only window onto a List. It reflects every later
// mutation of the list and offers no way to change it; Items hands out copies.
type ReadOnly[T types.Record[T]] struct {
	list *List[T]
}

// Len returns the number of elements.
func (r ReadOnly[T]) Len() int { return r.list.Len() }

// At returns the element at index i. It panics if i is out of range.
func (r ReadOnly[T]) At(i int) T { return r.list.items[i] }

// Items returns a copy of the elements in order.
func (r ReadOnly[T]) Items() []T { return r.list.Items() }

// All iterates over the elements in order.
func (r ReadOnly[T]) All() iter.Seq2[int, T] { return r.list.All() }

// Contains reports whether any element is identity-equal to item.
func (r ReadOnly[T]) Contains(item T) bool { return r.list.Contains(item) }

// Version returns the list's mutation counter.
func (r ReadOnly[T]) Version() uint64 { return r.list.Version() }

// Subscribe registers fn to run after every successful mutation.
func (r ReadOnly[T]) Subscribe(fn func()) (cancel func()) { return r.list.Subscribe(fn) }
