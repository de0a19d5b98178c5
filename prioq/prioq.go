// Package prioq provides a priority-ordered admission list.
//
// A [List] holds pending work items, each tagged with an integer
// priority. [List.DequeueHighest] always yields the item with the
// greatest priority; items sharing a priority come out in the order
// they went in. The list is backed by a red-black tree, so both
// operations stay logarithmic no matter how skewed the priorities are.
//
// A List is not safe for concurrent use. It is meant to be owned by a
// single scheduler that serializes access itself.
package prioq

import (
	"errors"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// ErrEmpty is returned by [List.DequeueHighest] when the list holds no
// items.
var ErrEmpty = errors.New("prioq: list is empty")

// key orders the tree. seq breaks ties between equal priorities so
// that admission order is preserved.
type key struct {
	priority int
	seq      uint64
}

// compare sorts keys so the tree's leftmost node is the item to
// dequeue next: higher priority first, then lower sequence number.
func compare(a, b any) int {
	ka, kb := a.(key), b.(key)
	switch {
	case ka.priority > kb.priority:
		return -1
	case ka.priority < kb.priority:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// List is a priority-ordered collection of pending items.
// The zero value is not usable; call [New].
type List[T any] struct {
	tree *redblacktree.Tree
	seq  uint64
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{tree: redblacktree.NewWith(compare)}
}

// Enqueue adds v with the given priority. Larger priorities dequeue
// first; equal priorities dequeue in insertion order.
func (l *List[T]) Enqueue(v T, priority int) {
	l.seq++
	l.tree.Put(key{priority: priority, seq: l.seq}, v)
}

// DequeueHighest removes and returns the highest-priority item.
// Ties are broken by admission order, oldest first. It returns
// [ErrEmpty] if the list holds nothing.
func (l *List[T]) DequeueHighest() (T, error) {
	node := l.tree.Left()
	if node == nil {
		var zero T
		return zero, ErrEmpty
	}
	l.tree.Remove(node.Key)
	return node.Value.(T), nil
}

// Empty reports whether the list holds no items.
func (l *List[T]) Empty() bool {
	return l.tree.Empty()
}

// Len returns the number of items held.
func (l *List[T]) Len() int {
	return l.tree.Size()
}
