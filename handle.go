// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package fifoish

// Removable is implemented by anything that can take one specific item back
// out of the collection it was added to.
type Removable[T any] interface {
	// TryRemove removes the item and returns it. The second result is false if
	// the item had already been dequeued or removed.
	TryRemove() (T, bool)
}

var _ Removable[any] = Handle[any]{}

// A Handle refers to one item added by [Queue.Enqueue]. Handles are small
// values that may be copied freely; all copies refer to the same item.
//
// The zero Handle refers to nothing and its TryRemove always fails.
//
// A Handle keeps its item's queue node reachable, and through it the nodes
// linked after it, so long-lived handles to long-gone items should be
// dropped.
type Handle[T any] struct {
	q *Queue[T]
	n *node[T]
}

// TryRemove removes the item from its queue, wherever it is, and returns it.
// It succeeds at most once per item, and never for an item that TryDequeue has
// already returned.
//
// If the queue has a remove hook, TryRemove calls it with the item before
// returning.
func (h Handle[T]) TryRemove() (T, bool) {
	if h.n == nil {
		var zero T
		return zero, false
	}
	value, ok := h.n.mark()
	if !ok {
		return value, false
	}

	q := h.q
	q.unlink(h.n)
	h.n.finish()
	q.count.Add(-1)
	if hook := q.removeHook.Load(); hook != nil {
		(*hook)(value)
	}
	return value, true
}
