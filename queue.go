// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package fifoish

import (
	"fmt"
	"math"
	"sync/atomic"
)

// DefaultRetryLimit is the number of iterations any single queue operation may
// spend in one of its internal loops before it is considered stuck.
const DefaultRetryLimit = 100_000_000

// A Queue is a lock-free FIFO-ish queue supporting out-of-order removal. All
// methods are safe for concurrent use by multiple goroutines.
//
// Queues are created using [New].
type Queue[T any] struct {
	// Oldest node still worth visiting. Never nil, and only ever moves
	// forward along the chain.
	head atomic.Pointer[node[T]]

	// Newest node, or a node shortly behind it. Enqueue walks forward from
	// here to find the true end of the chain.
	tail atomic.Pointer[node[T]]

	// Enqueued minus consumed minus removed. It is incremented before a node
	// is linked and decremented after a node leaves statusReady, so it never
	// undercounts the Ready nodes in the chain.
	count atomic.Int64

	capacity   atomic.Int64
	retryLimit atomic.Int64
	removeHook atomic.Pointer[func(T)]
}

// New creates an empty [Queue] with unlimited capacity and the default retry
// limit.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	sentinel := newSentinel[T]()
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	q.capacity.Store(math.MaxInt64)
	q.retryLimit.Store(DefaultRetryLimit)
	return q
}

// SetCapacity limits the number of items the queue will hold. [Queue.Enqueue]
// returns [ErrCapacity] rather than exceed it. The default is
// [math.MaxInt64].
//
// This method is safe to call at any time. Lowering the capacity below the
// current count does not evict anything; it only refuses new items until the
// count drops.
//
// Panics if capacity is less than one.
func (q *Queue[T]) SetCapacity(capacity int64) {
	if capacity < 1 {
		panic(fmt.Sprintf("invalid capacity %d: must be >= 1", capacity))
	}
	q.capacity.Store(capacity)
}

// SetRetryLimit sets the number of iterations a single operation may spend in
// one of its internal loops. Each node a traversal walks past counts as an
// iteration, so the limit also bounds how many nodes a single TryDequeue or
// TryRemove may visit. Exceeding the limit indicates a bug in the queue and
// causes a panic wrapping [ErrRetryLimit]. The default is
// [DefaultRetryLimit].
//
// Panics if limit is less than one.
func (q *Queue[T]) SetRetryLimit(limit int) {
	if limit < 1 {
		panic(fmt.Sprintf("invalid retry limit %d: must be >= 1", limit))
	}
	q.retryLimit.Store(int64(limit))
}

// SetRemoveHook registers a function to be called with each item taken out of
// the queue by [Handle.TryRemove]. It is called on the removing goroutine
// after the item has left the queue and before TryRemove returns. A nil hook
// disables notification.
func (q *Queue[T]) SetRemoveHook(hook func(T)) {
	if hook == nil {
		q.removeHook.Store(nil)
		return
	}
	q.removeHook.Store(&hook)
}

// Count returns the number of items in the queue. While operations are in
// flight it may briefly include items that are being consumed or removed; at
// any quiescent point it is exact.
func (q *Queue[T]) Count() int64 {
	return q.count.Load()
}

// Any reports whether Count is greater than zero.
func (q *Queue[T]) Any() bool {
	return q.count.Load() > 0
}

// Enqueue appends value to the back of the queue and returns a [Handle] that
// may later be used to remove it.
//
// Returns [ErrCapacity] without adding the value if the queue is full.
func (q *Queue[T]) Enqueue(value T) (Handle[T], error) {
	if c := q.count.Add(1); c < 1 || c > q.capacity.Load() {
		q.count.Add(-1)
		return Handle[T]{}, ErrCapacity
	}

	n := &node[T]{value: value}
	limit := q.limit()
	for i := int64(0); ; i++ {
		if i == limit {
			q.count.Add(-1)
			panic(retryLimitError("Enqueue", limit))
		}
		tail := q.tail.Load()
		if next := tail.next.Load(); next != nil {
			// Tail is lagging. Help it forward and look again.
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		n.last.Store(tail)
		if tail.link(n) {
			if !tail.isReady() {
				q.bypass(tail, n)
			}
			// Best effort; whoever finds the tail lagging will move it along.
			q.tail.CompareAndSwap(tail, n)
			return Handle[T]{q: q, n: n}, nil
		}
	}
}

// TryDequeue removes and returns the item at the front of the queue. The second
// result is false if no item was found.
//
// An Enqueue that is still in progress on another goroutine may not be
// visible yet, so a false result is a snapshot, not a promise that the queue
// stays empty.
func (q *Queue[T]) TryDequeue() (T, bool) {
	var zero T
	if q.count.Load() < 1 {
		q.advanceHead()
		return zero, false
	}

	head := q.head.Load()
	cur := head
	limit := q.limit()
	for i := int64(0); ; i++ {
		if i == limit {
			panic(retryLimitError("TryDequeue", limit))
		}
		if value, ok := cur.take(); ok {
			q.count.Add(-1)
			if next := cur.next.Load(); next != nil {
				q.head.CompareAndSwap(head, next)
			} else {
				q.head.CompareAndSwap(head, cur)
			}
			return value, true
		}

		// Every node visited so far has left statusReady for good, so head
		// may safely skip past them.
		next := cur.next.Load()
		if next == nil || q.count.Load() < 1 {
			q.head.CompareAndSwap(head, cur)
			return zero, false
		}
		cur = next
	}
}

// Drain dequeues items and passes them to yield until the queue is observed
// empty or yield returns false. Returns the number of items dequeued.
func (q *Queue[T]) Drain(yield func(T) bool) int {
	n := 0
	for {
		value, ok := q.TryDequeue()
		if !ok {
			return n
		}
		n++
		if !yield(value) {
			return n
		}
	}
}

// Clear dequeues and discards items until the queue is observed empty. Returns
// the number of items discarded.
func (q *Queue[T]) Clear() int {
	return q.Drain(func(T) bool { return true })
}

// advanceHead moves head past nodes that have left statusReady, stopping at
// the end of the chain.
func (q *Queue[T]) advanceHead() {
	limit := q.limit()
	for i := int64(0); i < limit; i++ {
		head := q.head.Load()
		if head.isReady() {
			return
		}
		next := head.next.Load()
		if next == nil {
			return
		}
		q.head.CompareAndSwap(head, next)
	}
}

// bypass routes traversals around tail, which had already left statusReady
// when n was linked after it. If tail's remover found no successor it left
// tail.last in place for this purpose.
//
// Whichever of the two observes the other is guaranteed: n is linked before
// tail's status is checked here, and tail is marked before its remover looks
// for a successor.
func (q *Queue[T]) bypass(tail, n *node[T]) {
	// Everything up to and including tail is spent.
	q.head.CompareAndSwap(tail, n)

	prev := tail.last.Load()
	if prev == nil {
		return
	}
	if prev.next.CompareAndSwap(tail, n) {
		n.last.CompareAndSwap(tail, prev)
	}
	tail.last.CompareAndSwap(prev, nil)
}

// unlink splices n, which the caller has marked for removal, out of the
// forward path of later traversals. Nothing here is retried: a splice that
// loses a race is simply left for Done-skipping traversals to absorb.
func (q *Queue[T]) unlink(n *node[T]) {
	prev := n.last.Load()

	first := n.next.Load()
	if first == nil {
		// n is the end of the chain. Its forward link stays unset and its
		// back link stays set so that the next Enqueue can link after it and
		// then bypass it.
		return
	}
	if prev != nil {
		n.last.CompareAndSwap(prev, nil)
	}

	succ := first
	limit := q.limit()
	for i := int64(0); succ.status.Load() == statusDone; i++ {
		if i == limit {
			panic(retryLimitError("TryRemove", limit))
		}
		next := succ.next.Load()
		if next == nil {
			break
		}
		succ = next
	}

	if succ != first {
		n.next.CompareAndSwap(first, succ)
	}
	if prev != nil && prev.next.CompareAndSwap(n, succ) {
		// Let a later removal of succ splice prev directly as well.
		succ.last.CompareAndSwap(n, prev)
	}
}

func (q *Queue[T]) limit() int64 {
	return q.retryLimit.Load()
}

func retryLimitError(op string, limit int64) error {
	return fmt.Errorf("%s: %w after %d iterations", op, ErrRetryLimit, limit)
}
