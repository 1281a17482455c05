// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package fifoish provides a lock-free, multi-producer, multi-consumer queue
// whose items can also be removed out of order. [Queue.Enqueue] returns a
// [Handle] for the new item, and [Handle.TryRemove] takes that item back out
// of the queue no matter where it sits, without waiting for it to reach the
// front.
//
// Every operation completes with a bounded number of compare-and-swap retries
// over a singly-linked chain of nodes; there are no locks and nothing blocks.
// An empty queue and an item that is already gone are ordinary results, not
// errors, and callers decide for themselves whether and when to poll again.
//
// The queue is "FIFO-ish" in two ways. First, items are dequeued in the order
// in which they were linked into the chain, which is the order of Enqueue
// calls as observed by any single goroutine but is otherwise decided by the
// race between concurrent enqueuers. Second, [Queue.TryDequeue] may miss an
// item whose Enqueue has not finished linking it, and so may report an empty
// queue a moment before the item becomes visible. What is guaranteed is that
// every enqueued item is handed out exactly once, by either TryDequeue or
// TryRemove.
package fifoish
