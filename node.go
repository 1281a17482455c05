// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package fifoish

import (
	"fmt"
	"sync/atomic"

	"github.com/petenewcomb/fifoish-go/internal/status"
)

type nodeStatus uint32

// A node moves from statusReady to exactly one of two paths:
//
//	statusReady -> statusDone                            (consumed by TryDequeue)
//	statusReady -> statusMarkedForRemoval -> statusDone  (removed by TryRemove)
//
// No transition ever leaves statusDone.
const (
	statusReady nodeStatus = iota
	// Reserved; no operation currently enters this state.
	statusConsuming
	statusMarkedForRemoval
	statusDone
)

func (s nodeStatus) String() string {
	switch s {
	case statusReady:
		return "Ready"
	case statusConsuming:
		return "Consuming"
	case statusMarkedForRemoval:
		return "MarkedForRemoval"
	case statusDone:
		return "Done"
	default:
		return fmt.Sprintf("nodeStatus(%d)", uint32(s))
	}
}

type node[T any] struct {
	// Written before the node is published and afterwards touched only by the
	// goroutine that moves the node out of statusReady.
	value T

	status status.Atomic[nodeStatus]

	// Set at most once from nil by link. Removal may later replace it, but
	// only with a node further along the same chain, so it is never unset.
	next atomic.Pointer[node[T]]

	// The node this one was linked after. Consulted by this node's remover,
	// and by the next enqueuer when the node is removed while it is last in
	// the chain. Cleared once no longer needed.
	last atomic.Pointer[node[T]]
}

func newSentinel[T any]() *node[T] {
	n := &node[T]{}
	n.status.Store(statusDone)
	return n
}

func (n *node[T]) isReady() bool {
	return n.status.Load() == statusReady
}

// link makes next the successor of n if n does not have one yet.
func (n *node[T]) link(next *node[T]) bool {
	return n.next.CompareAndSwap(nil, next)
}

// take consumes the node's value. Exactly one caller of take or mark wins.
func (n *node[T]) take() (T, bool) {
	var zero T
	if !n.isReady() || !n.status.CompareAndSwap(statusReady, statusDone) {
		return zero, false
	}
	value := n.value
	n.value = zero
	n.last.Store(nil)
	return value, true
}

// mark claims the node for removal. Exactly one caller of take or mark wins.
func (n *node[T]) mark() (T, bool) {
	var zero T
	if !n.isReady() || !n.status.CompareAndSwap(statusReady, statusMarkedForRemoval) {
		return zero, false
	}
	value := n.value
	n.value = zero
	return value, true
}

// finish completes a removal started by a successful mark.
func (n *node[T]) finish() {
	if prev := n.status.Swap(statusDone); prev != statusMarkedForRemoval {
		panic(fmt.Sprintf("finishing removal of node in status %v", prev))
	}
}
